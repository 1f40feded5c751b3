package core

import (
	"reflect"

	"github.com/encodeous/routesim/state"
)

func Get[T state.SimModule](s *state.State) T {
	t := reflect.TypeFor[T]()
	return s.Modules[t.String()].(T)
}
