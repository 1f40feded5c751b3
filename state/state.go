package state

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
)

type SimModule interface {
	Init(s *State) error
	Cleanup(s *State) error
}

// State access must be done only on a single Goroutine
type State struct {
	*Env
	Modules  map[string]SimModule
	Topology *Topology
	Plan     *AddressPlan
}

// Env can be read from any Goroutine
type Env struct {
	DispatchChannel chan<- func(s *State) error
	SimCfg
	ConfigPath string
	Context    context.Context
	Cancel     context.CancelCauseFunc
	Log        *slog.Logger
	Out        io.Writer
	Stopping   atomic.Bool
}

func NewState(env *Env) *State {
	return &State{
		Env:      env,
		Modules:  make(map[string]SimModule),
		Topology: NewTopology(env.GetMaxNodes()),
		Plan:     NewAddressPlan(),
	}
}
