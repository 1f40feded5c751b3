package core

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/encodeous/routesim/state"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("gopkg.in/natefinch/lumberjack%2ev2.(*Logger).millRun"),
	)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestState(t *testing.T, cfg state.SimCfg, opts Options) (*state.State, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	s, _, err := Setup(context.Background(), cfg, opts, discardLogger(), out)
	require.NoError(t, err)
	t.Cleanup(func() {
		Stop(s)
	})
	return s, out
}

func graphOf(t *testing.T, links ...state.Link) state.Graph {
	t.Helper()
	topo := state.NewTopology(0)
	require.NoError(t, topo.Define(links))
	return topo.Snapshot()
}

// 1-2-5, 2-3-3, 1-3-10
func triangle(t *testing.T) state.Graph {
	return graphOf(t,
		state.Link{U: 1, V: 2, Weight: 5},
		state.Link{U: 2, V: 3, Weight: 3},
		state.Link{U: 1, V: 3, Weight: 10},
	)
}
