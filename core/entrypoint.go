package core

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/encodeous/routesim/perf"
	"github.com/encodeous/routesim/state"
	"github.com/encodeous/tint"
	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	ConfigPath string
	LogLevel   slog.Level
	LogPath    string // overrides SimCfg.LogPath
	Watch      bool   // reapply the config file when it changes
	NoCache    bool
	DebugAddr  string // serve metrics on this address if not empty
	Prompt     string // printed before every command when not empty
}

// NewLogger creates the console logger, fanned out to a rotating log file when logPath is set
func NewLogger(level slog.Level, logPath string, console io.Writer) (*slog.Logger, io.Closer, error) {
	handlers := make([]slog.Handler, 0)
	handlers = append(handlers,
		tint.NewHandler(console, &tint.Options{
			Level:     level,
			AddSource: false,
			ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
				if attr.Key == "time" {
					return slog.Attr{}
				}
				return attr
			},
		}))

	var closer io.Closer = io.NopCloser(nil)
	if logPath != "" {
		err := os.MkdirAll(filepath.Dir(logPath), 0700)
		if err != nil {
			return nil, nil, err
		}
		f := &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    state.LogMaxSizeMB,
			MaxBackups: state.LogMaxBackups,
			MaxAge:     state.LogMaxAgeDays,
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
		closer = f
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// LogPath is the --log override when set, otherwise the log_path of cfg
func LogPath(cfg state.SimCfg, opts Options) string {
	if opts.LogPath != "" {
		return opts.LogPath
	}
	return cfg.LogPath
}

// Setup creates the simulator state and applies cfg. The returned state is not attached to a main loop,
// commands can be executed directly with Exec.
func Setup(ctx context.Context, cfg state.SimCfg, opts Options, logger *slog.Logger, out io.Writer) (*state.State, chan func(*state.State) error, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	dispatch := make(chan func(*state.State) error, 128)

	if opts.NoCache {
		cfg.CacheTTL = "0"
	}

	s := state.NewState(&state.Env{
		DispatchChannel: dispatch,
		SimCfg:          cfg,
		ConfigPath:      opts.ConfigPath,
		Context:         ctx,
		Cancel:          cancel,
		Log:             logger,
		Out:             out,
	})

	err := initModules(s, opts)
	if err != nil {
		cancel(err)
		Stop(s)
		return nil, nil, err
	}
	err = ApplyConfig(s, &cfg)
	if err != nil {
		cancel(err)
		Stop(s)
		return nil, nil, err
	}
	return s, dispatch, nil
}

// Exec runs a single command on s, from the goroutine that owns s
func Exec(s *state.State, line string) error {
	return Get[*Dispatcher](s).Exec(line)
}

// Start runs the interactive simulator, reading commands from in until it is exhausted or a shutdown signal is received
func Start(cfg state.SimCfg, opts Options, in io.Reader, out io.Writer) error {
	logger, closer, err := NewLogger(opts.LogLevel, LogPath(cfg, opts), os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	s, dispatch, err := Setup(context.Background(), cfg, opts, logger, out)
	if err != nil {
		return err
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(c)
		select {
		case <-c:
			s.Cancel(errors.New("received shutdown signal"))
		case <-s.Context.Done():
		}
	}()

	if opts.DebugAddr != "" {
		perf.Serve(s.Context, opts.DebugAddr, s.Log)
	}

	go ReadCommands(s.Env, in, opts.Prompt)

	return MainLoop(s, dispatch)
}

// ReadCommands feeds every line of in to the main loop, waiting for each command to finish before reading the next.
// The main loop is stopped once in is exhausted.
func ReadCommands(e *state.Env, in io.Reader, prompt string) {
	scanner := bufio.NewScanner(in)
	for {
		if prompt != "" {
			_, _ = fmt.Fprint(e.Out, prompt)
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		_, err := e.DispatchWait(func(s *state.State) (any, error) {
			Get[*Dispatcher](s).Handle(line)
			return nil, nil
		})
		if err != nil {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		e.Cancel(fmt.Errorf("failed to read input: %w", err))
		return
	}
	e.Cancel(errors.New("end of input"))
}
