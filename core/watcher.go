package core

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/encodeous/routesim/state"
	"github.com/fsnotify/fsnotify"
)

// Watcher reapplies the config file whenever it changes on disk
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

func (w *Watcher) Init(s *state.State) error {
	s.Log.Debug("init watcher")
	if s.ConfigPath == "" {
		return errors.New("watching requires a config file")
	}
	path := filepath.Clean(s.ConfigPath)
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	// watch the directory, editors often replace the file instead of writing to it
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return fmt.Errorf("config watcher add %s: %w", path, err)
	}
	w.watcher = fw
	w.done = make(chan struct{})

	go func() {
		defer close(w.done)
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != path {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					s.Env.Dispatch(func(s *state.State) error {
						return reloadConfig(s, path)
					})
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				s.Log.Warn("config watcher error", "error", err)
			}
		}
	}()
	return nil
}

func (w *Watcher) Cleanup(s *state.State) error {
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	<-w.done
	return err
}

func reloadConfig(s *state.State, path string) error {
	cfg, err := LoadConfig(path)
	if err != nil {
		s.Log.Warn("failed to reload config, keeping the current topology", "path", path, "error", err)
		return nil
	}
	if err := ApplyConfig(s, cfg); err != nil {
		s.Log.Warn("failed to apply config, keeping the current topology", "path", path, "error", err)
		return nil
	}
	s.Log.Info("reloaded config", "path", path, "revision", s.Topology.Revision())
	return nil
}
