package cmd

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/encodeous/routesim/core"
	"github.com/encodeous/routesim/state"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func disableColor() {
	pterm.DisableColor()
}

func logLevel() slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// readConfig loads the config file. A missing file is only an error if --config was given explicitly.
func readConfig(cmd *cobra.Command) (*state.SimCfg, string, error) {
	cfg, err := core.LoadConfig(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
			return &state.SimCfg{}, "", nil
		}
		return nil, "", err
	}
	return cfg, configPath, nil
}

func options(path string) core.Options {
	return core.Options{
		ConfigPath: path,
		LogLevel:   logLevel(),
		LogPath:    logPath,
		NoCache:    noCache,
	}
}
