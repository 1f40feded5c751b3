package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/encodeous/routesim/core"
	"github.com/spf13/cobra"
)

var source = 0

// runOnce loads the config and runs lines against it without starting the interactive loop
func runOnce(cmd *cobra.Command, lines ...string) error {
	cfg, path, err := readConfig(cmd)
	if err != nil {
		return err
	}
	opts := options(path)
	logger, closer, err := core.NewLogger(opts.LogLevel, core.LogPath(*cfg, opts), os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	s, _, err := core.Setup(context.Background(), *cfg, opts, logger, os.Stdout)
	if err != nil {
		return err
	}
	defer core.Stop(s)
	for _, line := range lines {
		if err := core.Exec(s, line); err != nil {
			return fmt.Errorf("%s: %w", line, err)
		}
	}
	return nil
}

func routingCommand(name string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		line := name
		if cmd.Flags().Changed("source") {
			line = fmt.Sprintf("%s %d", name, source)
		}
		return runOnce(cmd, line)
	}
}

var execCmd = &cobra.Command{
	Use:   "exec [command]...",
	Short: "Run simulator commands against the config file and exit",
	Example: `  routesim exec "modify 3-4-7" "lsrp 1"
  routesim exec show`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for i := range args {
			args[i] = strings.TrimSpace(args[i])
		}
		return runOnce(cmd, args...)
	},
	GroupID: "sim",
}

var lsrpCmd = &cobra.Command{
	Use:     "lsrp",
	Short:   "Run link-state routing (Dijkstra) over the config file",
	RunE:    routingCommand("lsrp"),
	GroupID: "sim",
}

var dvrpCmd = &cobra.Command{
	Use:     "dvrp",
	Short:   "Run distance-vector routing (Bellman-Ford) over the config file",
	RunE:    routingCommand("dvrp"),
	GroupID: "sim",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cost matrix of the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOnce(cmd, "show")
	},
	GroupID: "sim",
}

func init() {
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(lsrpCmd)
	rootCmd.AddCommand(dvrpCmd)
	rootCmd.AddCommand(showCmd)

	lsrpCmd.Flags().IntVarP(&source, "source", "s", 0, "source node, every node if not set")
	dvrpCmd.Flags().IntVarP(&source, "source", "s", 0, "source node, every node if not set")
}
