package cmd

import (
	"os"

	"github.com/encodeous/routesim/core"
	"github.com/spf13/cobra"
)

var (
	watch     = false
	debugAddr = ""
	prompt    = "> "
)

// shellCmd represents the interactive simulator
var shellCmd = &cobra.Command{
	Use:     "shell",
	Aliases: []string{"run"},
	Short:   "Run the interactive simulator",
	Long: `Reads commands from stdin, one per line, until EOF or Ctrl+C.

  topology 1-2-5 2-3-3 1-3-10   replace the topology
  modify 3-4-7                  add a link or change its weight
  remove 3-4                    remove a link
  show                          print the cost matrix
  lsrp [src]                    link-state routing
  dvrp [src]                    distance-vector routing

Type help for the full list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := readConfig(cmd)
		if err != nil {
			return err
		}
		opts := options(path)
		opts.Watch = watch
		opts.DebugAddr = debugAddr
		opts.Prompt = prompt
		return core.Start(*cfg, opts, os.Stdin, os.Stdout)
	},
	GroupID: "sim",
}

func init() {
	rootCmd.AddCommand(shellCmd)

	shellCmd.Flags().BoolVarP(&watch, "watch", "w", false, "reapply the config file when it changes")
	shellCmd.Flags().StringVar(&debugAddr, "debug-addr", "", "serve /metrics and /debug/metrics on this address")
	shellCmd.Flags().StringVarP(&prompt, "prompt", "p", prompt, "prompt printed before each command")
}
