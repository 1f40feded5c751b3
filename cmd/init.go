package cmd

import (
	"fmt"
	"net/netip"
	"os"

	"github.com/encodeous/routesim/state"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var force = false

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample topology config",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite it", configPath)
		}
		cfg := SampleConfig()
		if err := state.SimConfigValidator(&cfg); err != nil {
			return err
		}
		out, err := yaml.Marshal(&cfg)
		if err != nil {
			return err
		}
		if err := os.WriteFile(configPath, out, 0600); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", configPath)
		return nil
	},
	GroupID: "init",
}

func SampleConfig() state.SimCfg {
	return state.SimCfg{
		MaxNodes: state.DefaultMaxNodes,
		Links: []string{
			"1-2-5",
			"2-3-3",
			"1-3-10",
		},
		Graph: []string{
			"core = 3, 4, 5",
			"core, core",
		},
		DefaultWeight: 2,
		Prefixes: map[state.NodeId][]netip.Prefix{
			1: {netip.MustParsePrefix("10.0.1.0/24")},
			5: {netip.MustParsePrefix("10.0.5.0/24")},
		},
		CacheTTL: state.DefaultCacheTTL.String(),
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config")
}
