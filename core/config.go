package core

import (
	"fmt"
	"os"

	"github.com/encodeous/routesim/state"
	"github.com/goccy/go-yaml"
)

func LoadConfig(path string) (*state.SimCfg, error) {
	var cfg state.SimCfg
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyConfig replaces the topology and the address plan with the ones described by cfg.
// Nothing is changed if cfg is invalid.
func ApplyConfig(s *state.State, cfg *state.SimCfg) error {
	if err := state.SimConfigValidator(cfg); err != nil {
		return err
	}
	links, err := cfg.GetLinks()
	if err != nil {
		return err
	}
	plan, err := state.NewAddressPlanFrom(cfg.Prefixes)
	if err != nil {
		return err
	}
	// Define validates every link before touching the topology
	if err := s.Topology.Define(links); err != nil {
		return err
	}
	s.Plan = plan
	s.Log.Info("applied config", "links", len(links), "nodes", s.Topology.N(), "prefixes", len(cfg.Prefixes))
	return nil
}
