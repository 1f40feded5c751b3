package state

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
)

func PathValidator(s string) error {
	_, err := os.Stat(path.Dir(s))
	if err != nil {
		return err
	}
	_, err = filepath.Abs(s)
	return err
}

func NodeValidator(id NodeId, maxNodes int) error {
	if id < 1 || int(id) > maxNodes {
		return fmt.Errorf("node %d is outside [1, %d]", id, maxNodes)
	}
	return nil
}

func LinkValidator(l Link, maxNodes int) error {
	if l.U == l.V {
		return fmt.Errorf("link %s connects node %d to itself", l, l.U)
	}
	if err := NodeValidator(l.U, maxNodes); err != nil {
		return fmt.Errorf("link %s: %w", l, err)
	}
	if err := NodeValidator(l.V, maxNodes); err != nil {
		return fmt.Errorf("link %s: %w", l, err)
	}
	if err := checkWeight(l.Weight); err != nil {
		return fmt.Errorf("link %s: %w", l, err)
	}
	return nil
}

func SimConfigValidator(cfg *SimCfg) error {
	if cfg.MaxNodes < 0 {
		return fmt.Errorf("max_nodes must not be negative, got %d", cfg.MaxNodes)
	}
	maxNodes := cfg.GetMaxNodes()
	links, err := cfg.GetLinks()
	if err != nil {
		return err
	}
	for _, l := range links {
		if err := LinkValidator(l, maxNodes); err != nil {
			return err
		}
	}
	ttl, err := cfg.GetCacheTTL()
	if err != nil {
		return err
	}
	if ttl < 0 {
		return fmt.Errorf("cache_ttl must not be negative, got %s", ttl)
	}
	for _, node := range cfg.GetPrefixNodes() {
		if err := NodeValidator(node, maxNodes); err != nil {
			return fmt.Errorf("prefixes: %w", err)
		}
	}
	if _, err := NewAddressPlanFrom(cfg.Prefixes); err != nil {
		return fmt.Errorf("prefixes: %w", err)
	}
	if cfg.LogPath != "" {
		if err := PathValidator(cfg.LogPath); err != nil {
			return fmt.Errorf("log_path: %w", err)
		}
	}
	return nil
}
