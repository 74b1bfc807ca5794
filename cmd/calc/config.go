package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
)

// config is the contents of a configuration file.
type config struct {
	// Precision is the number of significant digits for approximate results.
	Precision uint `yaml:"precision"`
	// Scientific selects scientific notation for approximate results.
	Scientific bool `yaml:"scientific"`
	// History is the file holding interactive session history.
	History string `yaml:"history"`
	// Given maps names to expressions evaluated before any input.
	Given map[string]string `yaml:"given"`
}

// loadConfig reads a configuration file. With an empty name, the result is
// the default configuration.
func loadConfig(name string) (*config, error) {
	cfg := config{Precision: calc.DefaultPrec}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.History = filepath.Join(home, ".calc_history")
	}
	if name != "" {
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", name, err)
		}
	}
	if cfg.Given == nil {
		cfg.Given = make(map[string]string)
	}
	return &cfg, nil
}

// names returns the sorted names of given variables.
func (cfg *config) names() []string {
	r := make([]string, 0, len(cfg.Given))
	for k := range cfg.Given {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}
