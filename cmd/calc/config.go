package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
)

// config is the contents of a config file.
type config struct {
	// Format is the fmt verb used to print results.
	Format string `toml:"format" yaml:"format"`
	// Constants enables the built-in constants.
	Constants bool `toml:"constants" yaml:"constants"`
	// Consts defines additional constants.
	Consts map[string]float64 `toml:"consts" yaml:"consts"`
}

func defaultConfig() config {
	return config{Format: "%g", Constants: true}
}

// loadConfig reads a config file. Files ending in .yaml or .yml are YAML;
// anything else is TOML. Keys missing from the file keep their defaults.
func loadConfig(name string) (config, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return config{}, err
	}
	cfg := defaultConfig()
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	default:
		err = toml.Unmarshal(b, &cfg)
	}
	if err != nil {
		return config{}, fmt.Errorf("reading config %s: %w", name, err)
	}
	if cfg.Format == "" {
		cfg.Format = "%g"
	}
	return cfg, nil
}

// engineOptions converts the config to engine options.
func (cfg config) engineOptions() ([]calc.Option, error) {
	var opts []calc.Option
	if !cfg.Constants {
		opts = append(opts, calc.NoConstants())
	}
	names := make([]string, 0, len(cfg.Consts))
	for k := range cfg.Consts {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		if err := validName(k); err != nil {
			return nil, err
		}
		opts = append(opts, calc.WithConst(k, cfg.Consts[k]))
	}
	return opts, nil
}

// validName checks that a constant name can be lexed as an identifier.
func validName(name string) error {
	if name == "" {
		return fmt.Errorf("empty constant name")
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("invalid constant name %q: names may only contain letters", name)
		}
	}
	return nil
}
