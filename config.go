package main

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config describes both layouts and the external programs of a migration.
type Config struct {
	Source      string      `yaml:"source"`       // test tree to migrate
	Dest        string      `yaml:"dest"`         // spec tree to create
	DirRenames  []rename    `yaml:"dir_renames"`  // applied to directory names
	FileRenames []rename    `yaml:"file_renames"` // applied to file names
	SpecSuffix  string      `yaml:"spec_suffix"`  // converted files end with it
	Helper      helperNames `yaml:"helper"`

	Validator command `yaml:"validator"`
	Runner    command `yaml:"runner"`

	ForceEnv string `yaml:"force_env"` // answers the first confirmation
	RunEnv   string `yaml:"run_env"`   // answers the second confirmation
}

var DefaultConfig = Config{
	Source: "test",
	Dest:   "spec",
	DirRenames: []rename{
		{From: "test", To: "spec"},
		{From: "unit", To: "models"},
		{From: "functional", To: "controllers"},
	},
	FileRenames: []rename{
		{From: "_test", To: "_spec"},
		{From: "test_helper", To: "spec_helper"},
	},
	SpecSuffix: "_spec.rb",
	Helper: helperNames{
		Old:      "test_helper",
		New:      "spec_helper",
		BasePath: "../../../redmine_base_rspec/spec/spec_helper",
	},
	Validator: command{Command: "ruby", Args: []string{"-c"}},
	Runner: command{
		Command: "rspec",
		Args:    []string{"-Iplugins/redmine_base_rspec/spec"},
		Dir:     "../..",
	},
	ForceEnv: "FORCE",
	RunEnv:   "RUN",
}

// loadConfig overlays the YAML file at path, if any, on DefaultConfig.
func loadConfig(path string) (*Config, error) {
	cfg := DefaultConfig
	if path == "" {
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %v", path)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "failed to parse config %v", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %v", path)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Source == "" || c.Dest == "":
		return errors.New("source and dest are required")
	case c.Helper.Old == "" || c.Helper.New == "":
		return errors.New("helper old and new names are required")
	case c.SpecSuffix == "":
		return errors.New("spec_suffix is required")
	}
	return nil
}

// helperFile is the name of the spec helper inside Dest.
func (c *Config) helperFile() string {
	return c.Helper.New + ".rb"
}

// isConvertible reports whether a copied file gets its syntax rewritten.
func (c *Config) isConvertible(name string) bool {
	return strings.HasSuffix(name, c.SpecSuffix) || strings.HasSuffix(name, c.helperFile())
}
