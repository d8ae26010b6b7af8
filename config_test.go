package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefault(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig, *cfg)
}

func TestLoadConfigOverlay(t *testing.T) {
	name := filepath.Join(t.TempDir(), "unit2spec.yaml")
	require.NoError(t, os.WriteFile(name, []byte(`
dest: rspec
helper:
  old: test_helper
  new: rails_helper
  base_path: ../rails_helper
runner:
  command: bundle
  args: [exec, rspec]
force_env: MIGRATE_FORCE
`), 0644))

	cfg, err := loadConfig(name)
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Source)
	assert.Equal(t, "rspec", cfg.Dest)
	assert.Equal(t, "rails_helper", cfg.Helper.New)
	assert.Equal(t, "rails_helper.rb", cfg.helperFile())
	assert.Equal(t, "bundle", cfg.Runner.Command)
	assert.Equal(t, []string{"exec", "rspec"}, cfg.Runner.Args)
	assert.Equal(t, DefaultConfig.Validator, cfg.Validator)
	assert.Equal(t, "MIGRATE_FORCE", cfg.ForceEnv)
	assert.Equal(t, "RUN", cfg.RunEnv)
	assert.Equal(t, DefaultConfig.DirRenames, cfg.DirRenames)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
		return p
	}

	_, err := loadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = loadConfig(write("unknown.yaml", "sources: test\n"))
	assert.Error(t, err)

	_, err = loadConfig(write("empty_dest.yaml", "dest: \"\"\n"))
	assert.Error(t, err)

	cfg, err := loadConfig(write("empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig, *cfg)
}

func TestIsConvertible(t *testing.T) {
	cfg := DefaultConfig
	assert.True(t, cfg.isConvertible("issue_spec.rb"))
	assert.True(t, cfg.isConvertible("spec_helper.rb"))
	assert.False(t, cfg.isConvertible("issues.yml"))
	assert.False(t, cfg.isConvertible("issue_spec.rb.orig"))
	assert.False(t, cfg.isConvertible("helper.rb"))
}
