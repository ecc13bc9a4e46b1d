package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Flags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"url", "config-dir", "log-file", "listen", "debug"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestVersionCommand(t *testing.T) {
	Version = "v1.2.3"
	t.Cleanup(func() { Version = "" })

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "v1.2.3\n", out.String())
}

func TestLoadConfig_LayersFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[editor]
cmdchar = "/"

[neo4j]
uri = "bolt://from-file:7687"
username = "file-user"

[deeplink]
listen = "127.0.0.1:9000"
`), 0o644))
	t.Setenv("CYPHERUI_CONFIG_DIR", "")
	t.Setenv("NEO4J_URI", "")
	t.Setenv("NEO4J_USER", "env-user")

	cfg, err := loadConfig(&options{configDir: dir, listen: "127.0.0.1:9100"})
	require.NoError(t, err)

	assert.Equal(t, "/", cfg.CmdChar())
	assert.Equal(t, "bolt://from-file:7687", cfg.Neo4j.URI)
	assert.Equal(t, "env-user", cfg.Neo4j.Username)
	assert.Equal(t, "127.0.0.1:9100", cfg.DeepLink.Listen)
}

func TestLoadConfig_InvalidFileFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[editor\n"), 0o644))
	t.Setenv("CYPHERUI_CONFIG_DIR", "")

	_, err := loadConfig(&options{configDir: dir})

	assert.Error(t, err)
}
