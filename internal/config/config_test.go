package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FlashMessageDisplaySeconds(t *testing.T) {
	content := `
[ui]
flash_message_display_seconds = 10
`
	config := &Config{}
	err := config.Load(content)
	assert.NoError(t, err)
	assert.Equal(t, 10, config.UI.FlashMessageDisplaySeconds)
	assert.Equal(t, 10*time.Second, GetExpiringFlashMessageTimeout(config))
}

func TestGetExpiringFlashMessageTimeout_DisabledWhenNotPositive(t *testing.T) {
	assert.Zero(t, GetExpiringFlashMessageTimeout(&Config{}))
	assert.Zero(t, GetExpiringFlashMessageTimeout(nil))
}

func TestLoad_Colors_StringAndObject(t *testing.T) {
	content := `
[ui.colors]
simple = "red"
complex = { fg = "blue", bg = "white", bold = true }
`
	config := &Config{}
	err := config.Load(content)
	assert.NoError(t, err)
	assert.Len(t, config.UI.Colors, 2)

	assert.Equal(t, "red", config.UI.Colors["simple"].Fg)
	assert.Equal(t, "", config.UI.Colors["simple"].Bg)
	assert.Nil(t, config.UI.Colors["simple"].Bold)

	assert.Equal(t, "blue", config.UI.Colors["complex"].Fg)
	assert.Equal(t, "white", config.UI.Colors["complex"].Bg)
	if assert.NotNil(t, config.UI.Colors["complex"].Bold) {
		assert.True(t, *config.UI.Colors["complex"].Bold)
	}
}

func TestLoad_Colors_RejectsUnknownAttribute(t *testing.T) {
	content := `
[ui.colors]
broken = { fg = "blue", blink = true }
`
	config := &Config{}
	err := config.Load(content)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blink")
}

func TestCmdChar(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "unset", content: ``, want: ":"},
		{name: "blank", content: "[editor]\ncmdchar = \"  \"", want: ":"},
		{name: "custom", content: "[editor]\ncmdchar = \"/\"", want: "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			require.NoError(t, config.Load(tt.content))
			assert.Equal(t, tt.want, config.CmdChar())
		})
	}
}

func TestApplyEnv_OverridesConnection(t *testing.T) {
	config := &Config{Neo4j: Neo4jConfig{URI: "bolt://default", Username: "neo4j", Password: "password"}}
	env := map[string]string{
		"NEO4J_URI":  "neo4j://graph:7687",
		"NEO4J_USER": "reader",
	}
	config.ApplyEnv(func(key string) string { return env[key] })

	assert.Equal(t, "neo4j://graph:7687", config.Neo4j.URI)
	assert.Equal(t, "reader", config.Neo4j.Username)
	assert.Equal(t, "password", config.Neo4j.Password)
}

func TestLoadDefault(t *testing.T) {
	config, err := LoadDefault()
	require.NoError(t, err)

	assert.Equal(t, ":", config.CmdChar())
	assert.Equal(t, "bolt://localhost:7687", config.Neo4j.URI)
	assert.Equal(t, 60*time.Second, GetQueryTimeout(config))
	assert.Equal(t, []string{"guides.neo4j.com"}, config.DeepLink.AllowedHosts)
	assert.NotEmpty(t, config.Bindings)
	assert.Contains(t, config.Bindings, BindingConfig{
		Scope:  "editor",
		Action: "editor.execute",
		Key:    StringList{"ctrl+enter", "ctrl+r"},
	})
}

func TestLoad_DeepLinkAllowedHostsReplacesDefault(t *testing.T) {
	config, err := LoadDefault()
	require.NoError(t, err)

	require.NoError(t, config.Load(`
[deeplink]
allowed_hosts = ["*.example.com"]
`))
	assert.Equal(t, []string{"*.example.com"}, config.DeepLink.AllowedHosts)
}
