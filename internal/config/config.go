package config

import (
	"embed"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

//go:embed default/*.toml
var configFS embed.FS

var Current = loadDefaultConfig()

const DefaultCmdChar = ":"

type Config struct {
	UI       UIConfig        `toml:"ui"`
	Editor   EditorConfig    `toml:"editor"`
	Neo4j    Neo4jConfig     `toml:"neo4j"`
	DeepLink DeepLinkConfig  `toml:"deeplink"`
	Bindings []BindingConfig `toml:"bindings"`
}

type UIConfig struct {
	FlashMessageDisplaySeconds int              `toml:"flash_message_display_seconds"`
	Colors                     map[string]Color `toml:"colors"`
}

type EditorConfig struct {
	CmdChar string `toml:"cmdchar"`
	Height  int    `toml:"height"`
	// MaxCompletions caps the number of suggestions shown at once.
	MaxCompletions int `toml:"max_completions"`
}

type Neo4jConfig struct {
	URI      string `toml:"uri"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	// QueryTimeoutSeconds bounds a single query; zero means no limit.
	QueryTimeoutSeconds int `toml:"query_timeout_seconds"`
}

type DeepLinkConfig struct {
	Listen string `toml:"listen"`
	// AllowedHosts lists the hosts a deep link may open with :play <url>.
	AllowedHosts []string `toml:"allowed_hosts"`
}

type Color struct {
	Fg            string `toml:"fg"`
	Bg            string `toml:"bg"`
	Bold          *bool  `toml:"bold"`
	Italic        *bool  `toml:"italic"`
	Underline     *bool  `toml:"underline"`
	Strikethrough *bool  `toml:"strikethrough"`
	Reverse       *bool  `toml:"reverse"`
}

// UnmarshalTOML accepts either a plain colour name or a style table.
func (c *Color) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		*c = Color{Fg: v}
		return nil
	case map[string]any:
		var out Color
		for key, raw := range v {
			switch key {
			case "fg", "bg":
				s, ok := raw.(string)
				if !ok {
					return errors.Newf("color %s: expected string, got %T", key, raw)
				}
				if key == "fg" {
					out.Fg = s
				} else {
					out.Bg = s
				}
			case "bold", "italic", "underline", "strikethrough", "reverse":
				b, ok := raw.(bool)
				if !ok {
					return errors.Newf("color %s: expected bool, got %T", key, raw)
				}
				switch key {
				case "bold":
					out.Bold = &b
				case "italic":
					out.Italic = &b
				case "underline":
					out.Underline = &b
				case "strikethrough":
					out.Strikethrough = &b
				case "reverse":
					out.Reverse = &b
				}
			default:
				return errors.Newf("color: unknown attribute %q", key)
			}
		}
		*c = out
		return nil
	default:
		return errors.Newf("color: expected string or table, got %T", value)
	}
}

func GetExpiringFlashMessageTimeout(c *Config) time.Duration {
	if c == nil || c.UI.FlashMessageDisplaySeconds <= 0 {
		return 0
	}
	return time.Duration(c.UI.FlashMessageDisplaySeconds) * time.Second
}

func GetQueryTimeout(c *Config) time.Duration {
	if c == nil || c.Neo4j.QueryTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Neo4j.QueryTimeoutSeconds) * time.Second
}

// CmdChar returns the prefix that marks editor content as a console command.
func (c *Config) CmdChar() string {
	if c == nil {
		return DefaultCmdChar
	}
	if cmdchar := strings.TrimSpace(c.Editor.CmdChar); cmdchar != "" {
		return cmdchar
	}
	return DefaultCmdChar
}

// ApplyEnv overrides connection settings from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("NEO4J_URI"); v != "" {
		c.Neo4j.URI = v
	}
	if v := getenv("NEO4J_USER"); v != "" {
		c.Neo4j.Username = v
	}
	if v := getenv("NEO4J_PASSWORD"); v != "" {
		c.Neo4j.Password = v
	}
	if v := getenv("NEO4J_DATABASE"); v != "" {
		c.Neo4j.Database = v
	}
}
