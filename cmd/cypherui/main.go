package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/cockroachdb/errors"
	"github.com/idursun/cypherui/internal/config"
	"github.com/idursun/cypherui/internal/cypher"
	"github.com/idursun/cypherui/internal/deeplink"
	"github.com/idursun/cypherui/internal/logging"
	"github.com/idursun/cypherui/internal/params"
	"github.com/idursun/cypherui/internal/ui"
	"github.com/idursun/cypherui/internal/ui/common"
	appcontext "github.com/idursun/cypherui/internal/ui/context"
	"github.com/spf13/cobra"
)

var Version string

type options struct {
	url       string
	configDir string
	logFile   string
	listen    string
	debug     bool
}

func getVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "unknown"
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "cypherui",
		Short:         "Terminal editor for Cypher queries",
		Long:          "cypherui is a terminal editor for running Cypher queries against Neo4j.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.url, "url", "", "URL command to run at startup, e.g. cypherui://open?cmd=play&arg=intro")
	cmd.Flags().StringVar(&opts.configDir, "config-dir", "", "Directory holding config.toml")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write JSON logs to this file")
	cmd.Flags().StringVar(&opts.listen, "listen", "", "Address for the deep link listener, overrides [deeplink] listen")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Log at debug level")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), getVersion())
		},
	})
	return cmd
}

// loadConfig layers the user config file and the environment over the
// embedded defaults.
func loadConfig(opts *options) (*config.Config, error) {
	if opts.configDir != "" {
		if err := os.Setenv("CYPHERUI_CONFIG_DIR", opts.configDir); err != nil {
			return nil, errors.Wrap(err, "setting config dir")
		}
	}
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	data, err := config.LoadConfigFile()
	if err != nil {
		return nil, err
	}
	if data != nil {
		if err := cfg.Load(string(data)); err != nil {
			return nil, errors.Wrapf(err, "loading %s", config.GetConfigDir())
		}
	}
	cfg.ApplyEnv(os.Getenv)
	if opts.listen != "" {
		cfg.DeepLink.Listen = opts.listen
	}
	return cfg, nil
}

func connect(ctx context.Context, cfg *config.Config) cypher.Runner {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	runner, err := cypher.NewNeo4jRunner(connectCtx, cypher.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
		Database: cfg.Neo4j.Database,
	})
	if err != nil {
		logging.Logger.Warnw("running disconnected", "uri", cfg.Neo4j.URI, "error", err)
		return cypher.Disconnected{Cause: err}
	}
	return runner
}

func run(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := logging.Initialize(opts.logFile, opts.debug); err != nil {
		return err
	}
	defer logging.Sync()

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	config.Current = cfg
	common.DefaultPalette.Update(cfg.UI.Colors)

	runner := connect(ctx, cfg)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := runner.Close(closeCtx); err != nil {
			logging.Logger.Warnw("closing connection", "error", err)
		}
	}()

	appContext := appcontext.NewMainContext(cfg, runner, params.NewStore(), opts.url)
	p := tea.NewProgram(ui.New(appContext))

	serverCtx, stopServer := context.WithCancel(ctx)
	defer stopServer()
	server := deeplink.New(cfg.DeepLink.Listen, p)
	if err := server.Start(serverCtx); err != nil {
		logging.Logger.Warnw("deep link listener disabled", "error", err)
	}

	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "running program")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
