package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sgfview/internal/config"
	"sgfview/internal/logging"
	"sgfview/internal/navigator"
	"sgfview/internal/source"
	"sgfview/internal/ui"
)

// fetchTimeout bounds every listing and record request of the browser
const fetchTimeout = 30 * time.Second

var (
	cfgFile string
	baseDir string
	logFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

// NewRootCmd creates the root command. Without a subcommand it opens the
// browser on the configured collection.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sgfview [base]",
		Short: "Browse a collection of Go game records",
		Long: `sgfview browses SGF game records laid out as <base>/<mode>/<month>/<record>.

The base is a local directory or an http(s) URL serving autoindex pages.
Every record exists in two trees: the main line only and the full record
with its variations.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runBrowser,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/sgfview/config.toml)")
	pf.StringVar(&baseDir, "base", "", "collection root, a directory or an http(s) URL")
	pf.StringVar(&logFile, "log-file", "", "log file (overrides the config)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewCrawlCmd())
	rootCmd.AddCommand(NewLsCmd())
	rootCmd.AddCommand(NewShowCmd())

	return rootCmd
}

// setup loads the configuration, applies the flags and builds the logger.
// Only the browser keeps stderr out of the log sinks.
func setup(cmd *cobra.Command) error {
	svc := config.NewConfigService()
	if cfgFile != "" {
		svc = config.NewConfigServiceAt(cfgFile)
	}
	loaded, err := svc.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	if baseDir != "" {
		cfg.Base = baseDir
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}

	logger, err = logging.New(logging.Options{
		File:    cfg.Log.File,
		Level:   cfg.Log.Level,
		Verbose: verbose,
		Stderr:  cmd != cmd.Root(),
	})
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded", zap.String("path", svc.Path()), zap.String("base", cfg.Base))
	return nil
}

func navConfig(c *config.Config) navigator.Config {
	return navigator.Config{
		Base:      c.Base,
		Dirs:      c.Modes,
		RecordExt: c.RecordExt,
		Display:   c.Display,
	}
}

func openSource() *source.Source {
	return source.Open(cfg.Base, &http.Client{Timeout: fetchTimeout})
}

func runBrowser(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		cfg.Base = args[0]
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer cancel()

	src := openSource()
	model := ui.NewModel(ctx, navConfig(cfg), src, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Marker for the terminal tests
	if os.Getenv("SGFVIEW_E2E_TEST") == "1" {
		fmt.Println("__READY__")
	}

	logger.Info("starting browser", zap.String("base", src.Base))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run browser: %w", err)
	}
	logger.Info("browser exited")
	return nil
}
