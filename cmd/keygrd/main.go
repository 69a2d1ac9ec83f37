package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jenian/keygrd/internal/config"
	"github.com/jenian/keygrd/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via -ldflags
var Version = "dev"

// errIssuesFound makes the process exit 1 without an error message; the
// report already explains what is wrong
var errIssuesFound = errors.New("issues found")

// rootOptions holds the flags shared by every command
type rootOptions struct {
	root       string
	configFile string
	debug      bool
	logFormat  string
	locales    []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "keygrd",
		Short: "Cross-check translation keys used in code against locale files",
		Long: "A CLI tool that finds the translation keys a page references under one namespace " +
			"(e.g. t('quizOverview.title')) and reports the keys each locale file does not define.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.root, "root", ".", "Project root that source and locale paths are relative to")
	flags.StringVar(&opts.configFile, "config", "", "Config file (default: <root>/"+config.FileName+")")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: console or json")
	flags.StringArrayVar(&opts.locales, "locale", nil, "Locale file as tag=path, repeatable (replaces configured locales)")
	flags.String("source", "", "Source file or directory to scan")
	flags.String("namespace", "", "Key namespace, e.g. quizOverview")
	flags.StringSlice("functions", nil, "Call tokens whose first argument is a key (default: t)")
	flags.String("extractor", "", "Key extractor: regex or ast")
	flags.StringSlice("include", nil, "Source glob patterns to include")
	flags.StringSlice("exclude", nil, "Source glob patterns to exclude")

	rootCmd.AddCommand(
		newCheckCmd(opts),
		newExtractCmd(opts),
		newInspectCmd(opts),
		newFindCmd(opts),
		newParityCmd(opts),
		newInitConfigCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// setup resolves the root, loads <root>/.env and starts the logger from flags
func (o *rootOptions) setup() error {
	abs, err := filepath.Abs(o.root)
	if err != nil {
		return fmt.Errorf("invalid root: %w", err)
	}
	o.root = abs

	// .env may carry KEYGRD_* overrides; it is optional
	_ = godotenv.Load(filepath.Join(o.root, ".env"))

	return o.initLogging("", "")
}

// initLogging applies flag values over the configured level and format
func (o *rootOptions) initLogging(level, format string) error {
	if level == "" {
		level = "warn"
	}
	if o.debug {
		level = "debug"
	}
	if o.logFormat != "" {
		format = o.logFormat
	}
	return logging.Init(level, format)
}

// loadConfig reads the configuration for the command, applying flags and
// --locale overrides, and reconfigures logging from it
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(o.root, o.configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if len(o.locales) > 0 {
		if err := cfg.SetLocales(o.locales); err != nil {
			return nil, err
		}
	}
	if err := o.initLogging(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, err
	}

	if cfg.File != "" {
		logging.Debug("loaded config", zap.String("file", cfg.File))
	}
	logging.Debug("configuration",
		zap.String("root", o.root),
		zap.String("source", cfg.Source),
		zap.String("namespace", cfg.Namespace),
		zap.Strings("functions", cfg.Functions),
		zap.String("extractor", cfg.Extractor),
	)
	return cfg, nil
}

func main() {
	err := newRootCmd().Execute()
	_ = logging.Sync()
	if err != nil {
		if !errors.Is(err, errIssuesFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
