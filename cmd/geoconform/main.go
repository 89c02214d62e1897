// Command geoconform validates geospatial objects against the ISO 19111,
// 19115 and 19107 conformance rules.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/geoapi/geoconform/conformance"
	"github.com/geoapi/geoconform/i18n"
)

var (
	// Global flags
	configPath string
	lenient    bool
	format     string
	lang       string
	logLevel   string

	// Set up by the root command before any subcommand runs.
	logger *zap.Logger
	cfg    conformance.Configuration
)

// errFailed is returned when validation found error-severity issues. The
// report has already been printed.
var errFailed = errors.New("conformance errors found")

var rootCmd = &cobra.Command{
	Use:   "geoconform",
	Short: "Conformance validator for geospatial reference objects",
	Long: `geoconform checks coordinate reference systems, PROJ definitions and
metadata records against the obligations of the ISO geographic information
standards, and runs numerical checks on the built-in projection engine.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML configuration file")
	pf.BoolVar(&lenient, "lenient", false, "report missing mandatory and present forbidden attributes as warnings")
	pf.StringVar(&format, "format", "text", "report format: text or json")
	pf.StringVar(&lang, "lang", "", "message language (en, fr); overrides the configuration")
	pf.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	rootCmd.AddCommand(validateCmd, datasetsCmd, transformsCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	if logger, err = zc.Build(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if cfg, err = loadConfiguration(configPath); err != nil {
		return err
	}
	if lenient {
		cfg.RequireMandatoryAttributes = false
		cfg.EnforceForbiddenAttributes = false
	}
	if lang != "" {
		cfg.Language = lang
	}
	i18n.SetLanguage(cfg.Language)

	switch format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid --format %q: want text or json", format)
	}
	return nil
}

func loadConfiguration(path string) (conformance.Configuration, error) {
	if path == "" {
		return conformance.DefaultConfiguration(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return conformance.Configuration{}, err
	}
	defer f.Close()
	return conformance.LoadConfiguration(f)
}

// container returns validators configured by the flags and configuration.
func container() *conformance.Container {
	c := conformance.NewContainer()
	cfg.Apply(c)
	c.SetLogger(logger)
	return c
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
