package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/declarative/internal/config"
	"github.com/vango-dev/declarative/internal/errors"
	"github.com/vango-dev/declarative/pkg/declarative"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configDir string
	logLevel  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) {
			errors.Print(e)
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "declarative",
		Short: "Conditional rendering and portals for reactive views",
		Long: `declarative renders the demo dashboard built from If/Then/ElseIf/Else
and portals, serves it as a live playground, and publishes
rendered snapshots to S3.

Signals are set with --set name=true|false|toggle. Known signals:
maintenance, loggedIn, admin, guest, banner.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configDir, "config", "c", ".", "Directory containing declarative.json")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from declarative.json)")

	rootCmd.AddCommand(
		renderCmd(flags),
		serveCmd(flags),
		publishCmd(flags),
		snapshotsCmd(flags),
		checkCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

// setup loads the configuration, applies the log level override and
// installs the logger.
func setup(flags *globalFlags, stderr io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadOrDefault(flags.configDir)
	if err != nil {
		return nil, nil, err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	declarative.SetLogger(logger)
	return cfg, logger, nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
