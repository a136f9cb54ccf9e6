// Command bmsearch searches Chrome and Edge bookmarks and opens the chosen
// one in the browser it came from.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/xtruder/bookmarks-search/internal/chromium"
	"github.com/xtruder/bookmarks-search/internal/config"
	"github.com/xtruder/bookmarks-search/internal/index"
	"github.com/xtruder/bookmarks-search/internal/launcher"
	"github.com/xtruder/bookmarks-search/internal/session"
)

// Version is set at build time via ldflags.
var Version = "dev"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	verbose    bool
	logFile    string
	env        chromium.Env
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{env: chromium.HostEnv()}

	root := &cobra.Command{
		Use:     "bmsearch",
		Short:   "Search browser bookmarks",
		Long:    "bmsearch indexes Chrome and Edge bookmarks and opens the selected one in the browser that owns it.",
		Version: Version,
		Args:    cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath(), "Config file path")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file in interactive mode")

	root.AddCommand(searchCmd(opts))
	root.AddCommand(openCmd(opts))
	root.AddCommand(profilesCmd(opts))
	root.AddCommand(exportCmd(opts))
	root.AddCommand(checkCmd(opts))

	return root
}

// app is the wiring shared by all commands.
type app struct {
	cfg      *config.Config
	builder  *index.Builder
	launcher *launcher.Launcher
	session  *session.Session
	closeLog func() error
}

// setup loads configuration, initializes logging and wires a session. It
// does not start the session. Logs go to stderr, except in interactive
// mode where they go to the configured log file or nowhere.
func setup(opts *globalOptions, interactive bool, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	logOut, closeLog := stderr, func() error { return nil }
	if interactive {
		logOut = io.Discard
		path := opts.logFile
		if path == "" {
			path = cfg.Log.File
		}
		if path != "" {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return nil, fmt.Errorf("failed to open log file: %w", err)
			}
			logOut, closeLog = f, f.Close
		}
	}

	logLevel, _ := cfg.LogLevel()
	if opts.verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	browsers := cfg.BrowserList()
	a := &app{
		cfg:      cfg,
		builder:  index.NewBuilder(browsers, opts.env),
		launcher: launcher.New(browsers, opts.env),
		closeLog: closeLog,
	}
	a.session = session.New(a.builder, a.launcher, session.Options{Limit: cfg.Search.Limit})
	return a, nil
}

// start builds the index and returns the session ready for queries.
func (a *app) start(ctx context.Context) *session.Session {
	if ctx == nil {
		ctx = context.Background()
	}
	a.session.Start(ctx)
	return a.session
}

func (a *app) Close() error {
	return a.closeLog()
}
