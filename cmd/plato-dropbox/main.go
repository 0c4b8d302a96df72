package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"platodropbox/internal/adapters/faillog"
	"platodropbox/internal/adapters/host"
	"platodropbox/internal/config"
	"platodropbox/internal/core/domain/models"
	"platodropbox/internal/core/domain/ports"
	"platodropbox/internal/core/service"
	"runtime/debug"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"
)

const defaultErrorLog = "plato-dropbox.log"

type rootOptions struct {
	settingsPath string
	errorLogPath string
	logLevel     string
}

// apply lets explicitly passed flags win over the environment.
func (o *rootOptions) apply(cfg *config.Config) {
	if o.settingsPath != "" {
		cfg.SettingsPath = o.settingsPath
	}
	if o.errorLogPath != "" {
		cfg.ErrorLogPath = o.errorLogPath
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "plato-dropbox <library-path> <save-path> <wifi-enabled> <online>",
		Short: "Fetch new EPUB files from a Dropbox app folder into a Plato library",
		Long: `plato-dropbox lists the Dropbox app folder, downloads every .epub file that is not
already present in the save directory and registers it with the Plato library.

Host events are written to stdout as JSON lines; logs go to stderr.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, opts, args)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.settingsPath, "settings", "", "path to the TOML settings file (env PLATO_DROPBOX_SETTINGS)")
	cmd.PersistentFlags().StringVar(&opts.errorLogPath, "error-log", "", "path to the fatal error log (env PLATO_DROPBOX_ERROR_LOG)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (env PLATO_DROPBOX_LOG_LEVEL)")

	// Flag errors never reach RunE, so they are reported here.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		h := host.NewPlatoHost(c.OutOrStdout(), newLogger(c.ErrOrStderr(), opts.logLevel))
		return reportFatal(c.ErrOrStderr(), h, fatalLogPath(opts), err)
	})

	cmd.AddCommand(newHistoryCmd(opts))
	return cmd
}

// fatalLogPath resolves the error log when the full configuration may be unusable.
func fatalLogPath(opts *rootOptions) string {
	if opts.errorLogPath != "" {
		return opts.errorLogPath
	}
	if cfg, err := config.Load(); err == nil {
		return cfg.ErrorLogPath
	}
	return defaultErrorLog
}

func runSync(cmd *cobra.Command, opts *rootOptions, args []string) error {
	stderr := cmd.ErrOrStderr()

	cfg, cfgErr := config.Load()
	level := opts.logLevel
	if cfgErr == nil {
		opts.apply(cfg)
		level = cfg.LogLevel
	}

	logger := newLogger(stderr, level)
	h := host.NewPlatoHost(cmd.OutOrStdout(), logger)

	if cfgErr != nil {
		return reportFatal(stderr, h, fatalLogPath(opts), cfgErr)
	}

	// SIGTERM keeps its default action while waiting for the network.
	cancelled := new(atomic.Bool)
	stop := func() {}
	defer func() { stop() }()

	_, err := Run(cmd.Context(), cfg, args, Runtime{
		Host:      h,
		Stdin:     cmd.InOrStdin(),
		Cancelled: cancelled,
		OnConnected: func() {
			stop = notifyTermination(cancelled, logger)
		},
		Logger: logger,
	})
	if err != nil {
		return reportFatal(stderr, h, cfg.ErrorLogPath, err)
	}
	return nil
}

// Runtime carries the process-level collaborators of a run.
type Runtime struct {
	Host      ports.Host
	Stdin     io.Reader
	Cancelled *atomic.Bool
	// OnConnected runs after the connectivity gate, before the first remote call.
	OnConnected func()
	Logger      *slog.Logger
}

// Run executes one sync. Exposed for testing.
func Run(ctx context.Context, cfg *config.Config, args []string, rt Runtime) (summary models.SyncSummary, err error) {
	logger := rt.Logger
	if logger == nil {
		logger = slog.Default()
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic during sync", "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	parsed, err := config.ParseArgs(args)
	if err != nil {
		return summary, err
	}

	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		return summary, err
	}
	cred, err := settings.Credential()
	if err != nil {
		return summary, err
	}

	journal, err := service.CreateJournal(ctx, cfg)
	if err != nil {
		return summary, err
	}
	defer func() {
		if cerr := journal.Close(); cerr != nil {
			logger.Warn("failed to close journal", "error", cerr)
		}
	}()

	syncer := service.NewSyncer(service.SyncerConfig{
		Remote:      service.CreateRemoteStore(cfg, logger),
		Host:        rt.Host,
		Journal:     journal,
		Input:       rt.Stdin,
		Cancelled:   rt.Cancelled,
		OnConnected: rt.OnConnected,
		Logger:      logger,
	})

	return syncer.Run(ctx, parsed.Request(cred))
}

// notifyTermination sets cancelled when SIGTERM arrives. The returned func
// uninstalls the handler.
func notifyTermination(cancelled *atomic.Bool, logger *slog.Logger) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case <-sigs:
			logger.Info("received SIGTERM, finishing current entry")
			cancelled.Store(true)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// reportFatal surfaces err on stderr, as a host notification and in the error log.
// It returns err so the process exits non-zero even when the log cannot be written.
func reportFatal(stderr io.Writer, h ports.Host, errorLogPath string, err error) error {
	msg := fmt.Sprintf("Error: %v", err)
	fmt.Fprintln(stderr, msg)
	h.ShowNotification(msg)
	if logErr := faillog.Append(errorLogPath, err.Error()); logErr != nil {
		fmt.Fprintln(stderr, logErr)
	}
	return err
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
