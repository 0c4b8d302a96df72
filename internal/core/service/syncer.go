package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"platodropbox/internal/core/domain/models"
	"platodropbox/internal/core/domain/ports"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"golang.org/x/oauth2"
)

type SyncerConfig struct {
	Remote  ports.RemoteStore
	Host    ports.Host
	Journal ports.SyncJournal // optional
	Fs      afero.Fs          // defaults to the OS filesystem
	Clock   ports.Clock       // defaults to the wall clock
	Input   io.Reader         // connectivity confirmation, normally stdin
	// Cancelled is set asynchronously by the termination signal handler and read
	// before every entry.
	Cancelled *atomic.Bool
	// OnConnected runs once the network is up and the save directory exists,
	// before any remote call.
	OnConnected func()
	Logger      *slog.Logger
}

// Syncer runs one synchronization: connectivity gate, authentication, listing, then
// sequential per-entry filter, fetch and registration.
type Syncer struct {
	remote    ports.RemoteStore
	host      ports.Host
	journal   ports.SyncJournal
	fs        afero.Fs
	clock     ports.Clock
	input     io.Reader
	cancelled *atomic.Bool
	connected func()
	logger    *slog.Logger

	fetcher   *Fetcher
	registrar *Registrar
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

func NewSyncer(cfg SyncerConfig) *Syncer {
	s := &Syncer{
		remote:    cfg.Remote,
		host:      cfg.Host,
		journal:   cfg.Journal,
		fs:        cfg.Fs,
		clock:     cfg.Clock,
		input:     cfg.Input,
		cancelled: cfg.Cancelled,
		connected: cfg.OnConnected,
		logger:    cfg.Logger,
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.clock == nil {
		s.clock = wallClock{}
	}
	if s.cancelled == nil {
		s.cancelled = new(atomic.Bool)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.fetcher = NewFetcher(s.remote, s.fs)
	s.registrar = NewRegistrar(s.host, s.clock)
	return s
}

// Run executes the sync. A returned error is fatal for the whole run; failures of
// single entries are reported to the host and counted in the summary instead.
func (s *Syncer) Run(ctx context.Context, req models.SyncRequest) (models.SyncSummary, error) {
	summary := models.SyncSummary{
		RunID:     uuid.NewString(),
		StartedAt: s.clock.Now(),
	}
	logger := s.logger.With("run_id", summary.RunID)

	if err := WaitForNetwork(s.host, s.input, req.WifiEnabled, req.Online); err != nil {
		return summary, err
	}

	if err := s.fs.MkdirAll(req.SavePath, 0755); err != nil {
		return summary, fmt.Errorf("failed to create save directory %s: %w", req.SavePath, err)
	}
	if s.connected != nil {
		s.connected()
	}

	token, err := s.remote.AccessToken(ctx, req.Credential)
	if err != nil {
		return summary, err
	}

	entries, err := s.remote.ListFolder(ctx, token)
	if err != nil {
		return summary, err
	}
	summary.Listed = len(entries)
	s.host.ShowNotification(fmt.Sprintf("Sync %d files", len(entries)))
	logger.Info("starting sync", "entries", len(entries), "save_path", req.SavePath)

	for _, entry := range entries {
		if s.cancelled.Load() {
			summary.Cancelled = true
			logger.Info("termination requested, stopping sync")
			break
		}
		s.syncEntry(ctx, logger, token, req, entry, &summary)
	}

	summary.FinishedAt = s.clock.Now()
	if s.journal != nil {
		if err := s.journal.Complete(ctx, summary); err != nil {
			logger.Warn("failed to record sync run", "error", err)
		}
	}

	logger.Info("sync finished",
		"downloaded", summary.Downloaded,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"ignored", summary.Ignored,
		"cancelled", summary.Cancelled,
	)
	s.host.ShowNotification(finishedMessage(summary))
	return summary, nil
}

func (s *Syncer) syncEntry(ctx context.Context, logger *slog.Logger, token *oauth2.Token, req models.SyncRequest, entry models.RemoteEntry, summary *models.SyncSummary) {
	verdict, localPath := ShouldFetch(s.fs, entry, req.SavePath)
	switch verdict {
	case SkipUnsupported:
		summary.Ignored++
		logger.Debug("ignoring unsupported entry", "name", entry.Name)
		return
	case SkipExisting:
		summary.Skipped++
		s.host.ShowNotification(fmt.Sprintf("Skip %s - already existed", localPath))
		s.record(ctx, logger, summary.RunID, entry, localPath, models.OutcomeSkipped, 0, "")
		return
	}

	s.host.ShowNotification(fmt.Sprintf("Start sync %s", localPath))

	size, err := s.fetcher.Fetch(ctx, token, entry, localPath)
	if err != nil {
		summary.Failed++
		s.host.ShowNotification(downloadErrorMessage(entry, err))
		logger.Error("download failed", "name", entry.Name, "id", entry.ID, "error", err)
		s.record(ctx, logger, summary.RunID, entry, localPath, models.OutcomeFailed, 0, err.Error())
		return
	}

	summary.Downloaded++
	logger.Info("downloaded", "name", entry.Name, "bytes", size)
	s.record(ctx, logger, summary.RunID, entry, localPath, models.OutcomeDownloaded, size, "")

	if !s.registrar.Register(entry, localPath, req.LibraryPath, size) {
		logger.Warn("file is outside the library, not registered", "path", localPath, "library", req.LibraryPath)
	}
}

func (s *Syncer) record(ctx context.Context, logger *slog.Logger, runID string, entry models.RemoteEntry, path string, outcome models.Outcome, size int64, detail string) {
	if s.journal == nil {
		return
	}
	rec := models.SyncRecord{
		RunID:      runID,
		EntryID:    entry.ID,
		Name:       entry.Name,
		Path:       path,
		Outcome:    outcome,
		Size:       size,
		Detail:     detail,
		RecordedAt: s.clock.Now(),
	}
	if err := s.journal.Record(ctx, rec); err != nil {
		logger.Warn("failed to record entry", "name", entry.Name, "error", err)
	}
}

func downloadErrorMessage(entry models.RemoteEntry, err error) string {
	var statusErr *models.RemoteStatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("Error downloading '%s': %s.", entry.Name, statusErr.Error())
	}
	return fmt.Sprintf("Error downloading '%s': %v.", entry.Name, err)
}

func finishedMessage(s models.SyncSummary) string {
	msg := fmt.Sprintf("Finished syncing with Dropbox: %d downloaded, %d skipped, %d failed.", s.Downloaded, s.Skipped, s.Failed)
	if s.Cancelled {
		msg += " Stopped early."
	}
	return msg
}
