package service

import (
	"context"
	"fmt"
	"log/slog"
	"platodropbox/internal/adapters/dropbox"
	"platodropbox/internal/adapters/tracker"
	"platodropbox/internal/config"
	"platodropbox/internal/core/domain/models"
	"platodropbox/internal/core/domain/ports"
)

func CreateRemoteStore(cfg *config.Config, logger *slog.Logger) ports.RemoteStore {
	return dropbox.NewClient(dropbox.Options{
		TokenURL:       cfg.TokenURL,
		APIBaseURL:     cfg.APIBaseURL,
		ContentBaseURL: cfg.ContentBaseURL,
		UserAgent:      cfg.UserAgent,
		Timeout:        cfg.HTTPTimeout,
		LogLevel:       cfg.LogLevel,
		Logger:         logger,
	})
}

func CreateJournal(ctx context.Context, cfg *config.Config) (ports.SyncJournal, error) {
	switch cfg.JournalType {
	case config.JournalSQLite:
		j, err := tracker.NewSQLiteJournal(ctx, cfg.JournalPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", models.ErrConfig, err)
		}
		return j, nil
	case config.JournalJSON:
		j, err := tracker.NewFileJournal(cfg.JournalPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", models.ErrConfig, err)
		}
		return j, nil
	default:
		return tracker.NopJournal{}, nil
	}
}
