package ports

import (
	"context"
	"io"
	"platodropbox/internal/core/domain/models"
	"time"

	"golang.org/x/oauth2"
)

// TokenProvider exchanges a refresh credential for a short-lived access token.
type TokenProvider interface {
	AccessToken(ctx context.Context, cred models.Credential) (*oauth2.Token, error)
}

// FolderLister returns the entries of the synchronized remote folder.
type FolderLister interface {
	ListFolder(ctx context.Context, token *oauth2.Token) ([]models.RemoteEntry, error)
}

// ContentSource opens the content of a remote entry by its stable id.
// A non-success response is returned as *models.RemoteStatusError.
type ContentSource interface {
	Download(ctx context.Context, token *oauth2.Token, entryID string) (io.ReadCloser, error)
}

// RemoteStore is the full remote surface used by a sync run.
type RemoteStore interface {
	TokenProvider
	FolderLister
	ContentSource
}

// Host is the e-reader integration surface. Calls are one-way.
type Host interface {
	ShowNotification(message string)
	AddDocument(info models.CatalogRecord)
	SetWifi(enabled bool)
}

// SyncJournal keeps an observational history of sync runs.
type SyncJournal interface {
	Record(ctx context.Context, rec models.SyncRecord) error
	Complete(ctx context.Context, summary models.SyncSummary) error
	Recent(ctx context.Context, limit int) ([]models.SyncRecord, error)
	// LastRun returns the most recently completed run, or nil when there is none.
	LastRun(ctx context.Context) (*models.SyncSummary, error)
	Close() error
}

// Clock abstracts time so catalog timestamps can be tested deterministically.
type Clock interface {
	Now() time.Time
}
