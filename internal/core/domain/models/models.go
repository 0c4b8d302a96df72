package models

import (
	"time"

	"github.com/uptrace/bun"
)

// RemoteEntry is one item of a remote folder listing.
type RemoteEntry struct {
	Tag            string     `json:".tag,omitempty"`
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	ServerModified *time.Time `json:"server_modified,omitempty"`
}

// Credential is the long-lived refresh credential taken from the settings file.
type Credential struct {
	ClientID     string
	RefreshToken string
}

// SyncRequest carries everything a single run needs from the command line and settings.
type SyncRequest struct {
	LibraryPath string
	SavePath    string
	WifiEnabled bool
	Online      bool
	Credential  Credential
}

// CatalogRecord is the document description handed to the host library.
type CatalogRecord struct {
	Title      string      `json:"title"`
	Author     string      `json:"author"`
	Year       string      `json:"year"`
	Identifier string      `json:"identifier"`
	Added      string      `json:"added"`
	File       FileInfo    `json:"file"`
	Reader     ReaderState `json:"reader"`
}

type FileInfo struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
	Size int64  `json:"size"`
}

type ReaderState struct {
	Opened      string `json:"opened"`
	CurrentPage int    `json:"currentPage"`
	PagesCount  int    `json:"pagesCount"`
	Finished    bool   `json:"finished"`
	Dithered    bool   `json:"dithered"`
}

// Outcome is the journaled result for one entry.
type Outcome string

const (
	OutcomeDownloaded Outcome = "downloaded"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeFailed     Outcome = "failed"
)

// SyncRecord is one journal row.
type SyncRecord struct {
	bun.BaseModel `bun:"table:sync_records,alias:sr"`

	ID         int64     `bun:",pk,autoincrement" json:"-"`
	RunID      string    `bun:",notnull" json:"run_id"`
	EntryID    string    `bun:",notnull" json:"entry_id"`
	Name       string    `bun:",notnull" json:"name"`
	Path       string    `json:"path"`
	Outcome    Outcome   `bun:",notnull" json:"outcome"`
	Size       int64     `json:"size"`
	Detail     string    `json:"detail,omitempty"`
	RecordedAt time.Time `bun:",notnull" json:"recorded_at"`
}

// SyncSummary counts what happened during one run.
type SyncSummary struct {
	bun.BaseModel `bun:"table:sync_runs,alias:run"`

	RunID      string    `bun:",pk" json:"run_id"`
	StartedAt  time.Time `bun:",notnull" json:"started_at"`
	FinishedAt time.Time `bun:",notnull" json:"finished_at"`
	Listed     int       `json:"listed"`
	Downloaded int       `json:"downloaded"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	Ignored    int       `json:"ignored"`
	Cancelled  bool      `json:"cancelled"`
}
