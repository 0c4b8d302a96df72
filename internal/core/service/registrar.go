package service

import (
	"path/filepath"
	"platodropbox/internal/core/domain/models"
	"platodropbox/internal/core/domain/ports"
	"strings"
	"time"
)

const (
	unknownAuthor   = "Unknown"
	timestampLayout = "2006-01-02 15:04:05"
)

// Registrar hands newly downloaded documents to the host library.
type Registrar struct {
	host  ports.Host
	clock ports.Clock
}

func NewRegistrar(host ports.Host, clock ports.Clock) *Registrar {
	return &Registrar{host: host, clock: clock}
}

// Register emits an addDocument event for localPath when it lies inside libraryPath.
// It reports whether the document was registered; files outside the library are
// kept on disk but never catalogued.
func (r *Registrar) Register(entry models.RemoteEntry, localPath, libraryPath string, size int64) bool {
	rel, ok := relativeTo(libraryPath, localPath)
	if !ok {
		return false
	}
	r.host.AddDocument(BuildCatalogRecord(entry, rel, size, r.clock.Now()))
	return true
}

// BuildCatalogRecord builds the host record. Timestamps use the local time zone.
func BuildCatalogRecord(entry models.RemoteEntry, relPath string, size int64, now time.Time) models.CatalogRecord {
	year := ""
	if entry.ServerModified != nil && !entry.ServerModified.IsZero() {
		year = entry.ServerModified.UTC().Format("2006")
	}

	stamp := now.In(time.Local).Format(timestampLayout)

	return models.CatalogRecord{
		Title:      entry.Name,
		Author:     unknownAuthor,
		Year:       year,
		Identifier: entry.ID,
		Added:      stamp,
		File: models.FileInfo{
			Path: relPath,
			Kind: strings.TrimPrefix(strings.ToLower(filepath.Ext(entry.Name)), "."),
			Size: size,
		},
		Reader: models.ReaderState{
			Opened:      stamp,
			CurrentPage: 0,
			PagesCount:  1,
			Finished:    false,
			Dithered:    false,
		},
	}
}

func relativeTo(base, target string) (string, bool) {
	if base == "" {
		return "", false
	}
	rel, err := filepath.Rel(base, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}
