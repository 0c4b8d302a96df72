package service

import (
	"path/filepath"
	"platodropbox/internal/core/domain/models"
	"strings"

	"github.com/spf13/afero"
)

// SupportedExtension is the only document type synchronized.
const SupportedExtension = ".epub"

// Verdict is the download policy decision for one remote entry.
type Verdict int

const (
	// Fetch means the entry should be downloaded.
	Fetch Verdict = iota
	// SkipUnsupported entries are ignored without telling the user.
	SkipUnsupported
	// SkipExisting entries already have a file at their target path.
	SkipExisting
)

func (v Verdict) String() string {
	switch v {
	case Fetch:
		return "fetch"
	case SkipUnsupported:
		return "unsupported"
	case SkipExisting:
		return "already existed"
	default:
		return "unknown"
	}
}

// ShouldFetch decides whether entry must be downloaded into savePath and returns the
// target local path. Existence is checked by path only; a stale or partial local file
// is never replaced.
func ShouldFetch(fs afero.Fs, entry models.RemoteEntry, savePath string) (Verdict, string) {
	if entry.Tag == "folder" || !strings.HasSuffix(strings.ToLower(entry.Name), SupportedExtension) {
		return SkipUnsupported, ""
	}
	// Names must not escape the save directory.
	if entry.Name != filepath.Base(entry.Name) || strings.ContainsAny(entry.Name, `/\`) {
		return SkipUnsupported, ""
	}

	localPath := filepath.Join(savePath, entry.Name)
	if _, err := fs.Stat(localPath); err == nil {
		return SkipExisting, localPath
	}
	return Fetch, localPath
}
