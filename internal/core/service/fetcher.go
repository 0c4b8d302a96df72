package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"platodropbox/internal/core/domain/models"
	"platodropbox/internal/core/domain/ports"

	"github.com/spf13/afero"
	"golang.org/x/oauth2"
)

// Fetcher downloads one entry to local storage. The destination file is only created
// once the remote has answered with a success status, and it is removed again if
// writing fails, so a failed fetch never leaves a partial file behind.
type Fetcher struct {
	src ports.ContentSource
	fs  afero.Fs
}

func NewFetcher(src ports.ContentSource, fs afero.Fs) *Fetcher {
	return &Fetcher{src: src, fs: fs}
}

// Fetch returns the number of bytes written. Errors are one of
// *models.RemoteStatusError, *models.WriteError or a wrapped models.ErrNetwork.
func (f *Fetcher) Fetch(ctx context.Context, token *oauth2.Token, entry models.RemoteEntry, dest string) (int64, error) {
	body, err := f.src.Download(ctx, token, entry.ID)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	file, err := f.fs.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return 0, &models.WriteError{Path: dest, Err: err}
	}

	n, err := io.Copy(file, body)
	if cerr := file.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		// Best effort; the outcome is already a failure.
		_ = f.fs.Remove(dest)
		return 0, &models.WriteError{Path: dest, Err: fmt.Errorf("after %d bytes: %w", n, err)}
	}

	return n, nil
}
