package models

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Adapters join one of these with the underlying cause so callers can
// classify failures with errors.Is.
var (
	ErrNetwork  = errors.New("network error")
	ErrProtocol = errors.New("protocol error")
	ErrAuth     = errors.New("authentication error")
	ErrConfig   = errors.New("configuration error")
)

// RemoteStatusError reports a non-success response to a content download.
type RemoteStatusError struct {
	Status int
	Body   string
}

func (e *RemoteStatusError) Error() string {
	return fmt.Sprintf("%d %s - %s", e.Status, http.StatusText(e.Status), e.Body)
}

// WriteError reports a failure to store downloaded bytes locally.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
