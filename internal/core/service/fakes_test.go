package service_test

import (
	"context"
	"errors"
	"io"
	"os"
	"platodropbox/internal/core/domain/models"
	"strings"
	"sync"
	"sync/atomic"
	"testing/iotest"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/oauth2"
)

// fakeRemote implements ports.RemoteStore in memory.
type fakeRemote struct {
	mu sync.Mutex

	tokenErr error
	listErr  error
	entries  []models.RemoteEntry
	content  map[string]string
	status   map[string]*models.RemoteStatusError
	// brokenAfter makes the body for an id fail after the given prefix.
	brokenAfter map[string]string

	tokenCalls    int
	listCalls     int
	downloadCalls []string
	creds         []models.Credential

	// onDownload runs before each download is served.
	onDownload func(id string)
}

func (f *fakeRemote) AccessToken(ctx context.Context, cred models.Credential) (*oauth2.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenCalls++
	f.creds = append(f.creds, cred)
	if f.tokenErr != nil {
		return nil, f.tokenErr
	}
	return &oauth2.Token{AccessToken: "sl.test", TokenType: "bearer"}, nil
}

func (f *fakeRemote) ListFolder(ctx context.Context, token *oauth2.Token) ([]models.RemoteEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries, nil
}

func (f *fakeRemote) Download(ctx context.Context, token *oauth2.Token, entryID string) (io.ReadCloser, error) {
	f.mu.Lock()
	f.downloadCalls = append(f.downloadCalls, entryID)
	hook := f.onDownload
	f.mu.Unlock()

	if hook != nil {
		hook(entryID)
	}
	if st, ok := f.status[entryID]; ok {
		return nil, st
	}
	if prefix, ok := f.brokenAfter[entryID]; ok {
		return io.NopCloser(io.MultiReader(strings.NewReader(prefix), iotest.ErrReader(errors.New("connection reset by peer")))), nil
	}
	return io.NopCloser(strings.NewReader(f.content[entryID])), nil
}

func (f *fakeRemote) downloads() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.downloadCalls...)
}

type hostEvent struct {
	kind    string
	message string
	info    models.CatalogRecord
	wifi    bool
}

// recordingHost implements ports.Host and remembers every call in order.
type recordingHost struct {
	mu     sync.Mutex
	events []hostEvent
}

func (h *recordingHost) ShowNotification(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, hostEvent{kind: "notify", message: message})
}

func (h *recordingHost) AddDocument(info models.CatalogRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, hostEvent{kind: "addDocument", info: info})
}

func (h *recordingHost) SetWifi(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, hostEvent{kind: "setWifi", wifi: enabled})
}

func (h *recordingHost) notifications() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, e := range h.events {
		if e.kind == "notify" {
			out = append(out, e.message)
		}
	}
	return out
}

func (h *recordingHost) documents() []models.CatalogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []models.CatalogRecord
	for _, e := range h.events {
		if e.kind == "addDocument" {
			out = append(out, e.info)
		}
	}
	return out
}

func (h *recordingHost) snapshot() []hostEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]hostEvent(nil), h.events...)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// failingWriteFs lets OpenFile succeed but breaks writes after limit bytes.
type failingWriteFs struct {
	afero.Fs
	limit int
}

func (f failingWriteFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	file, err := f.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &limitedFile{File: file, left: f.limit}, nil
}

type limitedFile struct {
	afero.File
	left int
}

func (l *limitedFile) Write(p []byte) (int, error) {
	if len(p) > l.left {
		n, _ := l.File.Write(p[:l.left])
		l.left = 0
		return n, errors.New("no space left on device")
	}
	l.left -= len(p)
	return l.File.Write(p)
}

// openFailFs refuses to open any file for writing.
type openFailFs struct {
	afero.Fs
}

func (f openFailFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
}

// memJournal implements ports.SyncJournal in memory.
type memJournal struct {
	mu        sync.Mutex
	records   []models.SyncRecord
	summaries []models.SyncSummary
	failWith  error
}

func (j *memJournal) Record(ctx context.Context, rec models.SyncRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.failWith != nil {
		return j.failWith
	}
	j.records = append(j.records, rec)
	return nil
}

func (j *memJournal) Complete(ctx context.Context, s models.SyncSummary) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.failWith != nil {
		return j.failWith
	}
	j.summaries = append(j.summaries, s)
	return nil
}

func (j *memJournal) Recent(ctx context.Context, limit int) ([]models.SyncRecord, error) {
	return nil, nil
}

func (j *memJournal) LastRun(ctx context.Context) (*models.SyncSummary, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.summaries) == 0 {
		return nil, nil
	}
	last := j.summaries[len(j.summaries)-1]
	return &last, nil
}

func (j *memJournal) Close() error { return nil }

func newFlag() *atomic.Bool { return new(atomic.Bool) }
