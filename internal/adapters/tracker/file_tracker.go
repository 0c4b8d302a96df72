package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"platodropbox/internal/core/domain/models"
	"platodropbox/internal/core/domain/ports"
	"sync"
)

// Ensure FileJournal implements SyncJournal
var _ ports.SyncJournal = (*FileJournal)(nil)

// maxFileRecords bounds the history kept in the JSON file.
const maxFileRecords = 500

// FileJournal implements ports.SyncJournal using a local JSON file.
type FileJournal struct {
	filepath string
	mu       sync.RWMutex
	state    journalData
	dirty    bool
}

type journalData struct {
	LastRun *models.SyncSummary `json:"last_run,omitempty"`
	Records []models.SyncRecord `json:"records"`
}

// NewFileJournal initializes a journal from a file path.
func NewFileJournal(path string) (*FileJournal, error) {
	j := &FileJournal{filepath: path}

	if err := j.load(); err != nil {
		return nil, fmt.Errorf("failed to load journal file: %w", err)
	}

	return j, nil
}

func (j *FileJournal) load() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(j.filepath), 0755); err != nil {
		return err
	}

	f, err := os.Open(j.filepath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&j.state); err != nil {
		if err == io.EOF {
			return nil // Empty file is fine
		}
		return err
	}

	return nil
}

// Record appends an entry outcome in memory.
func (j *FileJournal) Record(ctx context.Context, rec models.SyncRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.state.Records = append(j.state.Records, rec)
	if over := len(j.state.Records) - maxFileRecords; over > 0 {
		j.state.Records = append([]models.SyncRecord(nil), j.state.Records[over:]...)
	}
	j.dirty = true
	return nil
}

// Complete stores the run summary and persists the journal.
func (j *FileJournal) Complete(ctx context.Context, summary models.SyncSummary) error {
	j.mu.Lock()
	j.state.LastRun = &summary
	j.dirty = true
	j.mu.Unlock()

	return j.save()
}

// Recent returns up to limit records, newest first.
func (j *FileJournal) Recent(ctx context.Context, limit int) ([]models.SyncRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	n := len(j.state.Records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.SyncRecord, 0, n)
	for i := len(j.state.Records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, j.state.Records[i])
	}
	return out, nil
}

// LastRun returns the summary of the most recently completed run, if any.
func (j *FileJournal) LastRun(ctx context.Context) (*models.SyncSummary, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.state.LastRun, nil
}

// Close flushes records that were not persisted by Complete.
func (j *FileJournal) Close() error {
	j.mu.RLock()
	dirty := j.dirty
	j.mu.RUnlock()
	if !dirty {
		return nil
	}
	return j.save()
}

func (j *FileJournal) save() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	// Atomic write: write to temp file then rename
	tmpFile := j.filepath + ".tmp"
	f, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(j.state); err != nil {
		f.Close()
		os.Remove(tmpFile)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err := os.Rename(tmpFile, j.filepath); err != nil {
		return err
	}

	j.dirty = false
	return nil
}
