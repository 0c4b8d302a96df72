package tracker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"platodropbox/internal/core/domain/models"
	"platodropbox/internal/core/domain/ports"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

var _ ports.SyncJournal = (*SQLiteJournal)(nil)

// SQLiteJournal implements ports.SyncJournal on a SQLite database through bun.
type SQLiteJournal struct {
	db *bun.DB
}

func NewSQLiteJournal(ctx context.Context, path string) (*SQLiteJournal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}
	// SQLite allows a single writer.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	// Create tables if they don't exist
	if _, err := db.NewCreateTable().Model((*models.SyncRecord)(nil)).IfNotExists().Exec(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sync_records table: %w", err)
	}
	if _, err := db.NewCreateTable().Model((*models.SyncSummary)(nil)).IfNotExists().Exec(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sync_runs table: %w", err)
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) Record(ctx context.Context, rec models.SyncRecord) error {
	if _, err := j.db.NewInsert().Model(&rec).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert sync record: %w", err)
	}
	return nil
}

func (j *SQLiteJournal) Complete(ctx context.Context, summary models.SyncSummary) error {
	if _, err := j.db.NewInsert().Model(&summary).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert sync run: %w", err)
	}
	return nil
}

func (j *SQLiteJournal) Recent(ctx context.Context, limit int) ([]models.SyncRecord, error) {
	var recs []models.SyncRecord
	q := j.db.NewSelect().Model(&recs).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return recs, nil
}

// LastRun returns the most recently finished run, or nil when none was recorded.
func (j *SQLiteJournal) LastRun(ctx context.Context) (*models.SyncSummary, error) {
	run := new(models.SyncSummary)
	if err := j.db.NewSelect().Model(run).Order("finished_at DESC").Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return run, nil
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
