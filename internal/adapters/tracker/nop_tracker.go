package tracker

import (
	"context"
	"platodropbox/internal/core/domain/models"
	"platodropbox/internal/core/domain/ports"
)

var _ ports.SyncJournal = NopJournal{}

// NopJournal discards everything.
type NopJournal struct{}

func (NopJournal) Record(context.Context, models.SyncRecord) error { return nil }
func (NopJournal) Complete(context.Context, models.SyncSummary) error { return nil }
func (NopJournal) Recent(context.Context, int) ([]models.SyncRecord, error) {
	return nil, nil
}
func (NopJournal) LastRun(context.Context) (*models.SyncSummary, error) {
	return nil, nil
}
func (NopJournal) Close() error { return nil }
