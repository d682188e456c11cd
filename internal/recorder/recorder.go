package recorder

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"PriceLens/internal/model"
)

// ErrNoRuns is returned by Latest when nothing has been recorded yet.
var ErrNoRuns = errors.New("no runs recorded")

// RunRecord is one completed analysis run.
type RunRecord struct {
	ID         string
	Timestamp  time.Time
	Source     string // processed CSV the run read
	PriceField string
	Rows       int
	KPI        model.KPISummary
}

// NewRunRecord stamps a run with a fresh id and the current time.
func NewRunRecord(source, field string, rows int, kpi *model.KPISummary) *RunRecord {
	return &RunRecord{
		ID:         uuid.NewString(),
		Timestamp:  time.Now(),
		Source:     source,
		PriceField: field,
		Rows:       rows,
		KPI:        *kpi,
	}
}

// Recorder persists the run history.
type Recorder interface {
	RecordRun(run *RunRecord) error
	// Latest returns the most recent run, or ErrNoRuns.
	Latest() (*RunRecord, error)
	// List returns up to limit runs, newest first. limit <= 0 means all.
	List(limit int) ([]RunRecord, error)
	Close() error
}
