package datagen

import (
	"github.com/pgEdge/pgedge-shopdata/internal/logging"
)

// ProgressReporter tracks and reports per-table progress while rows are
// generated or loaded.
type ProgressReporter struct {
	tableName        string
	stage            string
	totalRows        int64
	currentRow       int64
	progressInterval int64
}

// NewProgressReporter creates a new progress reporter. Stage names the
// activity being tracked (for example "generate" or "load"). An interval of
// zero or less only reports completion.
func NewProgressReporter(tableName, stage string, totalRows int64, interval int64) *ProgressReporter {
	return &ProgressReporter{
		tableName:        tableName,
		stage:            stage,
		totalRows:        totalRows,
		progressInterval: interval,
	}
}

// Update updates the progress and logs if necessary.
func (p *ProgressReporter) Update(rows int64) {
	oldRow := p.currentRow
	p.currentRow += rows

	if p.progressInterval <= 0 || p.totalRows <= 0 {
		return
	}

	// Check if we crossed a progress interval
	if p.currentRow/p.progressInterval > oldRow/p.progressInterval {
		pct := float64(p.currentRow) / float64(p.totalRows) * 100
		logging.Debug().
			Str("table", p.tableName).
			Str("stage", p.stage).
			Int64("rows", p.currentRow).
			Int64("total", p.totalRows).
			Float64("percent", pct).
			Msg("Progress")
	}
}

// Rows returns the number of rows recorded so far.
func (p *ProgressReporter) Rows() int64 {
	return p.currentRow
}

// Done logs completion.
func (p *ProgressReporter) Done() {
	logging.Info().
		Str("table", p.tableName).
		Str("stage", p.stage).
		Int64("rows", p.currentRow).
		Msg("Table complete")
}
