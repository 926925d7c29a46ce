package driving

import (
	"context"
	"io"

	"github.com/nsventures/dealflow-cli/internal/core/domain"
)

// Migrator performs the online migration: reconcile reference data against
// the store, then insert every record through store calls.
type Migrator interface {
	// Migrate runs the full migration and returns the summary. A non-nil
	// error means a fatal failure before any record writes; per-record
	// problems are reported through the summary instead.
	Migrate(ctx context.Context, records []domain.SourceRecord) (*domain.Summary, error)
}

// DumpGenerator performs the offline migration: the same transform rules,
// emitted as one ordered batch of SQL statements instead of store writes.
type DumpGenerator interface {
	// Generate writes the batch script to w and returns the summary.
	Generate(ctx context.Context, records []domain.SourceRecord, w io.Writer) (*domain.Summary, error)
}

// Inspector produces the read-only pre-flight report used to decide
// between online and offline mode.
type Inspector interface {
	Inspect(records []domain.SourceRecord) *domain.InspectionReport
}
