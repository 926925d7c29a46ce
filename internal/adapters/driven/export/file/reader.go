// Package file reads the exported pipeline record set from a JSON dump on
// disk, as produced by the export command or the upstream export script.
package file

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/nsventures/dealflow-cli/internal/core/domain"
	"github.com/nsventures/dealflow-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.ExportReader = (*Reader)(nil)

// Reader loads source records from a JSON array file.
type Reader struct {
	path string
}

// NewReader creates a reader for the dump at path.
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// ReadAll returns every record in the dump in file order. An unreadable or
// malformed file is a fatal error for the run.
func (r *Reader) ReadAll(_ context.Context) ([]domain.SourceRecord, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("reading export file: %w", err)
	}

	var records []domain.SourceRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parsing export file %s: %w", r.path, err)
	}
	return records, nil
}
