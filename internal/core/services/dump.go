package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nsventures/dealflow-cli/internal/core/domain"
	"github.com/nsventures/dealflow-cli/internal/core/ports/driving"
	"github.com/nsventures/dealflow-cli/internal/logger"
)

// Ensure DumpService implements the interface.
var _ driving.DumpGenerator = (*DumpService)(nil)

// DumpService is the offline execution mode: it runs records through the
// same transform rules as the online driver but emits one self-contained
// batch of SQL INSERT statements instead of performing store writes.
//
// Reference rows get freshly generated surrogate ids on every run; junction
// rows reference the pipeline and registry rows by natural-key subselects,
// because pipeline ids do not exist until the batch is applied.
type DumpService struct {
	newID func() string
	now   func() time.Time
}

// NewDumpService creates a new SQL dump generator.
func NewDumpService() *DumpService {
	return &DumpService{
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// Generate writes the full batch script to w and returns the run summary.
// Statement order matters: registry inserts first so later subselects can
// resolve, then the pipeline block, then one block per association kind.
func (d *DumpService) Generate(_ context.Context, records []domain.SourceRecord, w io.Writer) (*domain.Summary, error) {
	ref := Collect(records)

	logger.Info("Found %d unique users", len(ref.Users))
	for _, kind := range domain.CategoryKinds {
		logger.Info("Found %d %s categories", len(ref.Categories[kind]), kind)
	}

	summary := &domain.Summary{}
	var b strings.Builder

	fmt.Fprintf(&b, "-- Pipeline migration SQL dump\n")
	fmt.Fprintf(&b, "-- Generated: %s\n\n", d.now().UTC().Format(time.RFC3339))

	d.writeReferenceInserts(&b, ref)

	entries := d.transformAll(records, summary)
	d.writePipelineInserts(&b, entries)
	d.writeJunctionInserts(&b, entries)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return nil, fmt.Errorf("writing dump: %w", err)
	}
	return summary, nil
}

// transformAll runs every record through the shared transformer, counting
// skips and errors exactly like the online driver does.
func (d *DumpService) transformAll(records []domain.SourceRecord, summary *domain.Summary) []*domain.PipelineEntry {
	entries := make([]*domain.PipelineEntry, 0, len(records))
	for _, rec := range records {
		summary.Processed++
		entry := d.transformRecord(rec, summary)
		if entry != nil {
			entries = append(entries, entry)
			summary.Successful++
		}
	}
	return entries
}

func (d *DumpService) transformRecord(rec domain.SourceRecord, summary *domain.Summary) (entry *domain.PipelineEntry) {
	defer func() {
		if r := recover(); r != nil {
			entry = nil
			summary.Errors++
			summary.ErrorRecords = append(summary.ErrorRecords, domain.RecordError{
				RecordID:    rec.ID,
				CompanyName: rec.Str(domain.CompanyNameField),
				Message:     fmt.Sprintf("panic: %v", r),
			})
		}
	}()

	entry, err := Transform(rec)
	if err != nil {
		if skip, ok := domain.IsSkip(err); ok {
			summary.Skipped++
			summary.SkippedRecords = append(summary.SkippedRecords, domain.SkippedRecord{
				RecordID:        skip.RecordID,
				CreatedTime:     rec.CreatedTime,
				Reason:          skip.Reason,
				AvailableFields: skip.AvailableFields,
			})
			return nil
		}
		summary.Errors++
		summary.ErrorRecords = append(summary.ErrorRecords, domain.RecordError{
			RecordID:    rec.ID,
			CompanyName: rec.Str(domain.CompanyNameField),
			Message:     err.Error(),
		})
		return nil
	}
	return entry
}

// writeReferenceInserts emits the user and category registry blocks with
// fresh surrogate ids.
func (d *DumpService) writeReferenceInserts(b *strings.Builder, ref domain.ReferenceData) {
	if len(ref.Users) > 0 {
		b.WriteString("-- Insert Users\n")
		b.WriteString("INSERT INTO users (id, email, name, airtable_user_id) VALUES\n")
		rows := make([]string, 0, len(ref.Users))
		for _, u := range ref.Users {
			rows = append(rows, fmt.Sprintf("(%s, %s, %s, %s)",
				sqlQuote(d.newID()), sqlQuote(u.Email), sqlQuote(u.Name), sqlQuote(u.ID)))
		}
		b.WriteString(strings.Join(rows, ",\n") + ";\n\n")
	}

	for _, kind := range domain.CategoryKinds {
		names := ref.Categories[kind]
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(b, "-- Insert %s categories\n", kind)
		fmt.Fprintf(b, "INSERT INTO %s (id, name, color) VALUES\n", kind.CategoryTable())
		rows := make([]string, 0, len(names))
		for _, name := range names {
			rows = append(rows, fmt.Sprintf("(%s, %s, %s)",
				sqlQuote(d.newID()), sqlQuote(name), sqlQuote(domain.DefaultCategoryColor)))
		}
		b.WriteString(strings.Join(rows, ",\n") + ";\n\n")
	}
}

// writePipelineInserts emits the primary-entity block as one multi-row
// INSERT in mapping-table column order.
func (d *DumpService) writePipelineInserts(b *strings.Builder, entries []*domain.PipelineEntry) {
	if len(entries) == 0 {
		return
	}

	columns := append([]string{"id"}, domain.PipelineColumns()...)
	columns = append(columns, "created_at", "created_by", "updated_at", "airtable_record_id", "migrated_at")

	b.WriteString("-- Insert Pipeline Records\n")
	fmt.Fprintf(b, "INSERT INTO pipeline (\n  %s\n) VALUES\n", strings.Join(columns, ", "))

	rows := make([]string, 0, len(entries))
	for _, entry := range entries {
		values := make([]string, 0, len(columns))
		values = append(values, sqlQuote(d.newID()))
		for _, col := range domain.PipelineColumns() {
			values = append(values, sqlValue(entry.Values[col]))
		}
		values = append(values, sqlQuote(entry.CreatedTime))
		values = append(values, renderRef(createdByRef(entry)))
		values = append(values, "NOW()")
		values = append(values, sqlQuote(entry.SourceRecordID))
		values = append(values, "NOW()")
		rows = append(rows, "("+strings.Join(values, ", ")+")")
	}
	b.WriteString(strings.Join(rows, ",\n") + ";\n\n")
}

// writeJunctionInserts emits one block per association kind. Every foreign
// key is a deferred natural-key lookup; blocks with no rows are omitted.
func (d *DumpService) writeJunctionInserts(b *strings.Builder, entries []*domain.PipelineEntry) {
	for _, kind := range domain.CategoryKinds {
		var rows []string
		for _, entry := range entries {
			pipelineRef := pipelineLookup(entry)
			for _, name := range entry.Categories[kind] {
				catRef := domain.DeferredRef(kind.CategoryTable(), "name", name)
				rows = append(rows, fmt.Sprintf("(%s, %s, %s)",
					sqlQuote(d.newID()), renderRef(pipelineRef), renderRef(catRef)))
			}
		}
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(b, "-- Insert %s junction records\n", kind)
		fmt.Fprintf(b, "INSERT INTO %s (id, pipeline_id, %s) VALUES\n", kind.JunctionTable(), kind.JunctionColumn())
		b.WriteString(strings.Join(rows, ",\n") + ";\n\n")
	}

	var assigneeRows []string
	for _, entry := range entries {
		for _, assignee := range entry.Assignees {
			if assignee.Email == "" {
				continue
			}
			userRef := domain.DeferredRef("users", "airtable_user_id", assignee.ID)
			assigneeRows = append(assigneeRows, fmt.Sprintf("(%s, %s, %s)",
				sqlQuote(d.newID()), renderRef(pipelineLookup(entry)), renderRef(userRef)))
		}
	}
	if len(assigneeRows) > 0 {
		b.WriteString("-- Insert assignee junction records\n")
		b.WriteString("INSERT INTO pipeline_assignees (id, pipeline_id, user_id) VALUES\n")
		b.WriteString(strings.Join(assigneeRows, ",\n") + ";\n\n")
	}

	var passRows []string
	for _, entry := range entries {
		pc := entry.PassCommunicator
		if pc == nil || pc.Email == "" {
			continue
		}
		userRef := domain.DeferredRef("users", "airtable_user_id", pc.ID)
		passRows = append(passRows, fmt.Sprintf("(%s, %s)",
			renderRef(pipelineLookup(entry)), renderRef(userRef)))
	}
	if len(passRows) > 0 {
		b.WriteString("-- Insert pass communicator records\n")
		b.WriteString("INSERT INTO pipeline_pass_communicator (pipeline_id, user_id) VALUES\n")
		b.WriteString(strings.Join(passRows, ",\n") + ";\n\n")
	}

	var attachmentRows []string
	for _, entry := range entries {
		for _, att := range entry.Attachments {
			size := "NULL"
			if att.FileSize != nil {
				size = strconv.FormatInt(*att.FileSize, 10)
			}
			attachmentRows = append(attachmentRows, fmt.Sprintf("(%s, %s, %s, %s, %s, %s, %s, %s)",
				sqlQuote(d.newID()), renderRef(pipelineLookup(entry)), sqlQuote(att.FileType),
				sqlQuote(att.FileName), sqlQuote(att.FileURL), size,
				sqlQuote(att.MimeType), sqlQuote(att.SourceFileID)))
		}
	}
	if len(attachmentRows) > 0 {
		b.WriteString("-- Insert attachment records\n")
		b.WriteString("INSERT INTO pipeline_attachments (id, pipeline_id, file_type, file_name, file_url, file_size, mime_type, airtable_attachment_id) VALUES\n")
		b.WriteString(strings.Join(attachmentRows, ",\n") + ";\n\n")
	}
}

// pipelineLookup resolves the owning pipeline row by its stable source
// record id.
func pipelineLookup(entry *domain.PipelineEntry) domain.Ref {
	return domain.DeferredRef("pipeline", "airtable_record_id", entry.SourceRecordID)
}

// createdByRef resolves the creator by the Airtable collaborator id, or
// NULL when the record has no creator with an email.
func createdByRef(entry *domain.PipelineEntry) domain.Ref {
	if entry.CreatedBy == nil || entry.CreatedBy.Email == "" {
		return domain.Ref{}
	}
	return domain.DeferredRef("users", "airtable_user_id", entry.CreatedBy.ID)
}

// sqlQuote renders a string as a single-quoted SQL literal.
func sqlQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// sqlValue renders a transformed column value as a SQL literal.
func sqlValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return sqlQuote(val)
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return sqlQuote(fmt.Sprintf("%v", val))
	}
}

// renderRef renders a reference value: a quoted literal when resolved, a
// natural-key subselect when deferred, NULL when empty.
func renderRef(r domain.Ref) string {
	if r.Lookup != nil {
		return fmt.Sprintf("(SELECT id FROM %s WHERE %s = %s)",
			r.Lookup.Table, r.Lookup.Column, sqlQuote(r.Lookup.Value))
	}
	if r.ID == "" {
		return "NULL"
	}
	return sqlQuote(r.ID)
}
