package services

import (
	"math"
	"strings"
	"time"

	"github.com/nsventures/dealflow-cli/internal/core/domain"
	"github.com/nsventures/dealflow-cli/internal/logger"
)

// dateLayouts are tried in order when normalising date-like fields.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"1/2/2006",
}

// Transform converts one source record into its normalised pipeline entry:
// the primary row values plus every association the record contributes.
// Records whose company name is absent or empty return a *domain.SkipError;
// no partial entry is ever produced. Validation problems (bad enum values,
// unparseable dates) degrade to nil column values with a diagnostic, never
// an error.
//
// Both the online driver and the dump generator run their records through
// this one function, so the two modes cannot drift apart.
func Transform(rec domain.SourceRecord) (*domain.PipelineEntry, error) {
	name := strings.TrimSpace(rec.Str(domain.CompanyNameField))
	if name == "" {
		return nil, &domain.SkipError{
			RecordID:        rec.ID,
			Reason:          "missing company name",
			AvailableFields: rec.FieldNames(),
		}
	}

	entry := &domain.PipelineEntry{
		SourceRecordID: rec.ID,
		CompanyName:    name,
		CreatedTime:    rec.CreatedTime,
		Values:         make(map[string]any, len(domain.FieldMappings)),
		Categories:     make(map[domain.CategoryKind][]string, len(domain.CategoryKinds)),
	}

	for _, m := range domain.FieldMappings {
		switch m.Kind {
		case domain.MapBool:
			// Flags are always present on the output: absent means false.
			entry.Values[m.Column] = rec.Truthy(m.Source)
			continue
		default:
			if !rec.Has(m.Source) {
				continue
			}
		}

		switch m.Kind {
		case domain.MapText:
			if v := rec.Str(m.Source); v != "" {
				entry.Values[m.Column] = v
			}
		case domain.MapNumber:
			if n, ok := rec.Num(m.Source); ok {
				entry.Values[m.Column] = n
			}
		case domain.MapMoney:
			if n, ok := rec.Num(m.Source); ok {
				entry.Values[m.Column] = toMinorUnits(n)
			}
		case domain.MapDate:
			if d := normalizeDate(rec.Str(m.Source)); d != "" {
				entry.Values[m.Column] = d
			}
		case domain.MapEnum:
			value, known := domain.ValidateEnum(m.Enum, rec.Str(m.Source))
			if !known {
				logger.Warn("invalid %s value %q on record %s, setting to NULL",
					m.Enum, strings.TrimSpace(rec.Str(m.Source)), rec.ID)
			}
			if value != nil {
				entry.Values[m.Column] = *value
			}
		}
	}

	// The generic text path copies the raw value; the stored column must
	// match the trimmed name the dedup and skip logic operate on.
	entry.Values["company_name"] = name

	entry.CreatedBy = rec.User(domain.CreatedByField)

	for _, kind := range domain.CategoryKinds {
		if names := rec.CategoryNames(kind); len(names) > 0 {
			entry.Categories[kind] = names
		}
	}

	entry.Assignees = rec.UserList(domain.AssigneeField)
	entry.PassCommunicator = rec.User(domain.PassCommField)
	entry.Attachments = collectAttachments(rec)

	return entry, nil
}

// toMinorUnits converts a major-unit monetary amount to integer cents.
// Rounding avoids float drift on amounts like 1250000.50.
func toMinorUnits(major float64) int64 {
	return int64(math.Round(major * 100))
}

// normalizeDate reduces a date-like string to YYYY-MM-DD. Values that fail
// every known layout yield "" rather than an error.
func normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	logger.Debug("unparseable date %q, setting to NULL", raw)
	return ""
}

func collectAttachments(rec domain.SourceRecord) []domain.Attachment {
	var out []domain.Attachment
	appendFiles := func(field, fileType string) {
		for _, f := range rec.FileList(field) {
			att := domain.Attachment{
				FileType:     fileType,
				FileName:     f.Filename,
				FileURL:      f.URL,
				MimeType:     f.Type,
				SourceFileID: f.ID,
			}
			if f.Size > 0 {
				size := int64(f.Size)
				att.FileSize = &size
			}
			out = append(out, att)
		}
	}
	appendFiles(domain.DeckFileField, domain.AttachmentDeck)
	appendFiles(domain.ReviewFileField, domain.AttachmentReviewMaterial)
	return out
}
