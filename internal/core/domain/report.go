package domain

// RecordError describes a per-record failure with enough context to locate
// and fix the source record without re-running the batch.
type RecordError struct {
	RecordID    string
	CompanyName string
	Message     string
}

// SkippedRecord describes a record excluded by the company-name
// precondition.
type SkippedRecord struct {
	RecordID        string
	CreatedTime     string
	Reason          string
	AvailableFields []string
}

// Summary aggregates the outcome of a migration or dump run. Itemised
// lists are reported in full; AssociationFailures counts category, user
// and attachment links that were dropped best-effort while the primary
// row succeeded.
type Summary struct {
	Processed           int
	Successful          int
	Errors              int
	Skipped             int
	AssociationFailures int

	ErrorRecords   []RecordError
	SkippedRecords []SkippedRecord
}

// InspectionReport is the read-only pre-flight analysis of a record set.
// It enforces nothing; a human decides whether to proceed.
type InspectionReport struct {
	TotalRecords        int
	MissingCompanyNames int
	FieldNames          []string
	// EnumValues and UnknownEnumValues are keyed by source field name so
	// fields sharing one allowed set stay distinguishable in the report.
	EnumValues        map[string][]string
	UnknownEnumValues map[string][]string
	Categories          map[CategoryKind][]string
	Users               []UserRef
	AttachmentCount     int
	DateFieldsSeen      []string
}

// Clean reports whether no validation warnings were found: no missing
// company names and no enum value outside its allowed set.
func (r *InspectionReport) Clean() bool {
	if r.MissingCompanyNames > 0 {
		return false
	}
	for _, vals := range r.UnknownEnumValues {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}
