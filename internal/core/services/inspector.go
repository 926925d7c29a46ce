package services

import (
	"sort"

	"github.com/nsventures/dealflow-cli/internal/core/domain"
	"github.com/nsventures/dealflow-cli/internal/core/ports/driving"
)

// Ensure InspectorService implements the interface.
var _ driving.Inspector = (*InspectorService)(nil)

// InspectorService produces the read-only pre-flight report. It shares the
// enum registry and category field definitions with the transformer, so
// whatever it warns about is exactly what the transformer would NULL out.
type InspectorService struct{}

// NewInspectorService creates a new inspector.
func NewInspectorService() *InspectorService {
	return &InspectorService{}
}

// dateSourceFields are the date-bearing fields tracked in the report.
var dateSourceFields = []string{"Created", "Pass Date", "Investment date", "Signed NDA"}

// Inspect analyses the record set without mutating anything: field
// inventory, observed enum values with unknown-value warnings, category
// and user inventories, attachment counts. It enforces nothing; the
// caller decides whether to proceed with migration.
func (s *InspectorService) Inspect(records []domain.SourceRecord) *domain.InspectionReport {
	report := &domain.InspectionReport{
		TotalRecords:      len(records),
		EnumValues:        make(map[string][]string),
		UnknownEnumValues: make(map[string][]string),
		Categories:        make(map[domain.CategoryKind][]string),
	}

	fieldNames := make(map[string]struct{})
	enumSeen := make(map[string]map[string]struct{})
	for _, m := range domain.EnumFieldMappings() {
		enumSeen[m.Source] = make(map[string]struct{})
	}
	categorySeen := make(map[domain.CategoryKind]map[string]struct{})
	for _, kind := range domain.CategoryKinds {
		categorySeen[kind] = make(map[string]struct{})
	}
	usersByID := make(map[string]domain.UserRef)
	dateSeen := make(map[string]struct{})

	for _, rec := range records {
		for _, name := range rec.FieldNames() {
			fieldNames[name] = struct{}{}
		}

		if rec.Str(domain.CompanyNameField) == "" {
			report.MissingCompanyNames++
		}

		for _, m := range domain.EnumFieldMappings() {
			if v := rec.Str(m.Source); v != "" {
				if _, dup := enumSeen[m.Source][v]; !dup {
					enumSeen[m.Source][v] = struct{}{}
					report.EnumValues[m.Source] = append(report.EnumValues[m.Source], v)
				}
			}
		}

		for _, kind := range domain.CategoryKinds {
			for _, name := range rec.CategoryNames(kind) {
				if _, dup := categorySeen[kind][name]; !dup {
					categorySeen[kind][name] = struct{}{}
					report.Categories[kind] = append(report.Categories[kind], name)
				}
			}
		}

		trackUser := func(u *domain.UserRef) {
			if u != nil && u.ID != "" {
				usersByID[u.ID] = *u
			}
		}
		trackUser(rec.User(domain.CreatedByField))
		for _, u := range rec.UserList(domain.AssigneeField) {
			u := u
			trackUser(&u)
		}
		trackUser(rec.User(domain.PassCommField))

		report.AttachmentCount += len(rec.FileList(domain.DeckFileField))
		report.AttachmentCount += len(rec.FileList(domain.ReviewFileField))

		for _, field := range dateSourceFields {
			if rec.Has(field) {
				dateSeen[field] = struct{}{}
			}
		}
	}

	for name := range fieldNames {
		report.FieldNames = append(report.FieldNames, name)
	}
	sort.Strings(report.FieldNames)

	for _, m := range domain.EnumFieldMappings() {
		values := report.EnumValues[m.Source]
		sort.Strings(values)
		for _, v := range values {
			if !domain.IsAllowedEnumValue(m.Enum, v) {
				report.UnknownEnumValues[m.Source] = append(report.UnknownEnumValues[m.Source], v)
			}
		}
	}

	for _, kind := range domain.CategoryKinds {
		sort.Strings(report.Categories[kind])
	}

	for _, u := range usersByID {
		report.Users = append(report.Users, u)
	}
	sort.Slice(report.Users, func(i, j int) bool {
		return report.Users[i].Name < report.Users[j].Name
	})

	for field := range dateSeen {
		report.DateFieldsSeen = append(report.DateFieldsSeen, field)
	}
	sort.Strings(report.DateFieldsSeen)

	return report
}
