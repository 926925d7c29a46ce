package domain

// CategoryKind is one of the four classification axes a pipeline entry can
// be tagged with. Each kind has its own name-keyed registry table.
type CategoryKind string

const (
	KindSLR      CategoryKind = "slr"
	KindSource   CategoryKind = "source"
	KindDealLead CategoryKind = "deal_lead"
	KindTheme    CategoryKind = "theme"
)

// CategoryKinds lists all kinds in a fixed order. Deterministic iteration
// keeps generated dumps reproducible across runs.
var CategoryKinds = []CategoryKind{KindSLR, KindSource, KindDealLead, KindTheme}

// DefaultCategoryColor is assigned to categories created during migration.
const DefaultCategoryColor = "gray"

// CategoryTable returns the registry table name for a kind.
func (k CategoryKind) CategoryTable() string {
	return string(k) + "_categories"
}

// JunctionTable returns the pipeline junction table name for a kind.
func (k CategoryKind) JunctionTable() string {
	return "pipeline_" + string(k)
}

// JunctionColumn returns the category foreign-key column in the junction
// table for a kind.
func (k CategoryKind) JunctionColumn() string {
	return string(k) + "_category_id"
}

// Category is a registry entry for one kind. Name is the natural key,
// unique within the kind; categories are created lazily on first encounter
// and never updated or deleted by the migration.
type Category struct {
	ID    string
	Name  string
	Color string
}

// User is a registry entry keyed by email. SourceUserID preserves the
// Airtable collaborator id for natural-key lookups in generated dumps.
type User struct {
	ID           string
	Email        string
	Name         string
	SourceUserID string
}

// Source field names feeding the registries and associations. The SLR kind
// uniquely merges three source fields; SLR Market Map is single-valued,
// the other SLR feeds are multi-valued.
const (
	SLRField        = "SLR"
	SLRMarketField  = "SLR Market Map"
	SectorField     = "Sector"
	SourceField     = "Source"
	DealLeadField   = "Deal Lead"
	ThemeField      = "Theme"
	CreatedByField  = "Created By"
	AssigneeField   = "Next Step Assignee"
	PassCommField   = "Pass Communicator"
	DeckFileField   = "Deck (File)"
	ReviewFileField = "Review Material (File)"
)

// CategoryNames returns the deduplicated category names a record contributes
// to a kind, preserving first-seen order. For the SLR kind it merges the
// SLR, SLR Market Map and Sector fields; a name appearing in more than one
// of them yields a single entry.
func (r SourceRecord) CategoryNames(kind CategoryKind) []string {
	var values []string
	switch kind {
	case KindSLR:
		values = append(values, r.StrList(SLRField)...)
		if v := r.Str(SLRMarketField); v != "" {
			values = append(values, v)
		}
		values = append(values, r.StrList(SectorField)...)
	case KindSource:
		values = r.StrList(SourceField)
	case KindDealLead:
		values = r.StrList(DealLeadField)
	case KindTheme:
		values = r.StrList(ThemeField)
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
