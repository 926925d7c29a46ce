package domain

// MappingKind selects the transformation applied to a mapped field.
type MappingKind int

const (
	// MapText copies the value through unchanged.
	MapText MappingKind = iota
	// MapNumber copies a numeric value through unchanged.
	MapNumber
	// MapMoney converts a major-unit amount to integer minor units (cents).
	MapMoney
	// MapBool coerces any truthy value to true, falsy or absent to false.
	MapBool
	// MapDate normalises a date-like string to YYYY-MM-DD, nil on parse failure.
	MapDate
	// MapEnum validates the value against the allowed set for Enum.
	MapEnum
)

// FieldMapping declares how one source field lands in one target column.
type FieldMapping struct {
	Source string
	Column string
	Kind   MappingKind
	Enum   EnumKind
}

// FieldMappings is the full declarative map from Airtable field names to
// pipeline columns. Field names were verified against the live export; a
// few differ from their display labels in casing or punctuation. Both the
// online driver and the dump generator consume this one table.
var FieldMappings = []FieldMapping{
	{Source: "Company Name", Column: "company_name", Kind: MapText},
	{Source: "Description (short)", Column: "description_short", Kind: MapText},
	{Source: "Website", Column: "website", Kind: MapText},
	{Source: "Geography", Column: "geography", Kind: MapText},
	{Source: "Company Contact", Column: "company_contact", Kind: MapText},
	{Source: "Status", Column: "status", Kind: MapEnum, Enum: EnumStatus},
	{Source: "Final Status", Column: "final_status", Kind: MapEnum, Enum: EnumStatus},
	{Source: "Priority", Column: "priority", Kind: MapEnum, Enum: EnumPriority},
	{Source: "To Review", Column: "to_review", Kind: MapBool},
	{Source: "Round Stage", Column: "round_stage", Kind: MapEnum, Enum: EnumRoundStage},
	{Source: "Round timing", Column: "round_timing", Kind: MapEnum, Enum: EnumRoundTiming},
	{Source: "Round Size", Column: "round_size", Kind: MapMoney},
	{Source: "Pre-Money Valuation", Column: "pre_money_valuation", Kind: MapMoney},
	{Source: "Total Raised", Column: "total_raised", Kind: MapNumber},
	{Source: "Check Size/Allocation", Column: "check_size_allocation", Kind: MapNumber},
	{Source: "Most Recent Valuation", Column: "most_recent_valuation", Kind: MapNumber},
	{Source: "Investment date", Column: "investment_date", Kind: MapDate},
	{Source: "Pass Date", Column: "pass_date", Kind: MapDate},
	{Source: "Signed NDA", Column: "signed_nda", Kind: MapDate},
	{Source: "Decision Overview", Column: "decision_overview", Kind: MapText},
	{Source: "Product Analysis", Column: "product_analysis", Kind: MapText},
	{Source: "Value Proposition", Column: "value_proposition", Kind: MapText},
	{Source: "Market Analysis", Column: "market_analysis", Kind: MapText},
	{Source: "Team Analysis", Column: "team_analysis", Kind: MapText},
	{Source: "What do we need to believe for this to be a quality investment?", Column: "what_to_believe", Kind: MapText},
	{Source: "Deal Team Next Step / Recommendation", Column: "deal_team_next_step", Kind: MapText},
	{Source: "Advisor Recommendation / Next Step", Column: "advisor_recommendation", Kind: MapText},
	{Source: "Completed Tasks", Column: "completed_tasks", Kind: MapText},
	{Source: "Notes / Links", Column: "notes_links", Kind: MapText},
	{Source: "Review Material (Link)", Column: "review_material_link", Kind: MapText},
	{Source: "Deck", Column: "deck_url", Kind: MapText},
	{Source: "Investments Drive Folder", Column: "investments_drive_folder", Kind: MapText},
	{Source: "Data Room", Column: "data_room_url", Kind: MapText},
	{Source: "Notissia Deck Link", Column: "notissia_deck_link", Kind: MapText},
	{Source: "2-Pager Ready", Column: "two_pager_ready", Kind: MapBool},
	{Source: "Fund?", Column: "fund_type", Kind: MapEnum, Enum: EnumFundType},
	{Source: "Advisor Priority", Column: "advisor_priority", Kind: MapEnum, Enum: EnumAdvisorPriority},
	{Source: "Investor CRM 2", Column: "investor_crm", Kind: MapText},
}

// CompanyNameField is the precondition field: records without it are
// skipped, never partially created.
const CompanyNameField = "Company Name"

// EnumFieldMappings returns the mappings validated against an allowed set,
// in declaration order. Several fields can share one set ("Status" and
// "Final Status" both use the status values), so consumers that report per
// field must key on Source, not on the enum kind.
func EnumFieldMappings() []FieldMapping {
	var out []FieldMapping
	for _, m := range FieldMappings {
		if m.Kind == MapEnum {
			out = append(out, m)
		}
	}
	return out
}

// PipelineColumns lists the mapped target columns in declaration order,
// used for deterministic multi-row inserts in generated dumps.
func PipelineColumns() []string {
	cols := make([]string, 0, len(FieldMappings))
	for _, m := range FieldMappings {
		cols = append(cols, m.Column)
	}
	return cols
}
