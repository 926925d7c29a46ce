package domain

import "strings"

// EnumKind identifies a constrained pipeline column.
type EnumKind string

const (
	EnumStatus          EnumKind = "status"
	EnumRoundStage      EnumKind = "round_stage"
	EnumRoundTiming     EnumKind = "round_timing"
	EnumPriority        EnumKind = "priority"
	EnumFundType        EnumKind = "fund_type"
	EnumAdvisorPriority EnumKind = "advisor_priority"
)

// allowedValues holds the exact value sets the target schema accepts.
// This is the single registry consumed by both the transformer and the
// pre-flight inspector, so the two can never drift apart.
var allowedValues = map[EnumKind][]string{
	EnumStatus: {
		"Invested", "Diligence 3 (IC Memo)", "Diligence 2 (Screening Memo)",
		"Diligence 1", "Debrief", "New Company", "Meeting Booked",
		"To Be Scheduled", "To Pass", "Waiting for Lead", "Follow Up",
		"Actively Monitor", "Passively Monitor", "Out of Scope", "Pass",
		"Newlab Syndicate Investment",
	},
	EnumRoundStage: {
		"Pre-Seed", "Seed", "Series A", "Series B", "Series C", "Series D", "Series E",
		"Series A Bridge", "Govt Funded", "Seed Extension", "Bridge", "Series B Bridge",
		"Convertible Note", "IPO", "Series A-1", "Series A-2", "Series B-2", "Other",
		"Series A-3", "Series C Bridge", "Dev Cap", "Angel", "Late Stage",
	},
	EnumRoundTiming: {
		"Q4 2023", "Q1 2024", "Q2 2024", "Q3 2024", "Q2 2023", "Q1 2023",
		"Q3 2023", "Q4 2024", "Q1 2025", "Q2 2025", "Q3 2025", "Q4 2025",
	},
	EnumPriority: {
		"1 - Highest", "2 - High", "3 - Medium", "4 - Low", "0 - On Hold",
	},
	EnumFundType: {"SPV", "Fund"},
	EnumAdvisorPriority: {
		"1 - Highest", "2 - High", "3 - Medium", "4 - Low", "5 - Lowest", "Hold",
	},
}

// rewrites maps legacy source values onto canonical enum labels before the
// membership check. A nil target means "explicitly unset".
var rewrites = map[EnumKind]map[string]*string{
	EnumFundType: {
		"Yes":  ptr("Fund"),
		"No":   nil,
		"SPV":  ptr("SPV"),
		"Fund": ptr("Fund"),
	},
}

func ptr(s string) *string { return &s }

// ValidateEnum normalises a raw source value against the allowed set for a
// kind. Empty input yields nil. The trimmed value is first looked up in the
// rewrite table; a hit returns the rewrite result (possibly nil) without
// further checks. Otherwise membership in the allowed set returns the
// trimmed value. Anything else is invalid: nil is returned and known is
// false so the caller can emit a diagnostic. Invalid data never aborts a
// record.
func ValidateEnum(kind EnumKind, raw string) (value *string, known bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, true
	}

	if mapped, ok := rewrites[kind][trimmed]; ok {
		return mapped, true
	}

	for _, allowed := range allowedValues[kind] {
		if trimmed == allowed {
			v := trimmed
			return &v, true
		}
	}
	return nil, false
}

// AllowedEnumValues returns the allowed set for a kind. The inspector uses
// it to flag observed values the schema would reject.
func AllowedEnumValues(kind EnumKind) []string {
	return allowedValues[kind]
}

// IsAllowedEnumValue reports whether a value (after rewrite) would survive
// validation for a kind.
func IsAllowedEnumValue(kind EnumKind, raw string) bool {
	_, known := ValidateEnum(kind, raw)
	return known
}
