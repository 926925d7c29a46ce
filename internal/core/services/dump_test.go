package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsventures/dealflow-cli/internal/core/domain"
)

// newTestDumpService returns a generator with deterministic ids and clock.
func newTestDumpService() *DumpService {
	seq := 0
	return &DumpService{
		newID: func() string {
			seq++
			return fmt.Sprintf("id-%04d", seq)
		},
		now: func() time.Time {
			return time.Date(2025, 6, 23, 19, 53, 0, 0, time.UTC)
		},
	}
}

func TestGenerate_StatementOrdering(t *testing.T) {
	records := []domain.SourceRecord{
		{ID: "rec1", CreatedTime: "2024-01-01T00:00:00.000Z", Fields: map[string]any{
			"Company Name":       "Acme",
			"SLR":                []any{"Health"},
			"Created By":         userField("usr1", "Dana", "dana@example.com"),
			"Next Step Assignee": []any{userField("usr1", "Dana", "dana@example.com")},
		}},
	}

	var out strings.Builder
	summary, err := newTestDumpService().Generate(context.Background(), records, &out)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Successful)

	sql := out.String()
	usersAt := strings.Index(sql, "INSERT INTO users")
	slrAt := strings.Index(sql, "INSERT INTO slr_categories")
	pipelineAt := strings.Index(sql, "INSERT INTO pipeline (")
	junctionAt := strings.Index(sql, "INSERT INTO pipeline_slr")
	assigneesAt := strings.Index(sql, "INSERT INTO pipeline_assignees")

	require.True(t, usersAt >= 0)
	require.True(t, slrAt >= 0)
	require.True(t, pipelineAt >= 0)
	require.True(t, junctionAt >= 0)
	require.True(t, assigneesAt >= 0)

	// References first, then the pipeline block, then junctions.
	assert.Less(t, usersAt, pipelineAt)
	assert.Less(t, slrAt, pipelineAt)
	assert.Less(t, pipelineAt, junctionAt)
	assert.Less(t, junctionAt, assigneesAt)
}

func TestGenerate_DeferredNaturalKeyLookups(t *testing.T) {
	records := []domain.SourceRecord{
		{ID: "recXYZ", Fields: map[string]any{
			"Company Name": "Acme",
			"SLR":          []any{"Health"},
		}},
	}

	var out strings.Builder
	_, err := newTestDumpService().Generate(context.Background(), records, &out)
	require.NoError(t, err)

	sql := out.String()
	assert.Contains(t, sql, "(SELECT id FROM pipeline WHERE airtable_record_id = 'recXYZ')")
	assert.Contains(t, sql, "(SELECT id FROM slr_categories WHERE name = 'Health')")
}

func TestGenerate_EmptyBlocksOmitted(t *testing.T) {
	records := []domain.SourceRecord{
		{ID: "rec1", Fields: map[string]any{"Company Name": "Acme"}},
	}

	var out strings.Builder
	_, err := newTestDumpService().Generate(context.Background(), records, &out)
	require.NoError(t, err)

	sql := out.String()
	assert.NotContains(t, sql, "INSERT INTO pipeline_theme")
	assert.NotContains(t, sql, "INSERT INTO pipeline_assignees")
	assert.NotContains(t, sql, "INSERT INTO pipeline_attachments")
	assert.NotContains(t, sql, "INSERT INTO users")
}

func TestGenerate_SkipsAndCountsLikeOnlineMode(t *testing.T) {
	records := []domain.SourceRecord{
		{ID: "rec1", Fields: map[string]any{"Company Name": "Acme"}},
		{ID: "rec2", Fields: map[string]any{"Status": "New Company"}},
	}

	var out strings.Builder
	summary, err := newTestDumpService().Generate(context.Background(), records, &out)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Successful)
	assert.Equal(t, 1, summary.Skipped)
	require.Len(t, summary.SkippedRecords, 1)
	assert.Equal(t, "rec2", summary.SkippedRecords[0].RecordID)
	assert.NotContains(t, out.String(), "rec2")
}

func TestGenerate_EscapesQuotes(t *testing.T) {
	records := []domain.SourceRecord{
		{ID: "rec1", Fields: map[string]any{
			"Company Name": "O'Brien & Co",
		}},
	}

	var out strings.Builder
	_, err := newTestDumpService().Generate(context.Background(), records, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "'O''Brien & Co'")
}

func TestGenerate_MoneyAndBoolRendering(t *testing.T) {
	records := []domain.SourceRecord{
		{ID: "rec1", Fields: map[string]any{
			"Company Name": "Acme",
			"Round Size":   float64(100),
			"To Review":    true,
		}},
	}

	var out strings.Builder
	_, err := newTestDumpService().Generate(context.Background(), records, &out)
	require.NoError(t, err)

	sql := out.String()
	assert.Contains(t, sql, "10000")
	assert.Contains(t, sql, "true")
}

func TestSQLValue(t *testing.T) {
	assert.Equal(t, "NULL", sqlValue(nil))
	assert.Equal(t, "'x'", sqlValue("x"))
	assert.Equal(t, "''''", sqlValue("'"))
	assert.Equal(t, "true", sqlValue(true))
	assert.Equal(t, "12500", sqlValue(int64(12500)))
	assert.Equal(t, "42.5", sqlValue(float64(42.5)))
}

func TestRenderRef(t *testing.T) {
	assert.Equal(t, "'abc'", renderRef(domain.ResolvedRef("abc")))
	assert.Equal(t, "NULL", renderRef(domain.Ref{}))
	assert.Equal(t,
		"(SELECT id FROM users WHERE airtable_user_id = 'usr1')",
		renderRef(domain.DeferredRef("users", "airtable_user_id", "usr1")))
}
