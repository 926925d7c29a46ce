package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpCmd_WritesSQLToStdout(t *testing.T) {
	out, err := runCommand(t, `[
		{"id": "recA", "createdTime": "2024-01-01T00:00:00.000Z", "fields": {
			"Company Name": "Acme",
			"Status": "New",
			"SLR": ["Health"]
		}}
	]`, "dump", "-o", "-")
	defer func() { flagOutput = "" }()

	require.NoError(t, err)
	assert.Contains(t, out, "INSERT INTO pipeline")
	assert.Contains(t, out, "'Acme'")
	assert.Contains(t, out, "INSERT INTO slr_categories")
	assert.Contains(t, out, "successful: 1")
}

func TestInspectCmd_ReportsWarnings(t *testing.T) {
	out, err := runCommand(t, `[
		{"id": "recA", "createdTime": "2024-01-01T00:00:00.000Z", "fields": {
			"Company Name": "Acme",
			"Status": "Bogus Status"
		}}
	]`, "inspect")

	require.NoError(t, err)
	assert.Contains(t, out, "Records:               1")
	assert.Contains(t, out, "Bogus Status")
	assert.Contains(t, out, "Warnings found")
}
