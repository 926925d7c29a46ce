package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline_output.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestReadAll(t *testing.T) {
	path := writeDump(t, `[
		{"id": "rec1", "createdTime": "2024-01-01T00:00:00.000Z", "fields": {
			"Company Name": "Acme",
			"Round Size": 100,
			"SLR": ["Health"],
			"Created By": {"id": "usr1", "name": "Dana", "email": "dana@example.com"}
		}},
		{"id": "rec2", "createdTime": "2024-01-02T00:00:00.000Z", "fields": {}}
	]`)

	records, err := NewReader(path).ReadAll(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "rec1", records[0].ID)
	assert.Equal(t, "Acme", records[0].Str("Company Name"))
	assert.Equal(t, []string{"Health"}, records[0].StrList("SLR"))

	creator := records[0].User("Created By")
	require.NotNil(t, creator)
	assert.Equal(t, "dana@example.com", creator.Email)
}

func TestReadAll_MissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.json")).ReadAll(context.Background())
	assert.Error(t, err)
}

func TestReadAll_MalformedJSON(t *testing.T) {
	path := writeDump(t, `{"not": "an array"`)

	_, err := NewReader(path).ReadAll(context.Background())
	assert.Error(t, err)
}
