package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/nsventures/dealflow-cli/internal/adapters/driven/config/file"
)

func TestLoadRecords_UsesConfigPathWhenFlagUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "rec1", "fields": {}}]`), 0600))

	cfg := &configfile.Config{}
	cfg.Paths.ExportFile = path

	flagInput = ""
	records, err := loadRecords(&cobra.Command{}, cfg)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "rec1", records[0].ID)
}

func TestLoadRecords_FlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	flagPath := filepath.Join(dir, "flag.json")
	require.NoError(t, os.WriteFile(flagPath, []byte(`[{"id": "recFlag", "fields": {}}]`), 0600))

	cfg := &configfile.Config{}
	cfg.Paths.ExportFile = filepath.Join(dir, "absent.json")

	flagInput = flagPath
	defer func() { flagInput = "" }()

	records, err := loadRecords(&cobra.Command{}, cfg)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "recFlag", records[0].ID)
}
