package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command tree against a throwaway home and database.
func run(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("LIFTLOG_DB", filepath.Join(home, "test.db"))
	t.Setenv("LIFTLOG_LOG_FILE", filepath.Join(home, "test.log"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		configPath = ""
		exportOutput, exportGzip, exportCSV = "", false, false
		importYes = false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestNextOnEmptyHistory(t *testing.T) {
	out, err := run(t, t.TempDir(), "next")
	require.NoError(t, err)
	assert.Contains(t, out, "Full Body A")
	assert.Contains(t, out, "Squats")
}

func TestStarsListsShop(t *testing.T) {
	out, err := run(t, t.TempDir(), "stars")
	require.NoError(t, err)
	assert.Contains(t, out, "0 gold, 0 silver = 0 points")
	assert.Contains(t, out, "Fancy Coffee")
}

func TestRecordsEmpty(t *testing.T) {
	out, err := run(t, t.TempDir(), "records")
	require.NoError(t, err)
	assert.Contains(t, out, "No records yet")
}

func TestExportImportRoundTrip(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "backup.json.gz")

	out, err := run(t, home, "export", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 0 days")

	out, err = run(t, home, "import", path, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 days")
}

func TestImportRejectsBadFile(t *testing.T) {
	home := t.TempDir()
	_, err := run(t, home, "import", filepath.Join(home, "nope.json"))
	assert.Error(t, err)
}

func TestExportCSV(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "sets.csv")
	out, err := run(t, home, "export", "--csv", "-o", path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "sets.csv"))
}
