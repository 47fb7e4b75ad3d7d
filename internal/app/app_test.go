package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/portal-escape/internal/config"
	"github.com/tatianab/portal-escape/internal/models"
)

func testConfig(t *testing.T, exits string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "exits.txt")
	require.NoError(t, os.WriteFile(path, []byte(exits), 0644))
	return &config.Config{
		ExitsFile:   path,
		OutcomeFile: filepath.Join(dir, "Outcome.txt"),
		SaveDir:     filepath.Join(dir, "saves"),
		HistoryDB:   filepath.Join(dir, "history.db"),
		Seed:        7,
		Plain:       true,
	}
}

func TestRunPlainRecordsEverywhere(t *testing.T) {
	cfg := testConfig(t, "North,100,100,0\n")
	var out bytes.Buffer

	session, err := Run(context.Background(), cfg, strings.NewReader("Gawain\nn\n"), &out)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, models.ResultWon, session.Result)

	text, err := os.ReadFile(cfg.OutcomeFile)
	require.NoError(t, err)
	assert.Equal(t, models.WonMessage+"\n", string(text))

	saves, err := models.ListSessions(cfg.SaveDir)
	require.NoError(t, err)
	assert.Len(t, saves, 1)

	g, err := Prepare(context.Background(), cfg)
	require.NoError(t, err)
	defer g.Close()
	joined := strings.Join(g.Notices, "\n")
	assert.Contains(t, joined, "1 escapes attempted, 1 succeeded.")
	assert.Contains(t, joined, "Gawain")
}

func TestPrepareListsSavedSessionsWithoutHistoryDB(t *testing.T) {
	cfg := testConfig(t, "North,100,100,0\n")
	cfg.HistoryDB = ""

	_, err := Run(context.Background(), cfg, strings.NewReader("Bedivere\nn\n"), &bytes.Buffer{})
	require.NoError(t, err)

	g, err := Prepare(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, g.Notices, 2)
	assert.Equal(t, "1 escapes recorded.", g.Notices[0])
	assert.Contains(t, g.Notices[1], "Bedivere")
	assert.Contains(t, g.Notices[1], "WON")
}

func TestPrepareReportsWarnings(t *testing.T) {
	cfg := testConfig(t, "North,100,x,0\nEast,50,10,10\n")
	cfg.HistoryDB = ""
	g, err := Prepare(context.Background(), cfg)
	require.NoError(t, err)
	defer g.Close()

	require.Len(t, g.Notices, 1)
	assert.Contains(t, g.Notices[0], "line 1")
	assert.Equal(t, []models.Direction{models.North}, g.Table.Present())
}

func TestPrepareMissingTable(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.ExitsFile = filepath.Join(t.TempDir(), "missing.txt")
	_, err := Prepare(context.Background(), cfg)
	assert.Error(t, err)
}

func TestPrepareEmptyTable(t *testing.T) {
	cfg := testConfig(t, "# nothing here\n")
	cfg.HistoryDB = ""
	g, err := Prepare(context.Background(), cfg)
	require.NoError(t, err)
	assert.Contains(t, g.Notices, "Warning: no portal directions were loaded.")
}

func TestSourceForSeed(t *testing.T) {
	a, b := SourceFor(42), SourceFor(42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}
