package root

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adventuremap/internal/csvcodec"
	"adventuremap/internal/engine"
	"adventuremap/internal/quest"
	"adventuremap/internal/storage"
)

const testSlot = "cli-test"

func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--db", dbPath, "--slot", testSlot}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func savedTasks(t *testing.T, dbPath string) []quest.Task {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, dbPath)
	require.NoError(t, err)
	defer db.Close()

	s, err := engine.Open(ctx, storage.NewSlot(db, testSlot))
	require.NoError(t, err)
	return s.Tasks()
}

func TestCLIQuestFlow(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "amap.db")

	_, err := run(t, dbPath, "add", "Send CV", "--region", "ocean", "--boss")
	require.NoError(t, err)

	tasks := savedTasks(t, dbPath)
	require.Len(t, tasks, 1)
	assert.Equal(t, quest.RegionOcean, tasks[0].Region)
	assert.True(t, tasks[0].IsBoss)
	id := tasks[0].ID

	_, err = run(t, dbPath, "take", id)
	require.NoError(t, err)

	out, err := run(t, dbPath, "do", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Boss defeated")

	out, err = run(t, dbPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "ready to claim")

	_, err = run(t, dbPath, "claim", "daily")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")

	out, err = run(t, dbPath, "claim", "weekly")
	require.NoError(t, err)
	assert.Contains(t, out, "Claimed")

	_, err = run(t, dbPath, "rm", id)
	require.EqualError(t, err, "cancelled")
	require.Len(t, savedTasks(t, dbPath), 1)

	_, err = run(t, dbPath, "rm", "--yes", id)
	require.NoError(t, err)
	assert.Empty(t, savedTasks(t, dbPath))
}

func TestCLIErrors(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "amap.db")

	_, err := run(t, dbPath, "take", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrNotFound)

	_, err = run(t, dbPath, "edit", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")

	_, err = run(t, dbPath, "add", "x", "--region", "desert")
	require.Error(t, err)

	_, err = run(t, dbPath, "add")
	require.EqualError(t, err, "title is required")

	_, err = run(t, dbPath, "import", "missing.csv", "--mode", "merge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid import mode")
}

func TestCLIExportImport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.db")
	dst := filepath.Join(dir, "dst.db")
	file := filepath.Join(dir, "backup.csv")

	_, err := run(t, src, "add", "Write cover letter", "--region", "forest")
	require.NoError(t, err)
	_, err = run(t, src, "config", "--name", "Job Hunt")
	require.NoError(t, err)
	_, err = run(t, src, "export", file)
	require.NoError(t, err)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Write cover letter")

	_, err = run(t, dst, "import", file, "--mode", "overwrite")
	require.NoError(t, err)

	tasks := savedTasks(t, dst)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write cover letter", tasks[0].Title)

	out, err := run(t, dst, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "Job Hunt")
}

func TestCLITemplate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "amap.db")

	_, err := run(t, dbPath, "template")
	require.NoError(t, err)
	n := len(savedTasks(t, dbPath))
	require.Positive(t, n)

	// A non-empty board needs confirmation.
	_, err = run(t, dbPath, "sample")
	require.EqualError(t, err, "cancelled")

	_, err = run(t, dbPath, "sample", "--yes")
	require.NoError(t, err)
	assert.Len(t, savedTasks(t, dbPath), n)
}

func TestCLITemplateWrittenOut(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "amap.db")
	file := filepath.Join(dir, "quests.csv")

	out, err := run(t, dbPath, "template", "--print")
	require.NoError(t, err)
	assert.Equal(t, csvcodec.Template(), out)

	_, err = run(t, dbPath, "template", "--output", file)
	require.NoError(t, err)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, csvcodec.Template(), string(data))

	assert.Empty(t, savedTasks(t, dbPath), "writing the template must not touch the adventure")

	_, err = run(t, dbPath, "import", file)
	require.NoError(t, err)
	assert.NotEmpty(t, savedTasks(t, dbPath))
}

func TestCLIOverwriteImportAsksFirst(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "amap.db")
	file := filepath.Join(dir, "backup.csv")

	_, err := run(t, dbPath, "add", "Keep me")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, []byte(csvcodec.Template()), 0o644))

	_, err = run(t, dbPath, "import", file, "--mode", "overwrite")
	require.EqualError(t, err, "cancelled")
	tasks := savedTasks(t, dbPath)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Keep me", tasks[0].Title)

	_, err = run(t, dbPath, "import", file, "--mode", "overwrite", "--yes")
	require.NoError(t, err)
	for _, task := range savedTasks(t, dbPath) {
		assert.NotEqual(t, "Keep me", task.Title)
	}
}

func TestCLIStatusAndSlots(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "amap.db")

	_, err := run(t, dbPath, "add", "First steps")
	require.NoError(t, err)

	out, err := run(t, dbPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "resumed (slot "+testSlot+")")
	assert.Contains(t, out, "Quests completed:")

	out, err = run(t, dbPath, "config")
	require.NoError(t, err)
	assert.Contains(t, out, testSlot+" (current)")
}
