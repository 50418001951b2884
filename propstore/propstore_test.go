package propstore

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDb(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDb(filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSetAndGet(t *testing.T) {
	db := testDb(t)

	require.NoError(t, Set(db, "alice", "JIRA_SETTINGS", `{"jiraUrl":"https://jira.example.com"}`))

	value, found, err := Get(db, "alice", "JIRA_SETTINGS")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `{"jiraUrl":"https://jira.example.com"}`, value)
}

func TestGetMissingKey(t *testing.T) {
	db := testDb(t)

	value, found, err := Get(db, "alice", "never_set")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "", value)
}

func TestSetOverwrites(t *testing.T) {
	db := testDb(t)

	require.NoError(t, Set(db, "alice", "k", "first"))
	require.NoError(t, Set(db, "alice", "k", "second"))

	value, found, err := Get(db, "alice", "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "second", value)
}

func TestUsersAreIsolated(t *testing.T) {
	db := testDb(t)

	require.NoError(t, Set(db, "alice", "k", "alice value"))
	require.NoError(t, Set(db, "bob", "k", "bob value"))

	value, _, err := Get(db, "alice", "k")
	require.NoError(t, err)
	assert.Equal(t, "alice value", value)
}

func TestPruneOlder(t *testing.T) {
	db := testDb(t)

	require.NoError(t, Set(db, "alice", "ATTACHMENT_SELECTIONS_thread1", "{}"))
	require.NoError(t, Set(db, "alice", "ATTACHMENT_SELECTIONS_thread2", "{}"))
	require.NoError(t, Set(db, "alice", "JIRA_SETTINGS", "{}"))

	// nothing is old enough yet
	deleted, err := PruneOlder(db, "ATTACHMENT_SELECTIONS_", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	// everything with the prefix is older than a future cutoff
	deleted, err = PruneOlder(db, "ATTACHMENT_SELECTIONS_", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	// the settings blob is untouched
	_, found, err := Get(db, "alice", "JIRA_SETTINGS")
	require.NoError(t, err)
	assert.True(t, found)
}
