package selections

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
	"github.ibmgcloud.net/dth/pmo_saver/propstore"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "report.pdf_0", Key("report.pdf", 0))
	assert.Equal(t, "report.pdf_3", Key("report.pdf", 3))
	// duplicate filenames stay distinguishable through the index
	assert.NotEqual(t, Key("report.pdf", 1), Key("report.pdf", 2))
}

func TestStoreAndLoadRoundtrip(t *testing.T) {
	db, err := propstore.OpenDb(filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	state := map[string]bool{
		"report.pdf_0": true,
		"notes.txt_1":  false,
	}
	require.NoError(t, Store(db, "alice", "thread42", state))

	loaded, err := Load(db, "alice", "thread42")
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestLoadUnknownThreadReturnsNil(t *testing.T) {
	db, err := propstore.OpenDb(filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	loaded, err := Load(db, "alice", "never_seen")
	require.NoError(t, err)
	assert.Nil(t, loaded, "a thread without stored state must be distinguishable from explicit deselections")
}

func TestStoreOverwritesWholeMap(t *testing.T) {
	db, err := propstore.OpenDb(filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Store(db, "alice", "thread42", map[string]bool{
		"a.pdf_0": true,
		"b.pdf_1": true,
	}))
	require.NoError(t, Store(db, "alice", "thread42", map[string]bool{
		"b.pdf_1": false,
	}))

	loaded, err := Load(db, "alice", "thread42")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"b.pdf_1": false}, loaded, "no merging, the last write replaces everything")
}

func TestStoreWithoutThreadIDIsNoop(t *testing.T) {
	db, err := propstore.OpenDb(filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Store(db, "alice", "", map[string]bool{"a.pdf_0": true}))

	loaded, err := Load(db, "alice", "")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestApply(t *testing.T) {
	attachments := []glb.AttachmentRecord{
		{Name: "a.pdf", SourceIndex: 0},
		{Name: "b.pdf", SourceIndex: 1},
		{Name: "c.pdf", SourceIndex: 2},
	}
	state := map[string]bool{
		"a.pdf_0":    true,
		"b.pdf_1":    false,
		"orphan.x_9": true,
	}

	selected := Apply(attachments, state)

	require.Len(t, selected, 1)
	assert.Equal(t, "a.pdf", selected[0].Name)
}
