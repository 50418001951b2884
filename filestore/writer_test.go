package filestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
)

func testFolder(t *testing.T) (*Provider, *Folder) {
	t.Helper()
	provider := &Provider{Root: t.TempDir()}
	require.NoError(t, os.Mkdir(filepath.Join(provider.Root, "abc123"), 0755))
	folder, err := provider.FolderByID("abc123")
	require.NoError(t, err)
	return provider, folder
}

func record(name string, content string) glb.AttachmentRecord {
	return glb.AttachmentRecord{Name: name, Size: int64(len(content)), Bytes: []byte(content)}
}

func TestWriteFreshAttachments(t *testing.T) {
	_, folder := testFolder(t)

	result := WriteAttachments(folder, []glb.AttachmentRecord{
		record("report.pdf", "pdf bytes"),
		record("notes.txt", "some notes"),
	})

	assert.Equal(t, 2, result.SavedCount)
	assert.Equal(t, 0, result.SkippedCount)
	assert.Equal(t, []string{"report.pdf", "notes.txt"}, result.SavedNames)

	saved, err := os.ReadFile(filepath.Join(folder.path, "report.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(saved))
}

func TestWriteSkipsSameSizeDuplicate(t *testing.T) {
	_, folder := testFolder(t)
	require.NoError(t, folder.CreateFile("report.pdf", []byte("123456789")))

	result := WriteAttachments(folder, []glb.AttachmentRecord{
		record("report.pdf", "987654321"),
	})

	assert.Equal(t, 0, result.SavedCount)
	assert.Equal(t, 1, result.SkippedCount)
	assert.Equal(t, []string{"report.pdf"}, result.SkippedNames)

	// the original content survives, size is the only duplicate criterion
	saved, err := os.ReadFile(filepath.Join(folder.path, "report.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "123456789", string(saved))
}

func TestWriteRenamesDifferentSizeCollision(t *testing.T) {
	_, folder := testFolder(t)
	require.NoError(t, folder.CreateFile("report.pdf", []byte("old short")))

	result := WriteAttachments(folder, []glb.AttachmentRecord{
		record("report.pdf", "new and much longer content"),
	})

	require.Equal(t, 1, result.SavedCount)
	require.Len(t, result.SavedNames, 1)
	newName := result.SavedNames[0]
	assert.True(t, strings.HasPrefix(newName, "report_"), "got %s", newName)
	assert.True(t, strings.HasSuffix(newName, ".pdf"), "got %s", newName)
	assert.NotEqual(t, "report.pdf", newName)

	// both files exist afterwards
	_, err := os.Stat(filepath.Join(folder.path, "report.pdf"))
	assert.NoError(t, err)
	saved, err := os.ReadFile(filepath.Join(folder.path, newName))
	require.NoError(t, err)
	assert.Equal(t, "new and much longer content", string(saved))
}

func TestWriteSanitizesForbiddenChars(t *testing.T) {
	_, folder := testFolder(t)

	result := WriteAttachments(folder, []glb.AttachmentRecord{
		record("inv:oi*ce?.pdf", "x"),
	})

	require.Equal(t, 1, result.SavedCount)
	assert.Equal(t, []string{"invoice.pdf"}, result.SavedNames)
}

func TestTimestampedName(t *testing.T) {
	at := time.Date(2024, 3, 15, 14, 30, 52, 0, time.UTC)
	assert.Equal(t, "report_20240315_143052.pdf", timestampedName("report.pdf", at))
	assert.Equal(t, "archive.tar_20240315_143052.gz", timestampedName("archive.tar.gz", at))
	assert.Equal(t, "README_20240315_143052", timestampedName("README", at))
}

func TestOpenFolder(t *testing.T) {
	provider, _ := testFolder(t)

	open := OpenFolder(provider, "abc123")
	require.True(t, open.Success)
	assert.Equal(t, "abc123", open.Name)
	assert.Equal(t, "abc123", open.Folder.ID())

	missing := OpenFolder(provider, "does-not-exist")
	require.False(t, missing.Success)
	assert.Contains(t, missing.Error, "Cannot access folder (ID: does-not-exist)")
}

func TestOpenFolderRejectsPathTraversal(t *testing.T) {
	provider, _ := testFolder(t)

	for _, id := range []string{"", "..", "../abc123", `a\b`, "a/b"} {
		open := OpenFolder(provider, id)
		assert.False(t, open.Success, "id %q must be rejected", id)
	}
}
