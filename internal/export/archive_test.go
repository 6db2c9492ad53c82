package export

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestOpenZip(t *testing.T) {
	zipPath := writeZip(t, map[string]string{
		"_chat.txt":               "[24.12.23, 21:30] Anna: hi\n",
		"IMG-20231224-WA0001.jpg": "jpegdata",
	})

	a, err := Open(zipPath)
	require.NoError(t, err)
	root := a.Root

	assert.Equal(t, filepath.Join(root, "_chat.txt"), a.ChatFile())
	assert.Len(t, a.MD5(), 32)

	p, ok := a.FindAttachment("IMG-20231224-WA0001.jpg")
	require.True(t, ok)
	assert.FileExists(t, p)

	info, err := a.Info()
	require.NoError(t, err)
	assert.Equal(t, "chat.zip", info.Name)
	assert.Equal(t, 2, info.Files)
	assert.Positive(t, info.SizeBytes)

	require.NoError(t, a.Close())
	assert.NoDirExists(t, root)
}

func TestOpenZipRejectsEscapingEntry(t *testing.T) {
	zipPath := writeZip(t, map[string]string{
		"../evil.txt": "nope",
	})
	_, err := Open(zipPath)
	assert.Error(t, err)
}

func TestExtractEntryRejectsOversized(t *testing.T) {
	zipPath := writeZip(t, map[string]string{
		"_chat.txt": "0123456789abcdef",
	})
	zr, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer zr.Close()

	dest := t.TempDir()
	err = extractEntry(dest, zr.File[0], 8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")

	// the same entry passes once the cap covers it
	require.NoError(t, extractEntry(t.TempDir(), zr.File[0], 16))
}

func TestOpenDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "_chat.txt"), []byte("x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "VID-20231224-WA0007.mp4"), []byte("v"), 0o644))

	a, err := Open(dir)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, filepath.Join(dir, "_chat.txt"), a.ChatFile())
	_, ok := a.FindAttachment("VID-20231224-WA0007.mp4")
	assert.True(t, ok)

	// Close must not delete a directory it does not own
	require.NoError(t, a.Close())
	assert.DirExists(t, dir)
}

func TestOpenBareTxt(t *testing.T) {
	dir := t.TempDir()
	chat := filepath.Join(dir, "WhatsApp Chat mit Anna.txt")
	require.NoError(t, os.WriteFile(chat, []byte("x\n"), 0o644))

	a, err := Open(chat)
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, chat, a.ChatFile())
	assert.Equal(t, dir, a.Root)
}

func TestFindAttachmentFuzzy(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "_chat.txt"), []byte("x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "IMG-20231224-WA0001.JPG"), []byte("j"), 0o644))

	a, err := Open(dir)
	require.NoError(t, err)
	defer a.Close()

	// case and decoration differences survive normalization
	p, ok := a.FindAttachment("‎IMG-20231224-WA0001.jpg")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "IMG-20231224-WA0001.JPG"), p)

	_, ok = a.FindAttachment("missing.jpg")
	assert.False(t, ok)
}

func TestFindChatFileFallbacks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "._chat.txt"), []byte("apple\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gruppe.txt"), []byte("x\n"), 0o644))

	a, err := Open(dir)
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, filepath.Join(dir, "gruppe.txt"), a.ChatFile())
}
