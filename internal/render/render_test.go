package render

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbeckmann/waex/internal/chat"
	"github.com/hbeckmann/waex/internal/index"
)

func seedDB(t *testing.T) *index.DB {
	t.Helper()
	db, err := index.OpenDB(filepath.Join(t.TempDir(), "waex.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	base := time.Date(2023, 12, 24, 21, 30, 0, 0, time.UTC)
	msgs := []chat.Message{
		{Timestamp: chat.Timestamp{Time: base}, Sender: "Anna", Content: "see you at the festival",
			ContentType: chat.TypeText},
		{Timestamp: chat.Timestamp{Time: base.Add(time.Minute)}, Sender: "Ben",
			Content: "VID-20231224-WA0007.mp4", ContentType: chat.TypeMP4,
			IsAttachment: true, AttachmentFile: "VID-20231224-WA0007.mp4", IsMultiframe: true},
		{Timestamp: chat.Timestamp{Time: base.Add(2 * time.Minute)}, Sender: "Anna",
			Content: "changed plans", ContentType: chat.TypeText, IsEdited: true},
	}
	res := &chat.Result{Messages: msgs, Stats: chat.NewStatistics()}
	meta := index.ExportMeta{
		ExportKey: "exp1", SourcePath: "/exports/chat.zip", ChatFile: "_chat.txt",
		MD5: "exp1", DeviceOwner: "Anna", Mtime: base, Size: 1,
	}
	require.NoError(t, index.IndexExport(db, meta, res))
	return db
}

func TestRenderTranscript(t *testing.T) {
	db := seedDB(t)

	out, hitLine, err := RenderTranscript(db, "exp1", Options{HitMsgID: 1, Context: 5})
	require.NoError(t, err)

	assert.Contains(t, out, "Anna")
	assert.Contains(t, out, "see you at the festival")
	assert.Contains(t, out, "[MP4] VID-20231224-WA0007.mp4")
	assert.Contains(t, out, "(missing)")
	assert.Contains(t, out, "(animated)")
	assert.Contains(t, out, "(edited)")
	assert.Greater(t, hitLine, 0)
}

func TestRenderTranscriptUnknownExport(t *testing.T) {
	db := seedDB(t)
	_, _, err := RenderTranscript(db, "nope", Options{})
	assert.Error(t, err)
}

func TestHighlightKeywords(t *testing.T) {
	out := highlightKeywords("Pizza tomorrow", "pizza")
	assert.Contains(t, out, colorBoldRed+"Pizza"+colorReset)

	// FTS operators are not highlighted
	assert.Equal(t, "a AND b", highlightKeywords("a AND b", "AND"))
}

func TestWrapLine(t *testing.T) {
	lines := wrapLine("abcdefghij", 4)
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, lines)

	// ANSI escapes take no visible width
	lines = wrapLine(colorDim+"abcd"+colorReset, 4)
	assert.Len(t, lines, 1)
}
