package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatisticsRecord(t *testing.T) {
	s := NewStatistics()
	s.Record(Message{Sender: "Anna", ContentType: TypeText}, -1, -1)
	s.Record(Message{Sender: "Anna", ContentType: TypeJPEG, IsAttachment: true,
		AttachmentFile: "IMG-20231224-WA0001.jpg", ExistsInExport: true}, 2048, -1)
	s.Record(Message{Sender: "Ben", ContentType: TypeMP4, IsAttachment: true,
		AttachmentFile: "VID-20231224-WA0007.mp4", ExistsInExport: true, IsMultiframe: true}, 4096, 12.5)
	s.Record(Message{Sender: "Ben", ContentType: TypeOggOpus, IsAttachment: true,
		AttachmentFile: "PTT-20231224-WA0012.opus"}, -1, -1)
	s.Record(Message{Sender: "Anna", ContentType: TypeText, IsEdited: true}, -1, -1)
	s.Record(Message{Sender: "Ben", ContentType: TypeUnknown, IsAttachment: true,
		AttachmentFile: "mystery.xyz"}, -1, -1)

	assert.Equal(t, 6, s.TotalMessages)
	assert.Equal(t, 1, s.EditedMessages)
	assert.Equal(t, 1, s.MultiframeCount)
	assert.Equal(t, 2, s.MissingAttachments)
	assert.Equal(t, []string{"PTT-20231224-WA0012.opus", "mystery.xyz"}, s.MissingFiles)
	assert.Equal(t, []string{"mystery.xyz"}, s.UnknownContent)
	assert.Equal(t, 3, s.MessagesBySender["Anna"])
	assert.Equal(t, 3, s.MessagesBySender["Ben"])
	assert.Equal(t, 2, s.MessagesByType[TypeText])
	assert.InDelta(t, 12.5, s.MediaDurationSeconds, 1e-9)
	assert.Equal(t, int64(2048), s.AttachmentBytes[TypeJPEG])
	assert.Equal(t, int64(4096), s.AttachmentBytes[TypeMP4])

	assert.Equal(t, []string{"Anna", "Ben"}, s.Senders())
}

func TestStatisticsMergeCommutes(t *testing.T) {
	build := func(msgs []Message) *Statistics {
		s := NewStatistics()
		for _, m := range msgs {
			s.Record(m, -1, -1)
		}
		return s
	}
	a := []Message{
		{Sender: "Anna", ContentType: TypeText},
		{Sender: "Anna", ContentType: TypeJPEG, IsMultiframe: false},
	}
	b := []Message{
		{Sender: "Ben", ContentType: TypeText, IsEdited: true},
		{Sender: "Anna", ContentType: TypeGIF, IsMultiframe: true},
	}

	ab := build(a)
	ab.Merge(build(b))
	ba := build(b)
	ba.Merge(build(a))

	assert.Equal(t, ab.TotalMessages, ba.TotalMessages)
	assert.Equal(t, ab.EditedMessages, ba.EditedMessages)
	assert.Equal(t, ab.MultiframeCount, ba.MultiframeCount)
	assert.Equal(t, ab.MessagesBySender, ba.MessagesBySender)
	assert.Equal(t, ab.MessagesByType, ba.MessagesByType)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "0:00:05", FormatDuration(5.4))
	assert.Equal(t, "0:02:05", FormatDuration(125))
	assert.Equal(t, "2:00:01", FormatDuration(7201))

	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "2.0 KB", FormatBytes(2048))
	assert.Equal(t, "1.5 MB", FormatBytes(1572864))
}
