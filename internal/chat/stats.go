package chat

import (
	"fmt"
	"sort"
)

// Statistics accumulates per-chat counters. All fields are plain sums and
// counts so two Statistics can be merged commutatively.
type Statistics struct {
	TotalMessages      int
	EditedMessages     int
	MultiframeCount    int
	MissingAttachments int

	MessagesBySender map[string]int
	MessagesByType   map[ContentType]int

	// total playable seconds across audio and video attachments
	MediaDurationSeconds float64
	// on-disk bytes per type, attachments present in the export only
	AttachmentBytes map[ContentType]int64

	UnknownContent []string
	MissingFiles   []string
}

func NewStatistics() *Statistics {
	return &Statistics{
		MessagesBySender: make(map[string]int),
		MessagesByType:   make(map[ContentType]int),
		AttachmentBytes:  make(map[ContentType]int64),
	}
}

// Record folds one message into the counters. sizeBytes and durationSeconds
// are negative when unknown.
func (s *Statistics) Record(m Message, sizeBytes int64, durationSeconds float64) {
	s.TotalMessages++
	s.MessagesBySender[m.Sender]++
	s.MessagesByType[m.ContentType]++
	if m.IsEdited {
		s.EditedMessages++
	}
	if m.IsMultiframe {
		s.MultiframeCount++
	}
	if m.IsAttachment && !m.ExistsInExport && m.AttachmentFile != "" {
		s.MissingAttachments++
		s.MissingFiles = append(s.MissingFiles, m.AttachmentFile)
	}
	if m.ContentType == TypeUnknown {
		s.UnknownContent = append(s.UnknownContent, m.AttachmentFile)
	}
	if durationSeconds >= 0 && (m.ContentType.IsAudio() || m.ContentType.IsVideo()) {
		s.MediaDurationSeconds += durationSeconds
	}
	if sizeBytes >= 0 && m.IsAttachment && m.ExistsInExport {
		s.AttachmentBytes[m.ContentType] += sizeBytes
	}
}

// Merge adds other into s. Order of merging does not matter for the counters;
// the slices keep the order they are appended in.
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	s.TotalMessages += other.TotalMessages
	s.EditedMessages += other.EditedMessages
	s.MultiframeCount += other.MultiframeCount
	s.MissingAttachments += other.MissingAttachments
	for k, v := range other.MessagesBySender {
		s.MessagesBySender[k] += v
	}
	for k, v := range other.MessagesByType {
		s.MessagesByType[k] += v
	}
	s.MediaDurationSeconds += other.MediaDurationSeconds
	for k, v := range other.AttachmentBytes {
		s.AttachmentBytes[k] += v
	}
	s.UnknownContent = append(s.UnknownContent, other.UnknownContent...)
	s.MissingFiles = append(s.MissingFiles, other.MissingFiles...)
}

// Senders returns senders ordered by message count, most active first, ties
// broken by name.
func (s *Statistics) Senders() []string {
	names := make([]string, 0, len(s.MessagesBySender))
	for n := range s.MessagesBySender {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := names[i], names[j]
		if s.MessagesBySender[a] != s.MessagesBySender[b] {
			return s.MessagesBySender[a] > s.MessagesBySender[b]
		}
		return a < b
	})
	return names
}

// Types returns content types with a nonzero count, by taxonomy order.
func (s *Statistics) Types() []ContentType {
	types := make([]ContentType, 0, len(s.MessagesByType))
	for t := range s.MessagesByType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// FormatDuration renders seconds as H:MM:SS.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total%3600/60, total%60)
}

// FormatBytes renders a byte count in a human unit.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
