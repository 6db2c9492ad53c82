package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectAttachment(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantFile string
		wantOK   bool
	}{
		{"german tag", "<Anhang: IMG-20231224-WA0001.jpg>", "IMG-20231224-WA0001.jpg", true},
		{"english tag", "<attached: 00000042-PHOTO-2023-12-24-21-30-05.jpg>", "00000042-PHOTO-2023-12-24-21-30-05.jpg", true},
		{"suffix form", "VID-20231224-WA0007.mp4 (Datei angehängt)", "VID-20231224-WA0007.mp4", true},
		{"suffix form english", "report.pdf (file attached)", "report.pdf", true},
		{"bare image counter", "IMG-20231224-WA0001.jpg", "IMG-20231224-WA0001.jpg", true},
		{"bare iso audio", "00000013-AUDIO-2023-12-24-21-30-05.ogg", "00000013-AUDIO-2023-12-24-21-30-05.ogg", true},
		{"bare sticker", "STK-20231224-WA0099.webp", "STK-20231224-WA0099.webp", true},
		{"voice note opus", "PTT-20231224-WA0012.opus", "PTT-20231224-WA0012.opus", true},
		{"bare iso document", "00001008-DOC-2022-07-11-14-53-45.pdf", "00001008-DOC-2022-07-11-14-53-45.pdf", true},
		{"bare iso 3gp video", "00001008-VIDEO-2022-07-11-14-53-45.3gp", "00001008-VIDEO-2022-07-11-14-53-45.3gp", true},
		{"case insensitive", "img-20231224-wa0001.JPG", "img-20231224-wa0001.JPG", true},
		{"redacted media", "<Media omitted>", "", true},
		{"plain text", "see you at nine", "", false},
		{"text with angle brackets", "use <b>bold</b> here", "", false},
		{"doc counter with odd extension", "DOC-20231224-WA0002.exe", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, ok := DetectAttachment(tt.content)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantFile, file)
		})
	}
}

func TestMarkerKinds(t *testing.T) {
	assert.True(t, IsStickerName("STK-20231224-WA0099.webp"))
	assert.True(t, IsStickerName("00000005-STICKER-2023-12-24-21-30-05.webp"))
	assert.False(t, IsStickerName("IMG-20231224-WA0001.jpg"))

	assert.True(t, isAudioName("AUD-20231224-WA0003.m4a"))
	assert.True(t, isAudioName("PTT-20231224-WA0003.opus"))
	assert.False(t, isAudioName("IMG-20231224-WA0003.jpg"))

	assert.True(t, isImageName("IMG-20231224-WA0001.jpeg"))
	assert.True(t, isVideoName("VID-20231224-WA0007.3gp"))
	assert.True(t, isVideoName("00001008-VIDEO-2022-07-11-14-53-45.3gp"))
	assert.True(t, isDocName("DOC-20231224-WA0002.pdf"))
	assert.True(t, isDocName("00001008-DOC-2022-07-11-14-53-45.docx"))
}
