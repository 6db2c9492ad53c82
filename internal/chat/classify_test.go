package chat

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeLookup map[string]string

func (f fakeLookup) FindAttachment(name string) (string, bool) {
	p, ok := f[name]
	return p, ok
}

type fakeProber struct {
	animated map[string]bool
	stickers map[string]bool
	duration map[string]float64
}

func (f *fakeProber) IsAnimated(path string) bool     { return f.animated[path] }
func (f *fakeProber) IsValidSticker(path string) bool { return f.stickers[path] }
func (f *fakeProber) Duration(path string) (float64, bool) {
	d, ok := f.duration[path]
	return d, ok
}

var testMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".3gp":  "video/3gpp",
	".opus": "audio/ogg",
	".m4a":  "audio/mp4",
	".mp3":  "audio/mpeg",
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".vcf":  "text/x-vcard",
}

func mimeForTest(name string) string {
	return testMIME[strings.ToLower(filepath.Ext(name))]
}

func newTestClassifier(lookup fakeLookup, prober *fakeProber) *Classifier {
	if prober == nil {
		prober = &fakeProber{}
	}
	return &Classifier{Lookup: lookup, Prober: prober, MIME: mimeForTest}
}

func TestClassifyText(t *testing.T) {
	c := newTestClassifier(fakeLookup{}, nil)

	cls := c.Classify("see you at nine", false, "")
	assert.Equal(t, TypeText, cls.Type)
	assert.False(t, cls.Multiframe)

	cls = c.Classify("check https://example.org/page out", false, "")
	assert.Equal(t, TypeLink, cls.Type)

	// marker without a filename stays text
	cls = c.Classify("<Media omitted>", true, "")
	assert.Equal(t, TypeText, cls.Type)
}

func TestClassifyAttachments(t *testing.T) {
	lookup := fakeLookup{
		"IMG-20231224-WA0001.jpg":  "/media/IMG-20231224-WA0001.jpg",
		"VID-20231224-WA0007.mp4":  "/media/VID-20231224-WA0007.mp4",
		"PTT-20231224-WA0012.opus": "/media/PTT-20231224-WA0012.opus",
		"DOC-20231224-WA0002.pdf":  "/media/DOC-20231224-WA0002.pdf",
		"contact.vcf":              "/media/contact.vcf",
		"funny.gif":                "/media/funny.gif",
	}
	c := newTestClassifier(lookup, nil)

	tests := []struct {
		file       string
		wantType   ContentType
		multiframe bool
		exists     bool
	}{
		{"IMG-20231224-WA0001.jpg", TypeJPEG, false, true},
		{"VID-20231224-WA0007.mp4", TypeMP4, true, true},
		{"VID-20240101-WA0001.3gp", Type3GP, true, false},
		{"PTT-20231224-WA0012.opus", TypeOggOpus, false, true},
		{"AUD-20231224-WA0003.m4a", TypeMP4Audio, false, false},
		{"DOC-20231224-WA0002.pdf", TypePDF, false, true},
		{"contact.vcf", TypeContact, false, true},
		{"funny.gif", TypeGIF, true, true},
		{"mystery.xyz", TypeUnknown, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			cls := c.Classify(tt.file, true, tt.file)
			assert.Equal(t, tt.wantType, cls.Type)
			assert.Equal(t, tt.multiframe, cls.Multiframe)
			assert.Equal(t, tt.exists, cls.Exists)
		})
	}
}

func TestClassifyStickers(t *testing.T) {
	lookup := fakeLookup{
		"STK-20231224-WA0099.webp": "/media/STK-20231224-WA0099.webp",
		"big-banner.webp":          "/media/big-banner.webp",
		"small-art.webp":           "/media/small-art.webp",
	}
	prober := &fakeProber{
		animated: map[string]bool{"/media/STK-20231224-WA0099.webp": true},
		stickers: map[string]bool{
			"/media/STK-20231224-WA0099.webp": true,
			"/media/small-art.webp":           true,
		},
	}
	c := newTestClassifier(lookup, prober)

	// sticker counter name wins before the image branch sees the .webp
	cls := c.Classify("STK-20231224-WA0099.webp", true, "STK-20231224-WA0099.webp")
	assert.Equal(t, TypeSticker, cls.Type)
	assert.True(t, cls.Multiframe)

	// plain webp within the sticker size cap is reclassified
	cls = c.Classify("small-art.webp", true, "small-art.webp")
	assert.Equal(t, TypeSticker, cls.Type)
	assert.False(t, cls.Multiframe)

	// oversized webp stays an image
	cls = c.Classify("big-banner.webp", true, "big-banner.webp")
	assert.Equal(t, TypeWebP, cls.Type)

	// missing sticker file still classifies, without probing
	cls = c.Classify("STK-20240101-WA0001.webp", true, "STK-20240101-WA0001.webp")
	assert.Equal(t, TypeSticker, cls.Type)
	assert.False(t, cls.Multiframe)
	assert.False(t, cls.Exists)
}
