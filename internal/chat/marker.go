package chat

import (
	"regexp"
	"strings"
)

// Attachment markers come in three shapes. Newer exports wrap the filename in
// an angle-bracket tag ("<Anhang: IMG-....jpg>" / "<attached: ...>"), Android
// exports suffix it ("IMG-....jpg (Datei angehängt)"), and some exports drop
// the tag entirely and leave a bare media filename as the whole content line.
// The bare forms are matched per kind so the filename doubles as a type hint.
var (
	taggedAttachmentRe = regexp.MustCompile(`<(?:Anhang|attached|attachment):?\s*([^>]+)>`)
	suffixAttachmentRe = regexp.MustCompile(`^(.+?)\s*\((?:Datei angehängt|file attached)\)$`)

	// 8-digit counter, long ISO stamp form: 00000042-PHOTO-2023-12-24-21-30-05.jpg
	// and the short WA counter form: IMG-20231224-WA0042.jpg
	stickerMarkerRe = regexp.MustCompile(`(?i)(?:\d{8}-STICKER-\d{4}-\d{2}-\d{2}-\d{2}-\d{2}-\d{2}|STK-\d{8}-WA\d{4,5})\.webp`)
	audioMarkerRe   = regexp.MustCompile(`(?i)(?:\d{8}-AUDIO-\d{4}-\d{2}-\d{2}-\d{2}-\d{2}-\d{2}\.(?:mp3|m4a|ogg|wav)|(?:AUD|PTT)-\d{8}-WA\d{4,5}\.(?:mp3|m4a|ogg|wav|opus))`)
	imageMarkerRe   = regexp.MustCompile(`(?i)(?:\d{8}-PHOTO-\d{4}-\d{2}-\d{2}-\d{2}-\d{2}-\d{2}\.(?:jpg|jpeg|png|gif)|IMG-\d{8}-WA\d{4,5}\.(?:jpg|jpeg|png|gif))`)
	videoMarkerRe   = regexp.MustCompile(`(?i)(?:\d{8}-VIDEO-\d{4}-\d{2}-\d{2}-\d{2}-\d{2}-\d{2}|VID-\d{8}-WA\d{4,5})\.(?:mp4|mov|avi|3gp|webm)`)
	docMarkerRe     = regexp.MustCompile(`(?i)(?:\d{8}-DOC-\d{4}-\d{2}-\d{2}-\d{2}-\d{2}-\d{2}|DOC-\d{8}-WA\d{4,5})\.(?:pdf|doc|docx|ppt|pptx|xls|xlsx|vcf)`)
)

var bareMarkerRes = []*regexp.Regexp{
	stickerMarkerRe,
	audioMarkerRe,
	imageMarkerRe,
	videoMarkerRe,
	docMarkerRe,
}

// DetectAttachment reports whether the content line references an attached
// file and returns the filename. The tagged form wins over the suffix form,
// which wins over a bare filename match.
func DetectAttachment(content string) (string, bool) {
	if strings.Contains(content, "<Media omitted>") {
		// attachment redacted by the export, no filename to resolve
		return "", true
	}
	if m := taggedAttachmentRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := suffixAttachmentRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	for _, re := range bareMarkerRes {
		if m := re.FindString(content); m != "" {
			return m, true
		}
	}
	return "", false
}

// IsStickerName reports whether a filename matches one of the sticker counter
// patterns.
func IsStickerName(name string) bool {
	return stickerMarkerRe.MatchString(name)
}

func isAudioName(name string) bool { return audioMarkerRe.MatchString(name) }
func isImageName(name string) bool { return imageMarkerRe.MatchString(name) }
func isVideoName(name string) bool { return videoMarkerRe.MatchString(name) }
func isDocName(name string) bool   { return docMarkerRe.MatchString(name) }
