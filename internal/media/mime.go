// Package media resolves MIME types from filenames and probes media files
// for the few facts the chat classifier needs: animation, sticker-sized
// dimensions, and playable duration.
package media

import (
	"path/filepath"
	"strings"
)

// mimeByExt is a fixed table instead of the platform mime database so the
// same export classifies identically on every machine.
var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".3gp":  "video/3gpp",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".opus": "audio/ogg",
	".amr":  "audio/amr",
	".wav":  "audio/wav",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".ppt":  "application/vnd.ms-powerpoint",
	".xls":  "application/vnd.ms-excel",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".txt":  "text/plain",
	".vcf":  "text/x-vcard",
}

// TypeByExtension returns the MIME type for a filename, or "" when the
// extension is not in the table.
func TypeByExtension(name string) string {
	return mimeByExt[strings.ToLower(filepath.Ext(name))]
}
