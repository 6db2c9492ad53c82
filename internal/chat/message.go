package chat

import "strings"

// ContentType is the closed taxonomy a message can be classified into.
// Concrete media variants carry their MIME string; the broad family values
// (Image, Video, Audio, Document) catch files whose MIME resolves only to a
// family prefix.
type ContentType int

const (
	TypeText ContentType = iota
	TypeLink
	TypeSticker

	// images
	TypeImage
	TypePNG
	TypeJPEG
	TypeGIF
	TypeWebP

	// video
	TypeVideo
	TypeMP4
	Type3GP
	TypeWebM
	TypeMOV
	TypeAVI

	// audio
	TypeAudio
	TypeMP3
	TypeMP4Audio
	TypeMPEGAudio
	TypeOggOpus
	TypeAMR

	// documents
	TypeDocument
	TypePDF
	TypeMSWord
	TypeMSPowerPoint
	TypeMSExcel
	TypeDOCX
	TypePPTX
	TypeXLSX

	TypeContact
	TypeUnknown
)

var typeNames = map[ContentType]string{
	TypeText:         "TEXT",
	TypeLink:         "LINK",
	TypeSticker:      "STICKER",
	TypeImage:        "IMAGE",
	TypePNG:          "PNG",
	TypeJPEG:         "JPEG",
	TypeGIF:          "GIF",
	TypeWebP:         "WEBP",
	TypeVideo:        "VIDEO",
	TypeMP4:          "MP4",
	Type3GP:          "VIDEO_3GP",
	TypeWebM:         "WEBM",
	TypeMOV:          "MOV",
	TypeAVI:          "AVI",
	TypeAudio:        "AUDIO",
	TypeMP3:          "MP3",
	TypeMP4Audio:     "MP4_AUDIO",
	TypeMPEGAudio:    "MPEG_AUDIO",
	TypeOggOpus:      "OGG_OPUS",
	TypeAMR:          "AMR",
	TypeDocument:     "DOCUMENT",
	TypePDF:          "PDF",
	TypeMSWord:       "MS_WORD",
	TypeMSPowerPoint: "MS_POWERPOINT",
	TypeMSExcel:      "MS_EXCEL",
	TypeDOCX:         "DOCX",
	TypePPTX:         "PPTX",
	TypeXLSX:         "XLSX",
	TypeContact:      "CONTACT",
	TypeUnknown:      "UNKNOWN",
}

func (t ContentType) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "UNKNOWN"
}

// ParseContentType is the inverse of String, for reading stored rows back.
func ParseContentType(s string) ContentType {
	for t, n := range typeNames {
		if n == s {
			return t
		}
	}
	return TypeUnknown
}

// mimeByType maps concrete types to their exact MIME string. Used for the
// exact-match pass of FromMIME.
var mimeByType = map[ContentType]string{
	TypePNG:          "image/png",
	TypeJPEG:         "image/jpeg",
	TypeGIF:          "image/gif",
	TypeWebP:         "image/webp",
	TypeMP4:          "video/mp4",
	Type3GP:          "video/3gpp",
	TypeWebM:         "video/webm",
	TypeMOV:          "video/quicktime",
	TypeAVI:          "video/x-msvideo",
	TypeMP3:          "audio/mpeg3",
	TypeMP4Audio:     "audio/mp4",
	TypeMPEGAudio:    "audio/mpeg",
	TypeOggOpus:      "audio/ogg",
	TypeAMR:          "audio/amr",
	TypePDF:          "application/pdf",
	TypeMSWord:       "application/msword",
	TypeMSPowerPoint: "application/vnd.ms-powerpoint",
	TypeMSExcel:      "application/vnd.ms-excel",
	TypeDOCX:         "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	TypePPTX:         "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	TypeXLSX:         "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	TypeContact:      "text/x-vcard",
	TypeText:         "text/plain",
}

var typeByMIME = func() map[string]ContentType {
	m := make(map[string]ContentType, len(mimeByType)+1)
	for t, mime := range mimeByType {
		m[mime] = t
	}
	// legacy spelling used by some exports
	m["video/3gp"] = Type3GP
	return m
}()

// FromMIME resolves a MIME string to a ContentType: exact match first, then
// family prefix, then unknown.
func FromMIME(mime string) ContentType {
	if mime == "" {
		return TypeUnknown
	}
	mime = strings.ToLower(mime)
	if t, ok := typeByMIME[mime]; ok {
		return t
	}
	switch {
	case strings.HasPrefix(mime, "image/"):
		return TypeImage
	case strings.HasPrefix(mime, "video/"):
		return TypeVideo
	case strings.HasPrefix(mime, "audio/"):
		return TypeAudio
	case strings.HasPrefix(mime, "application/"), strings.HasPrefix(mime, "text/"):
		return TypeDocument
	}
	return TypeUnknown
}

// IsImage reports whether the type belongs to the image family.
func (t ContentType) IsImage() bool {
	switch t {
	case TypeImage, TypePNG, TypeJPEG, TypeGIF, TypeWebP:
		return true
	}
	return false
}

// IsVideo reports whether the type belongs to the video family.
func (t ContentType) IsVideo() bool {
	switch t {
	case TypeVideo, TypeMP4, Type3GP, TypeWebM, TypeMOV, TypeAVI:
		return true
	}
	return false
}

// IsAudio reports whether the type belongs to the audio family.
func (t ContentType) IsAudio() bool {
	switch t {
	case TypeAudio, TypeMP3, TypeMP4Audio, TypeMPEGAudio, TypeOggOpus, TypeAMR:
		return true
	}
	return false
}

// IsDocument reports whether the type belongs to the document family.
// CONTACT is deliberately not a document; it belongs to no family.
func (t ContentType) IsDocument() bool {
	switch t {
	case TypeDocument, TypePDF, TypeMSWord, TypeMSPowerPoint, TypeMSExcel, TypeDOCX, TypePPTX, TypeXLSX:
		return true
	}
	return false
}

// Message is one parsed chat line.
type Message struct {
	Timestamp      Timestamp
	Sender         string
	Content        string
	ContentType    ContentType
	ContentLength  int  // runes for text, media seconds for attachments
	HasLength      bool // false when no length could be resolved
	IsAttachment   bool
	AttachmentFile string
	ExistsInExport bool
	IsMultiframe   bool
	IsEdited       bool
}
