package chat

import (
	"regexp"
	"strings"
)

var urlRe = regexp.MustCompile(`https?://(?:[-\w.]|(?:%[\da-fA-F]{2}))+`)

// Lookup resolves an attachment filename from a chat line to a real file.
// Implementations match fuzzily because exports mangle names on the way out.
type Lookup interface {
	FindAttachment(name string) (path string, ok bool)
}

// Prober answers media questions about a file on disk. All methods must be
// safe to call on files that are not actually media; they report the zero
// answer instead of failing.
type Prober interface {
	IsAnimated(path string) bool
	IsValidSticker(path string) bool
	Duration(path string) (seconds float64, ok bool)
}

// Classification is the pure result of classifying one message. The one
// filesystem fact it carries, Exists plus the resolved Path, is looked up
// here so callers aggregate the missing-file consequence in a single place
// instead of every probe site logging on its own.
type Classification struct {
	Type       ContentType
	Multiframe bool
	Exists     bool
	Path       string
}

// Classifier turns message content into a Classification. MIME maps a
// filename to a MIME string; leaving it nil uses the built-in extension
// table via the media package at construction time.
type Classifier struct {
	Lookup Lookup
	Prober Prober
	MIME   func(name string) string
}

// Classify decides the content type of a message. Attachment kinds are tried
// in a fixed order: sticker, audio, image, video, document. Sticker has to go
// first because sticker files are .webp and would otherwise land in the image
// branch.
func (c *Classifier) Classify(content string, isAttachment bool, file string) Classification {
	if !isAttachment {
		if urlRe.MatchString(content) {
			return Classification{Type: TypeLink}
		}
		return Classification{Type: TypeText}
	}
	if file == "" {
		// marker without a resolvable filename, nothing more to say
		return Classification{Type: TypeText}
	}

	mime := ""
	if c.MIME != nil {
		mime = c.MIME(file)
	}
	path, exists := "", false
	if c.Lookup != nil {
		path, exists = c.Lookup.FindAttachment(file)
	}
	cls := Classification{Exists: exists, Path: path}

	switch {
	case IsStickerName(file) || strings.Contains(strings.ToLower(file), "stickers"):
		cls.Type = TypeSticker
		cls.Multiframe = exists && c.Prober.IsAnimated(path)

	case isAudioName(file) || strings.HasPrefix(mime, "audio/"):
		cls.Type = concreteOr(mime, TypeAudio, ContentType.IsAudio)

	case isImageName(file) || strings.HasPrefix(mime, "image/"):
		cls.Type = concreteOr(mime, TypeImage, ContentType.IsImage)
		switch cls.Type {
		case TypeGIF:
			cls.Multiframe = true
		case TypeWebP:
			// a .webp that passes the sticker size cap is a sticker after all
			if exists && c.Prober.IsValidSticker(path) {
				cls.Type = TypeSticker
			}
			cls.Multiframe = exists && c.Prober.IsAnimated(path)
		}

	case isVideoName(file) || strings.HasPrefix(mime, "video/"):
		cls.Type = concreteOr(mime, TypeVideo, ContentType.IsVideo)
		cls.Multiframe = true

	case isDocName(file) || strings.HasPrefix(mime, "application/") || strings.HasPrefix(mime, "text/"):
		if mime == "text/x-vcard" {
			cls.Type = TypeContact
		} else {
			cls.Type = concreteOr(mime, TypeDocument, ContentType.IsDocument)
		}

	default:
		cls.Type = TypeUnknown
	}
	return cls
}

// concreteOr resolves mime to a concrete variant inside the wanted family,
// or the family's generic type when resolution lands outside it.
func concreteOr(mime string, generic ContentType, inFamily func(ContentType) bool) ContentType {
	t := FromMIME(mime)
	if inFamily(t) {
		return t
	}
	return generic
}
