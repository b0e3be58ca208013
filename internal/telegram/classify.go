package telegram

import (
	"fmt"
	"mime"
	"strings"

	"github.com/gotd/td/tg"

	ioutils "github.com/handiism/telegram-downloader/internal/io"
	"github.com/handiism/telegram-downloader/internal/model"
)

// Classify maps a message to its media category based on declared
// metadata (media kind and MIME type), never on content.
//
// Classify is total: every message maps to exactly one category, with
// CategoryNone for messages that carry no media of a supported kind.
func Classify(msg *tg.Message) model.MediaCategory {
	media, ok := msg.GetMedia()
	if !ok {
		return model.CategoryNone
	}

	switch m := media.(type) {
	case *tg.MessageMediaPhoto:
		if _, ok := photoOf(m); !ok {
			return model.CategoryNone
		}
		return model.CategoryImage
	case *tg.MessageMediaDocument:
		doc, ok := documentOf(m)
		if !ok {
			return model.CategoryNone
		}
		return classifyDocument(doc)
	default:
		return model.CategoryNone
	}
}

func classifyDocument(doc *tg.Document) model.MediaCategory {
	switch doc.MimeType {
	case "application/pdf":
		return model.CategoryPDF
	case "application/zip", "application/x-zip-compressed":
		return model.CategoryZip
	}

	if strings.HasPrefix(doc.MimeType, "video/") || hasVideoAttribute(doc) {
		return model.CategoryVideo
	}
	if strings.HasPrefix(doc.MimeType, "image/") {
		return model.CategoryImage
	}

	return model.CategoryNone
}

// FileName derives the destination file name for a message's media.
//
// Photos become "<msgID>_photo_<photoID>.jpg". Documents keep their
// declared file name when one is attached, prefixed with the message
// ID; otherwise "<msgID>_document_<docID><ext>" with the extension
// guessed from the MIME type (".mp4" for videos and ".bin" when
// nothing better is known). The message ID prefix makes names unique
// within a channel. Empty when the message has no downloadable media.
func FileName(msg *tg.Message) string {
	media, ok := msg.GetMedia()
	if !ok {
		return ""
	}

	switch m := media.(type) {
	case *tg.MessageMediaPhoto:
		photo, ok := photoOf(m)
		if !ok {
			return ""
		}
		return fmt.Sprintf("%d_photo_%d.jpg", msg.ID, photo.ID)
	case *tg.MessageMediaDocument:
		doc, ok := documentOf(m)
		if !ok {
			return ""
		}
		if name, ok := declaredFileName(doc); ok {
			return ioutils.SanitizeFileName(fmt.Sprintf("%d_%s", msg.ID, name))
		}
		return fmt.Sprintf("%d_document_%d%s", msg.ID, doc.ID, extensionFor(doc))
	default:
		return ""
	}
}

func declaredFileName(doc *tg.Document) (string, bool) {
	for _, attr := range doc.Attributes {
		if a, ok := attr.(*tg.DocumentAttributeFilename); ok && a.FileName != "" {
			return a.FileName, true
		}
	}
	return "", false
}

func hasVideoAttribute(doc *tg.Document) bool {
	for _, attr := range doc.Attributes {
		if _, ok := attr.(*tg.DocumentAttributeVideo); ok {
			return true
		}
	}
	return false
}

// knownExtensions pins the extensions of the MIME types the classifier
// cares about; mime.ExtensionsByType reads the host's mime.types and is
// only consulted for everything else.
var knownExtensions = map[string]string{
	"application/pdf":              ".pdf",
	"application/zip":              ".zip",
	"application/x-zip-compressed": ".zip",
	"image/jpeg":                   ".jpg",
	"image/png":                    ".png",
	"image/gif":                    ".gif",
	"image/webp":                   ".webp",
	"video/mp4":                    ".mp4",
	"video/webm":                   ".webm",
}

func extensionFor(doc *tg.Document) string {
	if ext, ok := knownExtensions[doc.MimeType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(doc.MimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	if hasVideoAttribute(doc) {
		return ".mp4"
	}
	return ".bin"
}

func photoOf(m *tg.MessageMediaPhoto) (*tg.Photo, bool) {
	raw, ok := m.GetPhoto()
	if !ok {
		return nil, false
	}
	photo, ok := raw.(*tg.Photo)
	return photo, ok
}

func documentOf(m *tg.MessageMediaDocument) (*tg.Document, bool) {
	raw, ok := m.GetDocument()
	if !ok {
		return nil, false
	}
	doc, ok := raw.(*tg.Document)
	return doc, ok
}

// mediaMessage builds the downloadable reference for a message, false
// when it carries nothing transferable.
func mediaMessage(msg *tg.Message) (*model.MediaMessage, bool) {
	media, ok := msg.GetMedia()
	if !ok {
		return nil, false
	}

	switch m := media.(type) {
	case *tg.MessageMediaPhoto:
		photo, ok := photoOf(m)
		if !ok {
			return nil, false
		}
		thumb, size, ok := largestPhotoSize(photo)
		if !ok {
			return nil, false
		}
		return &model.MediaMessage{
			ID:       msg.ID,
			Category: model.CategoryImage,
			FileName: FileName(msg),
			Size:     size,
			Location: &tg.InputPhotoFileLocation{
				ID:            photo.ID,
				AccessHash:    photo.AccessHash,
				FileReference: photo.FileReference,
				ThumbSize:     thumb,
			},
		}, true
	case *tg.MessageMediaDocument:
		doc, ok := documentOf(m)
		if !ok {
			return nil, false
		}
		return &model.MediaMessage{
			ID:       msg.ID,
			Category: classifyDocument(doc),
			FileName: FileName(msg),
			Size:     doc.Size,
			Location: &tg.InputDocumentFileLocation{
				ID:            doc.ID,
				AccessHash:    doc.AccessHash,
				FileReference: doc.FileReference,
			},
		}, true
	default:
		return nil, false
	}
}

// largestPhotoSize picks the biggest declared size variant of a photo.
func largestPhotoSize(photo *tg.Photo) (thumbType string, size int64, ok bool) {
	for _, raw := range photo.Sizes {
		switch s := raw.(type) {
		case *tg.PhotoSize:
			if int64(s.Size) >= size {
				thumbType, size, ok = s.Type, int64(s.Size), true
			}
		case *tg.PhotoSizeProgressive:
			var max int
			for _, n := range s.Sizes {
				if n > max {
					max = n
				}
			}
			if int64(max) >= size {
				thumbType, size, ok = s.Type, int64(max), true
			}
		}
	}
	return thumbType, size, ok
}
