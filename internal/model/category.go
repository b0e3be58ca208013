package model

// MediaCategory identifies the kind of media carried by a message.
//
// It doubles as the user-facing filter selector and as the destination
// sub-folder name under the downloads root. CategoryNone is the sentinel
// for messages whose media (or lack of it) matches no supported kind;
// such messages are excluded from every filter except CategoryAll.
type MediaCategory int

const (
	// CategoryNone marks a message with no downloadable media of a
	// supported kind. Never used as a download destination.
	CategoryNone MediaCategory = iota

	// CategoryImage covers photos and image documents.
	CategoryImage

	// CategoryVideo covers video documents.
	CategoryVideo

	// CategoryPDF covers documents with an application/pdf MIME type.
	CategoryPDF

	// CategoryZip covers documents with a ZIP archive MIME type.
	CategoryZip

	// CategoryAll accepts any message carrying downloadable media.
	CategoryAll
)

// ParseCategory maps a menu choice ("1".."5") to its category.
//
// The numbering matches the interactive menu:
//
//	1=Images, 2=Videos, 3=PDFs, 4=ZIPs, 5=All
//
// Returns false for any other input so the caller can re-prompt.
func ParseCategory(choice string) (MediaCategory, bool) {
	switch choice {
	case "1":
		return CategoryImage, true
	case "2":
		return CategoryVideo, true
	case "3":
		return CategoryPDF, true
	case "4":
		return CategoryZip, true
	case "5":
		return CategoryAll, true
	default:
		return CategoryNone, false
	}
}

// Folder returns the destination sub-folder name for the category.
//
// Returns:
//   - "images" for CategoryImage
//   - "videos" for CategoryVideo
//   - "pdfs" for CategoryPDF
//   - "zips" for CategoryZip
//   - "all_media" for CategoryAll
//   - "" for CategoryNone (never a valid destination)
func (c MediaCategory) Folder() string {
	switch c {
	case CategoryImage:
		return "images"
	case CategoryVideo:
		return "videos"
	case CategoryPDF:
		return "pdfs"
	case CategoryZip:
		return "zips"
	case CategoryAll:
		return "all_media"
	default:
		return ""
	}
}

// String returns the human-readable category name used in menus and logs.
func (c MediaCategory) String() string {
	switch c {
	case CategoryImage:
		return "Images"
	case CategoryVideo:
		return "Videos"
	case CategoryPDF:
		return "PDFs"
	case CategoryZip:
		return "ZIP files"
	case CategoryAll:
		return "All media types"
	default:
		return "None"
	}
}

// Matches reports whether a message classified as got satisfies the
// filter c. CategoryAll accepts every category except CategoryNone.
func (c MediaCategory) Matches(got MediaCategory) bool {
	if got == CategoryNone {
		return false
	}
	if c == CategoryAll {
		return true
	}
	return c == got
}
