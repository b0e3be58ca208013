package telegram

import (
	"testing"

	"github.com/gotd/td/tg"

	"github.com/handiism/telegram-downloader/internal/model"
)

func photoMessage(id int) *tg.Message {
	photo := &tg.Photo{
		ID:            9000 + int64(id),
		AccessHash:    1,
		FileReference: []byte{1},
		Sizes: []tg.PhotoSizeClass{
			&tg.PhotoSize{Type: "m", Size: 100},
			&tg.PhotoSize{Type: "y", Size: 2048},
		},
	}
	media := &tg.MessageMediaPhoto{}
	media.SetPhoto(photo)

	msg := &tg.Message{ID: id}
	msg.SetMedia(media)
	return msg
}

func documentMessage(id int, mimeType string, attrs ...tg.DocumentAttributeClass) *tg.Message {
	doc := &tg.Document{
		ID:            7000 + int64(id),
		AccessHash:    2,
		FileReference: []byte{2},
		MimeType:      mimeType,
		Size:          4096,
		Attributes:    attrs,
	}
	media := &tg.MessageMediaDocument{}
	media.SetDocument(doc)

	msg := &tg.Message{ID: id}
	msg.SetMedia(media)
	return msg
}

func textMessage(id int) *tg.Message {
	return &tg.Message{ID: id, Message: "no media here"}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		msg  *tg.Message
		want model.MediaCategory
	}{
		{"photo", photoMessage(1), model.CategoryImage},
		{"video document", documentMessage(2, "video/mp4", &tg.DocumentAttributeVideo{Duration: 10}), model.CategoryVideo},
		{"video by attribute only", documentMessage(3, "application/octet-stream", &tg.DocumentAttributeVideo{}), model.CategoryVideo},
		{"pdf", documentMessage(4, "application/pdf", &tg.DocumentAttributeFilename{FileName: "paper.pdf"}), model.CategoryPDF},
		{"zip", documentMessage(5, "application/zip"), model.CategoryZip},
		{"zip legacy mime", documentMessage(6, "application/x-zip-compressed"), model.CategoryZip},
		{"image document", documentMessage(7, "image/png"), model.CategoryImage},
		{"audio is unsupported", documentMessage(8, "audio/mpeg", &tg.DocumentAttributeAudio{Duration: 180}), model.CategoryNone},
		{"no media", textMessage(9), model.CategoryNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.msg); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		msg  *tg.Message
		want string
	}{
		{"photo", photoMessage(11), "11_photo_9011.jpg"},
		{"declared name", documentMessage(12, "application/pdf", &tg.DocumentAttributeFilename{FileName: "report.pdf"}), "12_report.pdf"},
		{"declared name sanitized", documentMessage(13, "application/zip", &tg.DocumentAttributeFilename{FileName: "a/b:c.zip"}), "13_a_b_c.zip"},
		{"fallback pdf extension", documentMessage(14, "application/pdf"), "14_document_7014.pdf"},
		{"fallback video extension", documentMessage(15, "video/x-made-up", &tg.DocumentAttributeVideo{}), "15_document_7015.mp4"},
		{"fallback unknown", documentMessage(16, "application/x-unknown-kind"), "16_document_7016.bin"},
		{"fallback jpeg extension", documentMessage(18, "image/jpeg"), "18_document_7018.jpg"},
		{"fallback zip extension", documentMessage(19, "application/x-zip-compressed"), "19_document_7019.zip"},
		{"fallback mp4 extension", documentMessage(20, "video/mp4"), "20_document_7020.mp4"},
		{"no media", textMessage(17), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(tt.msg); got != tt.want {
				t.Errorf("FileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMediaMessage(t *testing.T) {
	t.Run("photo uses largest size", func(t *testing.T) {
		mm, ok := mediaMessage(photoMessage(21))
		if !ok {
			t.Fatal("mediaMessage() = false for photo")
		}
		if mm.Size != 2048 {
			t.Errorf("Size = %d, want 2048 (largest variant)", mm.Size)
		}
		loc, ok := mm.Location.(*tg.InputPhotoFileLocation)
		if !ok {
			t.Fatalf("Location is %T, want photo location", mm.Location)
		}
		if loc.ThumbSize != "y" {
			t.Errorf("ThumbSize = %q, want %q", loc.ThumbSize, "y")
		}
	})

	t.Run("document", func(t *testing.T) {
		mm, ok := mediaMessage(documentMessage(22, "application/pdf"))
		if !ok {
			t.Fatal("mediaMessage() = false for document")
		}
		if mm.Size != 4096 {
			t.Errorf("Size = %d, want 4096", mm.Size)
		}
		if mm.Category != model.CategoryPDF {
			t.Errorf("Category = %v, want PDF", mm.Category)
		}
		if _, ok := mm.Location.(*tg.InputDocumentFileLocation); !ok {
			t.Errorf("Location is %T, want document location", mm.Location)
		}
	})

	t.Run("text message has nothing to download", func(t *testing.T) {
		if _, ok := mediaMessage(textMessage(23)); ok {
			t.Error("mediaMessage() = true for text message")
		}
	})
}

func TestLargestPhotoSize_Progressive(t *testing.T) {
	photo := &tg.Photo{
		Sizes: []tg.PhotoSizeClass{
			&tg.PhotoSize{Type: "m", Size: 500},
			&tg.PhotoSizeProgressive{Type: "w", Sizes: []int{100, 900, 12000}},
		},
	}

	typ, size, ok := largestPhotoSize(photo)
	if !ok {
		t.Fatal("largestPhotoSize() = false")
	}
	if typ != "w" || size != 12000 {
		t.Errorf("largestPhotoSize() = (%q, %d), want (\"w\", 12000)", typ, size)
	}
}

func TestTransferThreads(t *testing.T) {
	tests := []struct {
		size int64
		max  int
		want int
	}{
		{100, 4, 1},
		{10 << 20, 4, 2},
		{100 << 20, 4, 4},
		{100 << 20, 8, 8},
		{0, 4, 1},
	}

	for _, tt := range tests {
		if got := transferThreads(tt.size, tt.max); got != tt.want {
			t.Errorf("transferThreads(%d, %d) = %d, want %d", tt.size, tt.max, got, tt.want)
		}
	}
}

func TestSearchFilter(t *testing.T) {
	tests := []struct {
		filter model.MediaCategory
		want   tg.MessagesFilterClass
	}{
		{model.CategoryImage, &tg.InputMessagesFilterPhotos{}},
		{model.CategoryVideo, &tg.InputMessagesFilterVideo{}},
		{model.CategoryPDF, &tg.InputMessagesFilterDocument{}},
		{model.CategoryZip, &tg.InputMessagesFilterDocument{}},
		{model.CategoryAll, &tg.InputMessagesFilterEmpty{}},
	}

	for _, tt := range tests {
		got := searchFilter(tt.filter)
		if got.TypeID() != tt.want.TypeID() {
			t.Errorf("searchFilter(%v) = %T, want %T", tt.filter, got, tt.want)
		}
	}
}
