package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.BatchSize != 5 {
		t.Errorf("BatchSize = %d, want 5", s.BatchSize)
	}
	if s.MessageLimit != 2000 {
		t.Errorf("MessageLimit = %d, want 2000", s.MessageLimit)
	}
	if s.DownloadsPath != "downloads" {
		t.Errorf("DownloadsPath = %q, want %q", s.DownloadsPath, "downloads")
	}
	if s.SessionName != "default_session" {
		t.Errorf("SessionName = %q, want %q", s.SessionName, "default_session")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.BatchSize != 5 {
		t.Errorf("missing file should yield defaults, BatchSize = %d", s.BatchSize)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	s := DefaultSettings()
	s.APIID = 12345
	s.APIHash = "abcdef"
	s.BatchSize = 8

	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.APIID != 12345 || loaded.APIHash != "abcdef" || loaded.BatchSize != 8 {
		t.Errorf("Load() = %+v, want saved values", loaded)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("API_ID", "4242")
	t.Setenv("API_HASH", "deadbeef")
	t.Setenv("SESSION_NAME", "work")
	t.Setenv("BATCH_SIZE", "3")
	t.Setenv("DOWNLOADS_PATH", "/tmp/media")
	t.Setenv("MESSAGE_LIMIT", "500")

	s := DefaultSettings()
	if err := s.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error: %v", err)
	}

	if s.APIID != 4242 {
		t.Errorf("APIID = %d, want 4242", s.APIID)
	}
	if s.APIHash != "deadbeef" {
		t.Errorf("APIHash = %q, want %q", s.APIHash, "deadbeef")
	}
	if s.SessionName != "work" {
		t.Errorf("SessionName = %q, want %q", s.SessionName, "work")
	}
	if s.BatchSize != 3 {
		t.Errorf("BatchSize = %d, want 3", s.BatchSize)
	}
	if s.DownloadsPath != "/tmp/media" {
		t.Errorf("DownloadsPath = %q, want %q", s.DownloadsPath, "/tmp/media")
	}
	if s.MessageLimit != 500 {
		t.Errorf("MessageLimit = %d, want 500", s.MessageLimit)
	}
}

func TestApplyEnv_BadNumber(t *testing.T) {
	t.Setenv("API_ID", "not-a-number")

	s := DefaultSettings()
	if err := s.ApplyEnv(); err == nil {
		t.Error("ApplyEnv() should fail on non-numeric API_ID")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		wantOK bool
	}{
		{"valid", func(s *Settings) { s.APIID = 1; s.APIHash = "h" }, true},
		{"missing api id", func(s *Settings) { s.APIHash = "h" }, false},
		{"missing api hash", func(s *Settings) { s.APIID = 1 }, false},
		{"zero batch", func(s *Settings) { s.APIID = 1; s.APIHash = "h"; s.BatchSize = 0 }, false},
		{"zero limit", func(s *Settings) { s.APIID = 1; s.APIHash = "h"; s.MessageLimit = 0 }, false},
		{"empty downloads path", func(s *Settings) { s.APIID = 1; s.APIHash = "h"; s.DownloadsPath = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			err := s.Validate()
			if (err == nil) != tt.wantOK {
				t.Errorf("Validate() error = %v, want ok=%v", err, tt.wantOK)
			}
		})
	}
}

func TestSessionFile(t *testing.T) {
	s := DefaultSettings()
	s.SessionName = "work"
	s.SessionDir = "/home/u"

	if got := s.SessionFile(); got != filepath.Join("/home/u", "work.session") {
		t.Errorf("SessionFile() = %q", got)
	}
}
