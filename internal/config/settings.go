package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

// Settings holds all configuration options.
type Settings struct {
	// Telegram API credentials, from https://my.telegram.org/apps.
	APIID   int    `json:"api_id"`
	APIHash string `json:"api_hash"`

	// SessionName names the session file; the MTProto session is stored
	// in "<SessionName>.session" under SessionDir.
	SessionName string `json:"session_name"`
	SessionDir  string `json:"session_dir"`

	// Download settings
	DownloadsPath string `json:"downloads_path"`
	BatchSize     int    `json:"batch_size"`
	MessageLimit  int    `json:"message_limit"`

	// Transfer tuning
	PartSize   int `json:"part_size"`
	MaxThreads int `json:"max_threads"`

	// Logging
	LogLevel string `json:"log_level"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		SessionName:   "default_session",
		SessionDir:    ".",
		DownloadsPath: "downloads",
		BatchSize:     5,
		MessageLimit:  2000,
		PartSize:      512 * 1024,
		MaxThreads:    4,
		LogLevel:      "info",
	}
}

// Load reads settings from a JSON file.
//
// A missing file is not an error: defaults are returned so the
// environment alone can configure the tool.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overlays settings with values from the environment.
//
// A .env file in the working directory is loaded first if present
// (missing is fine). Recognized variables, matching the historical
// names: API_ID, API_HASH, SESSION_NAME, BATCH_SIZE, DOWNLOADS_PATH,
// MESSAGE_LIMIT, LOG_LEVEL.
func (s *Settings) ApplyEnv() error {
	// Ignore a missing .env; variables may come from the process
	// environment directly.
	_ = godotenv.Load()

	if v := os.Getenv("API_ID"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "parse API_ID")
		}
		s.APIID = id
	}
	if v := os.Getenv("API_HASH"); v != "" {
		s.APIHash = v
	}
	if v := os.Getenv("SESSION_NAME"); v != "" {
		s.SessionName = v
	}
	if v := os.Getenv("BATCH_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "parse BATCH_SIZE")
		}
		s.BatchSize = n
	}
	if v := os.Getenv("DOWNLOADS_PATH"); v != "" {
		s.DownloadsPath = v
	}
	if v := os.Getenv("MESSAGE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "parse MESSAGE_LIMIT")
		}
		s.MessageLimit = n
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}

	return nil
}

// Validate checks that the settings are usable for a run.
func (s *Settings) Validate() error {
	if s.APIID == 0 {
		return errors.New("API_ID is not set")
	}
	if s.APIHash == "" {
		return errors.New("API_HASH is not set")
	}
	if s.BatchSize < 1 {
		return errors.New("batch size must be at least 1")
	}
	if s.MessageLimit < 1 {
		return errors.New("message limit must be at least 1")
	}
	if s.DownloadsPath == "" {
		return errors.New("downloads path is not set")
	}
	return nil
}

// SessionFile returns the path of the MTProto session file.
func (s *Settings) SessionFile() string {
	return filepath.Join(s.SessionDir, s.SessionName+".session")
}

// HistoryFile returns the path of the download history log.
func (s *Settings) HistoryFile() string {
	return filepath.Join(s.DownloadsPath, "download_log.txt")
}
