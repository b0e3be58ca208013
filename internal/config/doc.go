// Package config provides configuration management for telegram-downloader.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Environment overrides (.env via godotenv, then process environment)
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Downloads to ./downloads
//	// Batch size 5, message limit 2000
//
// # Loading
//
// Settings come from an optional JSON file overlaid by the environment:
//
//	settings, err := config.Load("config.json")
//	if err == nil {
//	    err = settings.ApplyEnv()
//	}
//
// Environment variables keep the historical names of the tool:
// API_ID, API_HASH, SESSION_NAME, BATCH_SIZE, DOWNLOADS_PATH,
// MESSAGE_LIMIT, LOG_LEVEL. A .env file in the working directory is
// honored.
//
// # Validation
//
// Validate() must pass before connecting: credentials present, batch
// size and message limit positive, downloads path set.
package config
