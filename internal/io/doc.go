// Package ioutils provides file system utilities for telegram-downloader.
//
// This package contains functions for:
//   - Directory creation
//   - File existence checks
//   - Filename sanitization
//
// The existence check is the duplicate-skipping mechanism: a destination
// file that is already present causes the associated message to be
// skipped without a network transfer.
package ioutils
