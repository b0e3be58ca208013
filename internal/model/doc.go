// Package model defines the core data structures used throughout
// the telegram-downloader application.
//
// # MediaCategory
//
// MediaCategory is both the user-facing filter and the destination
// sub-folder under the downloads root:
//
//	cat, ok := model.ParseCategory("3") // CategoryPDF
//	cat.Folder()                        // "pdfs"
//
// # MediaMessage
//
// MediaMessage is an immutable reference to one channel message that
// carries downloadable media: its ID, classified category, derived file
// name and the Telegram file location needed to transfer the bytes.
// Instances are produced by internal/telegram while iterating a channel
// and consumed once by the download manager.
//
// # DownloadOutcome
//
// Every MediaMessage handed to the download manager ends in exactly one
// terminal DownloadOutcome: Skipped, Succeeded or Failed. Summary holds
// the aggregate tallies for a run.
package model
