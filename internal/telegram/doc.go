// Package telegram wraps the gotd MTProto client behind the small
// surface the rest of the application needs:
//
//   - Client connects with a file-backed session and authenticates
//     interactively when the session is fresh (Run) or refuses to start
//     without an authorized session (RunAuthorized, used by the TUI).
//   - ListChannels walks the account's dialog list and returns the
//     joined channels.
//   - MediaMessages iterates a channel's recent history with a
//     server-side media filter and classifies each message.
//   - Fetch transfers one media file to disk; it satisfies the
//     download.Fetcher interface.
//
// Failures from ListChannels and MediaMessages are fatal to a run;
// failures from Fetch are isolated to the affected item by the download
// manager.
package telegram
