// Package download provides the batched download coordination logic
// for fetching channel media to the local filesystem.
//
// # Manager
//
// The Manager consumes an ordered, pre-filtered slice of media messages
// and drives each one to exactly one terminal outcome (Skipped,
// Succeeded or Failed):
//
//	manager := download.NewManager(download.Options{
//	    Root:      "downloads/images",
//	    BatchSize: settings.BatchSize,
//	    Fetcher:   client,
//	    History:   history,
//	}, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	result, err := manager.Run(ctx, msgs)
//
// # Batching
//
// Transfers run in fixed windows of at most BatchSize items: every item
// of a window must settle before the next window starts. This is a
// bounded-concurrency barrier, not a rate limiter; it keeps at most
// BatchSize transfers in flight at any moment. An item that is skipped
// (file already present, or message recorded as finished in the
// history log) still occupies its window slot and settles immediately.
//
// # Error Handling
//
// A failing transfer is isolated: its outcome carries the cause and the
// remaining items keep going. Run itself only fails when the
// destination root cannot be created or the context is cancelled
// between windows; in the latter case in-flight transfers of the
// current window finish or fail naturally first.
//
// # History
//
// History is the append-only download_log.txt: every status change is
// recorded (In Queue, Downloading, Finished, Skipped, Error) and the
// Finished entries of earlier runs are skipped without a transfer.
package download
