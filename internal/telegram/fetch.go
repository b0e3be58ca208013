package telegram

import (
	"context"
	"os"

	"github.com/go-faster/errors"
	"github.com/gotd/td/telegram/downloader"

	"github.com/handiism/telegram-downloader/internal/model"
)

// Fetch transfers one media file to dest, reporting written byte
// deltas through onProgress. Satisfies download.Fetcher.
//
// A failed transfer leaves no partial file behind: the destination is
// removed before the error is returned, so the next run retries it.
func (c *Client) Fetch(ctx context.Context, msg *model.MediaMessage, dest string, onProgress func(delta int64)) error {
	f, err := os.Create(dest)
	if err != nil {
		return errors.Wrap(err, "create file")
	}

	w := &progressWriterAt{file: f, onProgress: onProgress}
	_, err = downloader.NewDownloader().
		WithPartSize(c.partSize).
		Download(c.api, msg.Location).
		WithThreads(transferThreads(msg.Size, c.maxThreads)).
		Parallel(ctx, w)

	if cerr := f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dest)
		return errors.Wrap(err, "download")
	}
	return nil
}

// progressWriterAt counts bytes as the parallel downloader writes them.
type progressWriterAt struct {
	file       *os.File
	onProgress func(delta int64)
}

func (w *progressWriterAt) WriteAt(p []byte, off int64) (int, error) {
	n, err := w.file.WriteAt(p, off)
	if n > 0 && w.onProgress != nil {
		w.onProgress(int64(n))
	}
	return n, err
}

// transferThreads picks the per-file parallelism: one thread per
// started 10 MiB, capped at max. Small files don't benefit from
// parallel part fetches.
func transferThreads(size int64, max int) int {
	threads := int(size/(10<<20)) + 1
	if threads > max {
		threads = max
	}
	if threads < 1 {
		threads = 1
	}
	return threads
}
