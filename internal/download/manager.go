package download

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	ioutils "github.com/handiism/telegram-downloader/internal/io"
	"github.com/handiism/telegram-downloader/internal/model"
)

// DefaultBatchSize is the window size used when none is configured.
const DefaultBatchSize = 5

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Fetcher performs the actual byte transfer for one media message.
//
// Implementations write the media to dest and report written byte
// deltas through onProgress (which may be nil). On failure no partial
// file may be left behind.
type Fetcher interface {
	Fetch(ctx context.Context, msg *model.MediaMessage, dest string, onProgress func(delta int64)) error
}

// Options configures a Manager.
type Options struct {
	// Root is the destination directory (the category sub-folder).
	// Created on Run if absent.
	Root string

	// BatchSize is the window size N: at most N transfers are in
	// flight, and a window must fully settle before the next starts.
	// Values below 1 fall back to DefaultBatchSize.
	BatchSize int

	// Fetcher performs transfers. Required.
	Fetcher Fetcher

	// History is the optional download log; recorded-as-finished
	// messages are skipped without a transfer.
	History *History

	// Logger is optional.
	Logger *zap.Logger
}

// Result is what a run produced: one terminal outcome per input item
// plus the aggregate tallies.
type Result struct {
	Summary  model.Summary
	Outcomes []model.DownloadOutcome
}

// Manager coordinates batched media downloads.
//
// The input sequence is partitioned into consecutive windows of at most
// BatchSize items. Items within a window run concurrently; the next
// window starts only after every item of the current one reached a
// terminal outcome. A skipped item occupies its window slot and
// completes immediately, mirroring where the existence check has always
// lived: inside the scheduled item.
type Manager struct {
	opts Options
	log  *zap.Logger

	totalBytes    int64
	receivedBytes int64
	totalItems    int32
	doneItems     int32

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewManager creates a new download Manager.
func NewManager(opts Options, onProgress func(ProgressEvent)) *Manager {
	if opts.BatchSize < 1 {
		opts.BatchSize = DefaultBatchSize
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		opts:       opts,
		log:        log,
		onProgress: onProgress,
	}
}

// Run processes msgs to completion and returns one outcome per item.
//
// An empty input returns immediately with a zero summary and no side
// effects. The only fatal errors are a destination root that cannot be
// created and cancellation between windows; a single item's failure is
// recorded in its outcome and never aborts the run.
func (m *Manager) Run(ctx context.Context, msgs []*model.MediaMessage) (*Result, error) {
	res := &Result{}
	if len(msgs) == 0 {
		return res, nil
	}

	if err := ioutils.EnsureDir(m.opts.Root); err != nil {
		return nil, errors.Wrap(err, "create destination")
	}

	atomic.StoreInt32(&m.totalItems, int32(len(msgs)))
	var total int64
	for _, msg := range msgs {
		total += msg.Size
		m.opts.History.Append(msg.ID, msg.FileName, "In Queue")
	}
	// GetProgress is polled from other goroutines while Run executes.
	atomic.StoreInt64(&m.totalBytes, total)

	res.Outcomes = make([]model.DownloadOutcome, len(msgs))

	batches := windows(msgs, m.opts.BatchSize)
	next := 0
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			m.trimPending(res, next)
			return res, errors.Wrap(err, "run")
		}

		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Batch %d/%d (%d items)", i+1, len(batches), len(batch)),
			Level:   LevelVerbose,
		})
		m.log.Debug("starting batch",
			zap.Int("batch", i+1),
			zap.Int("of", len(batches)),
			zap.Int("items", len(batch)))

		g, wctx := errgroup.WithContext(ctx)
		for j, msg := range batch {
			idx := next + j
			msg := msg
			g.Go(func() error {
				out := m.process(wctx, msg)
				res.Outcomes[idx] = out
				m.record(out)
				// Item failures are outcomes, not errors: siblings in
				// the window must keep running.
				return nil
			})
		}
		_ = g.Wait()
		next += len(batch)
	}

	for _, out := range res.Outcomes {
		switch out.Status {
		case model.OutcomeSkipped:
			res.Summary.Skipped++
		case model.OutcomeSucceeded:
			res.Summary.Succeeded++
		case model.OutcomeFailed:
			res.Summary.Failed++
		}
	}

	return res, nil
}

// GetProgress returns current download progress.
func (m *Manager) GetProgress() (received, total int64, done, totalItems int32) {
	return atomic.LoadInt64(&m.receivedBytes), atomic.LoadInt64(&m.totalBytes),
		atomic.LoadInt32(&m.doneItems), atomic.LoadInt32(&m.totalItems)
}

// process drives one item to its terminal outcome. Never returns an
// error: failures are folded into the outcome.
func (m *Manager) process(ctx context.Context, msg *model.MediaMessage) model.DownloadOutcome {
	dest := filepath.Join(m.opts.Root, msg.FileName)

	if m.opts.History.IsFinished(msg.ID) {
		return model.DownloadOutcome{Message: msg, Status: model.OutcomeSkipped, Path: dest}
	}
	if ioutils.FileExists(dest) {
		return model.DownloadOutcome{Message: msg, Status: model.OutcomeSkipped, Path: dest}
	}

	if err := ctx.Err(); err != nil {
		return model.DownloadOutcome{Message: msg, Status: model.OutcomeFailed, Err: err}
	}

	m.opts.History.Append(msg.ID, msg.FileName, "Downloading")

	err := m.opts.Fetcher.Fetch(ctx, msg, dest, func(delta int64) {
		atomic.AddInt64(&m.receivedBytes, delta)
	})
	if err != nil {
		return model.DownloadOutcome{Message: msg, Status: model.OutcomeFailed, Err: errors.Wrap(err, "fetch")}
	}

	return model.DownloadOutcome{Message: msg, Status: model.OutcomeSucceeded, Path: dest, Bytes: msg.Size}
}

// record logs the terminal outcome and emits its progress event.
func (m *Manager) record(out model.DownloadOutcome) {
	atomic.AddInt32(&m.doneItems, 1)

	name := out.Message.FileName
	switch out.Status {
	case model.OutcomeSkipped:
		m.opts.History.Append(out.Message.ID, name, "Skipped")
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing: %s", name), Level: LevelWarning})
	case model.OutcomeSucceeded:
		m.opts.History.Append(out.Message.ID, name, "Finished")
		m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded: %s", name), Level: LevelInfo})
	case model.OutcomeFailed:
		m.opts.History.Append(out.Message.ID, name, fmt.Sprintf("Error: %v", out.Err))
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading %s: %v", name, out.Err), Level: LevelError})
	}
}

// trimPending cuts never-scheduled items from the outcome slice when a
// run is aborted between windows.
func (m *Manager) trimPending(res *Result, done int) {
	res.Outcomes = res.Outcomes[:done]
	for _, out := range res.Outcomes {
		switch out.Status {
		case model.OutcomeSkipped:
			res.Summary.Skipped++
		case model.OutcomeSucceeded:
			res.Summary.Succeeded++
		case model.OutcomeFailed:
			res.Summary.Failed++
		}
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress == nil {
		return
	}
	// Outcomes of one window complete concurrently; serialize delivery.
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onProgress(event)
}

// windows partitions msgs into consecutive chunks of at most size items,
// preserving order within and across chunks.
func windows(msgs []*model.MediaMessage, size int) [][]*model.MediaMessage {
	var out [][]*model.MediaMessage
	for len(msgs) > size {
		out = append(out, msgs[:size])
		msgs = msgs[size:]
	}
	if len(msgs) > 0 {
		out = append(out, msgs)
	}
	return out
}
