package telegram

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"go.uber.org/zap"
)

const (
	defaultPartSize   = 512 * 1024
	defaultMaxThreads = 4
)

// Options configures a Client.
type Options struct {
	// SessionFile is where the MTProto session is persisted.
	SessionFile string

	// PartSize is the transfer chunk size. Defaults to 512 KiB.
	PartSize int

	// MaxThreads caps per-file transfer parallelism. Defaults to 4.
	MaxThreads int

	// Logger is optional; gotd's own logging goes to a named child.
	Logger *zap.Logger
}

// Client is the session-backed Telegram client used for listing
// channels, iterating messages and fetching media.
type Client struct {
	client     *telegram.Client
	api        *tg.Client
	log        *zap.Logger
	partSize   int
	maxThreads int
}

// New creates a Client from API credentials. No connection is made
// until Run or RunAuthorized.
func New(apiID int, apiHash string, opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.PartSize <= 0 {
		opts.PartSize = defaultPartSize
	}
	if opts.MaxThreads <= 0 {
		opts.MaxThreads = defaultMaxThreads
	}

	client := telegram.NewClient(apiID, apiHash, telegram.Options{
		SessionStorage: &session.FileStorage{Path: opts.SessionFile},
		Logger:         log.Named("mtproto"),
	})

	return &Client{
		client:     client,
		api:        client.API(),
		log:        log,
		partSize:   opts.PartSize,
		maxThreads: opts.MaxThreads,
	}
}

// Run connects, authenticates interactively if the stored session is
// not authorized (phone, login code and optional 2FA password are read
// from the terminal), then calls f. The connection lives until f
// returns.
func (c *Client) Run(ctx context.Context, f func(ctx context.Context) error) error {
	return c.client.Run(ctx, func(ctx context.Context) error {
		flow := auth.NewFlow(newTerminalAuth(), auth.SendCodeOptions{})
		if err := c.client.Auth().IfNecessary(ctx, flow); err != nil {
			return errors.Wrap(err, "authenticate")
		}
		return f(ctx)
	})
}

// RunAuthorized is Run for front ends that cannot prompt on the
// terminal: it fails instead of starting a login flow when the session
// is not yet authorized.
func (c *Client) RunAuthorized(ctx context.Context, f func(ctx context.Context) error) error {
	return c.client.Run(ctx, func(ctx context.Context) error {
		status, err := c.client.Auth().Status(ctx)
		if err != nil {
			return errors.Wrap(err, "auth status")
		}
		if !status.Authorized {
			return errors.New("session is not authorized, log in with telegram-dl first")
		}
		return f(ctx)
	})
}
