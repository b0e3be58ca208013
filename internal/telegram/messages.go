package telegram

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/gotd/td/tg"
	"go.uber.org/zap"

	"github.com/handiism/telegram-downloader/internal/model"
)

const messagePageSize = 100

// MediaMessages iterates up to limit recent messages of the channel and
// returns those whose media matches the filter, newest first.
//
// The server does the heavy lifting: photos and videos use the native
// search filters, PDFs and ZIPs use the document filter narrowed by
// MIME type locally, and CategoryAll walks the plain history keeping
// any message with downloadable media. A failure here is fatal to the
// run.
func (c *Client) MediaMessages(ctx context.Context, channel model.Channel, filter model.MediaCategory, limit int) ([]*model.MediaMessage, error) {
	peer := channel.InputPeer()

	var (
		out      []*model.MediaMessage
		offsetID int
		scanned  int
	)

	for scanned < limit {
		resp, err := c.api.MessagesSearch(ctx, &tg.MessagesSearchRequest{
			Peer:     peer,
			Q:        "",
			Filter:   searchFilter(filter),
			OffsetID: offsetID,
			Limit:    messagePageSize,
		})
		if err != nil {
			return nil, errors.Wrap(err, "search messages")
		}

		page := messagesOf(resp)
		if len(page) == 0 {
			break
		}

		for _, raw := range page {
			offsetID = raw.GetID()
			scanned++

			msg, ok := raw.(*tg.Message)
			if !ok {
				continue
			}
			if filter != model.CategoryAll && !filter.Matches(Classify(msg)) {
				continue
			}
			mm, ok := mediaMessage(msg)
			if !ok {
				continue
			}
			out = append(out, mm)

			if scanned >= limit {
				break
			}
		}
	}

	c.log.Debug("collected media messages",
		zap.Int64("channel", channel.ID),
		zap.String("filter", filter.String()),
		zap.Int("matched", len(out)),
		zap.Int("scanned", scanned))
	return out, nil
}

// searchFilter maps a category to the server-side history filter.
func searchFilter(filter model.MediaCategory) tg.MessagesFilterClass {
	switch filter {
	case model.CategoryImage:
		return &tg.InputMessagesFilterPhotos{}
	case model.CategoryVideo:
		return &tg.InputMessagesFilterVideo{}
	case model.CategoryPDF, model.CategoryZip:
		// Narrowed by MIME type during classification.
		return &tg.InputMessagesFilterDocument{}
	default:
		return &tg.InputMessagesFilterEmpty{}
	}
}

func messagesOf(resp tg.MessagesMessagesClass) []tg.MessageClass {
	switch m := resp.(type) {
	case *tg.MessagesMessages:
		return m.Messages
	case *tg.MessagesMessagesSlice:
		return m.Messages
	case *tg.MessagesChannelMessages:
		return m.Messages
	default:
		return nil
	}
}
