package telegram

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/gotd/td/tg"
	"go.uber.org/zap"

	"github.com/handiism/telegram-downloader/internal/model"
)

const dialogPageSize = 100

// ListChannels walks the account's dialog list and returns every
// joined channel (broadcast channels and supergroups alike), in dialog
// order. A failure here is fatal to the run.
func (c *Client) ListChannels(ctx context.Context) ([]model.Channel, error) {
	var (
		out        []model.Channel
		seen       = make(map[int64]struct{})
		offsetDate int
		offsetID   int
		offsetPeer tg.InputPeerClass = &tg.InputPeerEmpty{}
	)

	for {
		resp, err := c.api.MessagesGetDialogs(ctx, &tg.MessagesGetDialogsRequest{
			OffsetDate: offsetDate,
			OffsetID:   offsetID,
			OffsetPeer: offsetPeer,
			Limit:      dialogPageSize,
		})
		if err != nil {
			return nil, errors.Wrap(err, "get dialogs")
		}

		var (
			dialogs  []tg.DialogClass
			messages []tg.MessageClass
			chats    []tg.ChatClass
			users    []tg.UserClass
			lastPage bool
		)
		switch d := resp.(type) {
		case *tg.MessagesDialogs:
			dialogs, messages, chats, users = d.Dialogs, d.Messages, d.Chats, d.Users
			lastPage = true
		case *tg.MessagesDialogsSlice:
			dialogs, messages, chats, users = d.Dialogs, d.Messages, d.Chats, d.Users
			lastPage = len(d.Dialogs) < dialogPageSize
		default:
			return out, nil
		}

		for _, chat := range chats {
			ch, ok := chat.(*tg.Channel)
			if !ok || ch.Left {
				continue
			}
			hash, ok := ch.GetAccessHash()
			if !ok {
				continue
			}
			if _, dup := seen[ch.ID]; dup {
				continue
			}
			seen[ch.ID] = struct{}{}
			out = append(out, model.Channel{
				ID:         ch.ID,
				AccessHash: hash,
				Title:      ch.Title,
				Username:   ch.Username,
			})
		}

		if lastPage || len(dialogs) == 0 {
			break
		}

		date, id, peer, ok := nextDialogOffset(dialogs, messages, chats, users)
		if !ok {
			c.log.Debug("dialog pagination stopped, no usable offset")
			break
		}
		offsetDate, offsetID, offsetPeer = date, id, peer
	}

	c.log.Debug("listed channels", zap.Int("count", len(out)))
	return out, nil
}

// nextDialogOffset derives the offsets for the next dialogs page from
// the last plain dialog of the current one.
func nextDialogOffset(dialogs []tg.DialogClass, messages []tg.MessageClass, chats []tg.ChatClass, users []tg.UserClass) (int, int, tg.InputPeerClass, bool) {
	for i := len(dialogs) - 1; i >= 0; i-- {
		d, ok := dialogs[i].(*tg.Dialog)
		if !ok {
			continue
		}
		peer := inputPeerFor(d.Peer, chats, users)
		if peer == nil {
			continue
		}
		return topMessageDate(messages, d.Peer, d.TopMessage), d.TopMessage, peer, true
	}
	return 0, 0, nil, false
}

// topMessageDate finds the date of the dialog's top message, 0 if it is
// not part of the page.
func topMessageDate(messages []tg.MessageClass, peer tg.PeerClass, topMessage int) int {
	for _, raw := range messages {
		switch m := raw.(type) {
		case *tg.Message:
			if m.ID == topMessage && samePeer(m.PeerID, peer) {
				return m.Date
			}
		case *tg.MessageService:
			if m.ID == topMessage && samePeer(m.PeerID, peer) {
				return m.Date
			}
		}
	}
	return 0
}

func samePeer(a, b tg.PeerClass) bool {
	switch av := a.(type) {
	case *tg.PeerUser:
		bv, ok := b.(*tg.PeerUser)
		return ok && av.UserID == bv.UserID
	case *tg.PeerChat:
		bv, ok := b.(*tg.PeerChat)
		return ok && av.ChatID == bv.ChatID
	case *tg.PeerChannel:
		bv, ok := b.(*tg.PeerChannel)
		return ok && av.ChannelID == bv.ChannelID
	}
	return false
}

// inputPeerFor resolves a dialog peer into an addressable input peer
// using the entities of the current page. Nil when the entity (or its
// access hash) is missing.
func inputPeerFor(peer tg.PeerClass, chats []tg.ChatClass, users []tg.UserClass) tg.InputPeerClass {
	switch p := peer.(type) {
	case *tg.PeerChannel:
		for _, raw := range chats {
			ch, ok := raw.(*tg.Channel)
			if !ok || ch.ID != p.ChannelID {
				continue
			}
			if hash, ok := ch.GetAccessHash(); ok {
				return &tg.InputPeerChannel{ChannelID: ch.ID, AccessHash: hash}
			}
		}
	case *tg.PeerChat:
		return &tg.InputPeerChat{ChatID: p.ChatID}
	case *tg.PeerUser:
		for _, raw := range users {
			u, ok := raw.(*tg.User)
			if !ok || u.ID != p.UserID {
				continue
			}
			if hash, ok := u.GetAccessHash(); ok {
				return &tg.InputPeerUser{UserID: u.ID, AccessHash: hash}
			}
		}
	}
	return nil
}
