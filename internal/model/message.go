package model

import (
	"github.com/gotd/td/tg"
)

// Channel is one joined channel from the account's dialog list.
//
// ID and AccessHash together are what Telegram needs to address the
// channel in later requests; Title and Username are display-only.
type Channel struct {
	// ID is the bare channel identifier.
	ID int64

	// AccessHash authorizes this account to address the channel.
	AccessHash int64

	// Title is the channel display name.
	Title string

	// Username is the public @handle, empty for private channels.
	Username string
}

// InputPeer returns the peer reference used in API calls for this channel.
func (c Channel) InputPeer() tg.InputPeerClass {
	return &tg.InputPeerChannel{ChannelID: c.ID, AccessHash: c.AccessHash}
}

// MediaMessage is an immutable reference to one message whose media can
// be downloaded.
//
// It carries everything the download manager needs: the message ID,
// the classified category, a derived file name unique within the run,
// the expected size in bytes and the Telegram file location to fetch
// the bytes from. A MediaMessage is produced once during message
// iteration and discarded after its download attempt completes.
type MediaMessage struct {
	// ID is the message identifier within its channel.
	ID int

	// Category is the classified media kind.
	Category MediaCategory

	// FileName is the derived destination file name, already sanitized.
	// Prefixed with the message ID, so no two messages in a channel
	// collide.
	FileName string

	// Size is the declared media size in bytes, used for progress
	// reporting. Zero when the size is unknown.
	Size int64

	// Location addresses the media bytes on Telegram's servers.
	Location tg.InputFileLocationClass
}
