// Package waipu contains the routines that find a channel, collect its
// messages and wipe them.
package waipu

import (
	"context"

	"github.com/rusq/wipeslack/internal/slackapi"
)

// ChannelLister lists the channels visible to the bot.
type ChannelLister interface {
	GetChannels(ctx context.Context) ([]slackapi.Channel, error)
}

// HistoryFetcher fetches a single page of the channel history.
type HistoryFetcher interface {
	GetHistoryPage(ctx context.Context, channelID string, cursor string) (slackapi.HistoryPage, error)
}

// MessageDeleter deletes a single message.
type MessageDeleter interface {
	DeleteMessage(ctx context.Context, channelID string, ts string) error
}

// Slacker is everything that the wipe needs from Slack.
type Slacker interface {
	ChannelLister
	HistoryFetcher
	MessageDeleter
}
