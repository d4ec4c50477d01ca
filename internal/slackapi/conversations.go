package slackapi

import (
	"context"
	"runtime/trace"

	"github.com/slack-go/slack"
)

// GetChannels returns all unarchived conversations of the configured types
// that are visible to the bot, following every page of the listing.  The result is
// cached for defCacheEvict.
func (c *Client) GetChannels(ctx context.Context) ([]Channel, error) {
	ctx, task := trace.NewTask(ctx, "GetChannels")
	defer task.End()

	if cached, err := c.cache.Get(cacheChannels); err == nil {
		trace.Log(ctx, "cache", "hit")
		return cached.([]Channel), nil
	}
	trace.Log(ctx, "cache", "miss")

	var (
		ret    []Channel
		cursor string
	)
	for {
		chans, next, err := c.bot.GetConversationsContext(ctx, &slack.GetConversationsParameters{
			Cursor:          cursor,
			ExcludeArchived: true,
			Limit:           defListLimit,
			Types:           c.types,
		})
		if err != nil {
			trace.Logf(ctx, "api", "conversations.list error: %s", err)
			return nil, err
		}
		for _, ch := range chans {
			ret = append(ret, Channel{ID: ch.ID, Name: ch.Name})
		}
		if next == "" {
			break
		}
		cursor = next
	}
	trace.Logf(ctx, "logic", "channels: %d", len(ret))

	if err := c.cache.Set(cacheChannels, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// GetHistoryPage fetches a single page of the channel history, starting at
// cursor.  Empty cursor means the first page.
func (c *Client) GetHistoryPage(ctx context.Context, channelID string, cursor string) (HistoryPage, error) {
	resp, err := c.bot.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Cursor:    cursor,
		Limit:     defHistoryLimit,
	})
	if err != nil {
		trace.Logf(ctx, "api", "conversations.history error: %s", err)
		return HistoryPage{}, err
	}
	page := HistoryPage{
		Messages:   make([]string, 0, len(resp.Messages)),
		HasMore:    resp.HasMore,
		NextCursor: resp.ResponseMetaData.NextCursor,
	}
	for _, m := range resp.Messages {
		page.Messages = append(page.Messages, m.Timestamp)
	}
	return page, nil
}
