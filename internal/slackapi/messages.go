package slackapi

import (
	"context"
	"runtime/trace"
)

// DeleteMessage deletes the message with the timestamp ts from the channel,
// using the user identity.
func (c *Client) DeleteMessage(ctx context.Context, channelID string, ts string) error {
	if _, _, err := c.user.DeleteMessageContext(ctx, channelID, ts); err != nil {
		trace.Logf(ctx, "api", "chat.delete %s error: %s", ts, err)
		return err
	}
	return nil
}
