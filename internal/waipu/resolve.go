package waipu

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrChannelNotFound = errors.New("channel not found")

// ChannelName cleans up the user input: surrounding spaces and the leading
// "#" are removed.
func ChannelName(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "#")
}

// ResolveChannel returns the ID of the first channel which name is exactly
// name.  It returns ErrChannelNotFound if there's no such channel, or the
// listing error, if the channels can't be listed.
func ResolveChannel(ctx context.Context, cl ChannelLister, name string) (string, error) {
	if name == "" {
		return "", ErrChannelNotFound
	}
	chans, err := cl.GetChannels(ctx)
	if err != nil {
		return "", fmt.Errorf("list channels: %w", err)
	}
	for _, ch := range chans {
		if ch.Name == name {
			return ch.ID, nil
		}
	}
	return "", ErrChannelNotFound
}
