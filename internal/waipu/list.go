package waipu

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/rusq/wipeslack/internal/slackapi"
)

// List prints all channels, sorted by name, to w.
func List(ctx context.Context, w io.Writer, cl ChannelLister) error {
	chans, err := cl.GetChannels(ctx)
	if err != nil {
		return err
	}
	// the slice may be shared with the client cache.
	sorted := make([]slackapi.Channel, len(chans))
	copy(sorted, chans)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	for _, ch := range sorted {
		if _, err := fmt.Fprintf(w, "%15s - #%s\n", ch.ID, ch.Name); err != nil {
			return err
		}
	}
	return nil
}
