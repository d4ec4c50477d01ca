package waipu

import (
	"context"
	"runtime/trace"
)

// CollectMessages returns the timestamps of all messages in the channel, in
// the order the history returns them.  It follows the pagination cursor until
// there are no more pages, or until an empty page is returned.  cb, if not
// nil, is called for every page with the number of messages on it.
//
// Any error aborts the collection, partial results are discarded.
func CollectMessages(ctx context.Context, cl HistoryFetcher, channelID string, cb func(n int)) ([]string, error) {
	ctx, task := trace.NewTask(ctx, "CollectMessages")
	defer task.End()

	var (
		ret    = make([]string, 0)
		cursor string
		pages  int
	)
	for {
		page, err := cl.GetHistoryPage(ctx, channelID, cursor)
		if err != nil {
			return nil, err
		}
		pages++
		if len(page.Messages) == 0 {
			break
		}
		ret = append(ret, page.Messages...)
		if cb != nil {
			cb(len(page.Messages))
		}
		if !page.HasMore || page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}
	trace.Logf(ctx, "logic", "pages: %d, messages: %d", pages, len(ret))
	return ret, nil
}
