// Command testui emulates the wipe in a fake workspace for making screenshots.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rusq/dlog"

	"github.com/rusq/wipeslack/internal/slackapi"
	"github.com/rusq/wipeslack/internal/tui"
)

const (
	fakeHistoryDelay = 200 * time.Millisecond
	fakeDeleteDelay  = 20 * time.Millisecond
	fakePageSize     = 100
	maxFakeMessages  = 1000
)

func main() {
	fs := FakeSlack{channels: generateChannels(fakechannels), pages: map[string][][]string{}}
	app := tui.New(fs)

	if err := app.Run(context.Background()); err != nil {
		dlog.Fatal(err)
	}
}

var fakechannels = []string{
	"general",
	"random",
	"get-to-the-chopper",
	"invest-with-us-quickly",
	"nft-pay-get-jpg",
	"biohacking",
	"crypto-mining-y-u-no-mine",
	"dumbass-breaking-news",
	"slackdump",
}

func generateChannels(names []string) []slackapi.Channel {
	var ret = make([]slackapi.Channel, len(names))
	for i := range names {
		ret[i] = slackapi.Channel{
			ID:   fmt.Sprintf("C%08X", rand.Int31()),
			Name: names[i],
		}
	}
	return ret
}

// generatePages generates random number of message timestamps, split into
// pages.
func generatePages() [][]string {
	var (
		n     = rand.Intn(maxFakeMessages)
		now   = time.Now().Unix()
		pages [][]string
		page  []string
	)
	for i := 0; i < n; i++ {
		page = append(page, fmt.Sprintf("%d.%06d", now-int64(i), rand.Intn(1000000)))
		if len(page) == fakePageSize {
			pages = append(pages, page)
			page = nil
		}
	}
	if len(page) > 0 {
		pages = append(pages, page)
	}
	return pages
}

type FakeSlack struct {
	channels []slackapi.Channel
	pages    map[string][][]string
}

func (fs FakeSlack) GetChannels(ctx context.Context) ([]slackapi.Channel, error) {
	return fs.channels, nil
}

func (fs FakeSlack) GetHistoryPage(ctx context.Context, channelID string, cursor string) (slackapi.HistoryPage, error) {
	time.Sleep(fakeHistoryDelay)
	pages, ok := fs.pages[channelID]
	if !ok {
		pages = generatePages()
		fs.pages[channelID] = pages
	}
	var idx int
	if cursor != "" {
		if _, err := fmt.Sscanf(cursor, "page-%d", &idx); err != nil {
			return slackapi.HistoryPage{}, errors.New("invalid_cursor")
		}
	}
	if idx >= len(pages) {
		return slackapi.HistoryPage{}, nil
	}
	page := slackapi.HistoryPage{Messages: pages[idx], HasMore: idx < len(pages)-1}
	if page.HasMore {
		page.NextCursor = fmt.Sprintf("page-%d", idx+1)
	}
	return page, nil
}

func (FakeSlack) DeleteMessage(ctx context.Context, channelID string, ts string) error {
	time.Sleep(fakeDeleteDelay)
	if rand.Intn(50) == 0 {
		return errors.New("ratelimited")
	}
	return nil
}
