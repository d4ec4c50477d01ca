package waipu

import (
	"context"
	"errors"

	"github.com/rusq/wipeslack/internal/slackapi"
)

var errTest = errors.New("test error")

// fakeSlack is the in-memory Slacker.  All calls are recorded in events.
type fakeSlack struct {
	channels []slackapi.Channel
	listErr  error

	// pages is keyed by cursor.
	pages      map[string]slackapi.HistoryPage
	historyErr map[string]error

	deleteErrs map[string]error

	listCalls    int
	historyCalls []string
	events       *[]string
}

func (f *fakeSlack) GetChannels(ctx context.Context) ([]slackapi.Channel, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.channels, nil
}

func (f *fakeSlack) GetHistoryPage(ctx context.Context, channelID string, cursor string) (slackapi.HistoryPage, error) {
	f.historyCalls = append(f.historyCalls, cursor)
	if err, ok := f.historyErr[cursor]; ok {
		return slackapi.HistoryPage{}, err
	}
	return f.pages[cursor], nil
}

func (f *fakeSlack) DeleteMessage(ctx context.Context, channelID string, ts string) error {
	if f.events != nil {
		*f.events = append(*f.events, "delete:"+ts)
	}
	return f.deleteErrs[ts]
}

// countingProgress counts calls.
type countingProgress struct {
	total    int
	value    int
	started  int
	finished int
}

func (p *countingProgress) Start(total int) { p.total = total; p.started++ }
func (p *countingProgress) Increment()      { p.value++ }
func (p *countingProgress) Finish()         { p.finished++ }
