package waipu

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genTS(n int) []string {
	ret := make([]string, n)
	for i := range ret {
		ret[i] = fmt.Sprintf("%d.000", i+1)
	}
	return ret
}

// testDeleter returns the deleter that records deletions and pauses to
// events instead of sleeping.
func testDeleter(fs *fakeSlack, events *[]string, opts ...DeleterOption) *Deleter {
	fs.events = events
	d := NewDeleter(fs, opts...)
	d.sleep = func(_ context.Context, dur time.Duration) error {
		*events = append(*events, "pause:"+dur.String())
		return nil
	}
	return d
}

func countPauses(events []string) int {
	var n int
	for _, ev := range events {
		if len(ev) > 6 && ev[:6] == "pause:" {
			n++
		}
	}
	return n
}

func TestRateLimit_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rl      RateLimit
		enabled bool
		wantErr bool
	}{
		{"zero", RateLimit{}, false, false},
		{"both set", RateLimit{BatchSize: 3, Pause: time.Second}, true, false},
		{"batch only", RateLimit{BatchSize: 3}, false, true},
		{"pause only", RateLimit{Pause: time.Second}, false, true},
		{"negative", RateLimit{BatchSize: -1, Pause: time.Second}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.enabled, tt.rl.Enabled())
			if err := tt.rl.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeleter_Delete(t *testing.T) {
	t.Run("no rate limit", func(t *testing.T) {
		var events []string
		prog := &countingProgress{}
		d := testDeleter(&fakeSlack{}, &events, WithProgress(prog))

		res, err := d.Delete(context.Background(), "C123", genTS(5))
		require.NoError(t, err)
		assert.Equal(t, Result{Deleted: 5}, res)
		assert.Equal(t, []string{"delete:1.000", "delete:2.000", "delete:3.000", "delete:4.000", "delete:5.000"}, events)
		assert.Equal(t, &countingProgress{total: 5, value: 5, started: 1, finished: 1}, prog)
	})
	t.Run("pauses after every batch but not after the tail", func(t *testing.T) {
		var events []string
		var paused []int
		d := testDeleter(&fakeSlack{}, &events,
			WithRateLimit(RateLimit{BatchSize: 3, Pause: 2000 * time.Millisecond}),
			WithOnPause(func(n int, dur time.Duration) { paused = append(paused, n) }),
		)

		res, err := d.Delete(context.Background(), "C123", genTS(7))
		require.NoError(t, err)
		assert.Equal(t, 7, res.Deleted)
		assert.Equal(t, []string{
			"delete:1.000", "delete:2.000", "delete:3.000", "pause:2s",
			"delete:4.000", "delete:5.000", "delete:6.000", "pause:2s",
			"delete:7.000",
		}, events)
		assert.Equal(t, []int{3, 3}, paused)
	})
	t.Run("failures count towards the batch", func(t *testing.T) {
		var events []string
		var failed []string
		prog := &countingProgress{}
		fs := &fakeSlack{deleteErrs: map[string]error{"2.000": errTest, "3.000": errTest}}
		d := testDeleter(fs, &events,
			WithRateLimit(RateLimit{BatchSize: 2, Pause: time.Second}),
			WithProgress(prog),
			WithOnError(func(ts string, err error) { failed = append(failed, ts) }),
		)

		res, err := d.Delete(context.Background(), "C123", genTS(5))
		require.NoError(t, err)
		assert.Equal(t, 3, res.Deleted)
		assert.Equal(t, []Failure{{TS: "2.000", Err: errTest}, {TS: "3.000", Err: errTest}}, res.Failed)
		assert.Equal(t, []string{"2.000", "3.000"}, failed)
		assert.Equal(t, []string{
			"delete:1.000", "delete:2.000", "pause:1s",
			"delete:3.000", "delete:4.000", "pause:1s",
			"delete:5.000",
		}, events)
		assert.Equal(t, 3, prog.value)
	})
	t.Run("invalid rate limit is ignored", func(t *testing.T) {
		var events []string
		d := testDeleter(&fakeSlack{}, &events, WithRateLimit(RateLimit{BatchSize: 1}))
		_, err := d.Delete(context.Background(), "C123", genTS(3))
		require.NoError(t, err)
		assert.Equal(t, 0, countPauses(events))
	})
	t.Run("empty input", func(t *testing.T) {
		var events []string
		prog := &countingProgress{}
		d := testDeleter(&fakeSlack{}, &events, WithProgress(prog))
		res, err := d.Delete(context.Background(), "C123", nil)
		require.NoError(t, err)
		assert.Equal(t, Result{}, res)
		assert.Empty(t, events)
		assert.Equal(t, 1, prog.finished)
	})
	t.Run("cancelled context", func(t *testing.T) {
		var events []string
		ctx, cancel := context.WithCancel(context.Background())
		fs := &fakeSlack{}
		d := testDeleter(fs, &events)
		d.cl = cancelAfter{MessageDeleter: fs, n: 2, cancel: cancel}
		res, err := d.Delete(ctx, "C123", genTS(5))
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 2, res.Deleted)
	})
}

func TestDeleter_pauseCount(t *testing.T) {
	for _, l := range []int{0, 1, 2, 3, 4, 9, 10, 11, 100} {
		for _, b := range []int{1, 3, 5, 15} {
			t.Run(fmt.Sprintf("L=%d,B=%d", l, b), func(t *testing.T) {
				var events []string
				d := testDeleter(&fakeSlack{}, &events, WithRateLimit(RateLimit{BatchSize: b, Pause: time.Millisecond}))
				_, err := d.Delete(context.Background(), "C123", genTS(l))
				require.NoError(t, err)
				assert.Equal(t, l/b, countPauses(events))
			})
		}
	}
}

// cancelAfter cancels the context after n deletions.
type cancelAfter struct {
	MessageDeleter
	n      int
	cancel context.CancelFunc
}

func (c cancelAfter) DeleteMessage(ctx context.Context, channelID string, ts string) error {
	err := c.MessageDeleter.DeleteMessage(ctx, channelID, ts)
	if ts == fmt.Sprintf("%d.000", c.n) {
		c.cancel()
	}
	return err
}

func Test_sleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
	assert.NoError(t, sleep(context.Background(), time.Millisecond))
}
