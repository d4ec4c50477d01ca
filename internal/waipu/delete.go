package waipu

import (
	"context"
	"errors"
	"runtime/trace"
	"time"
)

// Rate limit bounds and defaults for the interactive input.
const (
	DefBatchSize = 15
	MinBatchSize = 3
	MaxBatchSize = 100

	DefPause = 10 * time.Second
	MinPause = 2 * time.Second
	MaxPause = 60 * time.Second
)

var ErrInvalidRateLimit = errors.New("batch size and pause must be set together and be positive")

// RateLimit makes the Deleter pause for Pause after every BatchSize
// deletions.  Zero value means no pauses.
type RateLimit struct {
	BatchSize int
	Pause     time.Duration
}

// Enabled returns true if the rate limit is set.
func (rl RateLimit) Enabled() bool {
	return rl.BatchSize > 0 && rl.Pause > 0
}

// Validate checks that both fields are set, or none of them.
func (rl RateLimit) Validate() error {
	if rl == (RateLimit{}) || rl.Enabled() {
		return nil
	}
	return ErrInvalidRateLimit
}

// Progress receives the deletion progress.
type Progress interface {
	Start(total int)
	Increment()
	Finish()
}

type nopProgress struct{}

func (nopProgress) Start(int)  {}
func (nopProgress) Increment() {}
func (nopProgress) Finish()    {}

// Failure is the message that could not be deleted.
type Failure struct {
	TS  string
	Err error
}

// Result is the outcome of the deletion.
type Result struct {
	Deleted int
	Failed  []Failure
}

// Deleter deletes messages one by one.
type Deleter struct {
	cl       MessageDeleter
	limit    RateLimit
	progress Progress

	onPause func(n int, d time.Duration)
	onError func(ts string, err error)
	sleep   func(ctx context.Context, d time.Duration) error
}

type DeleterOption func(*Deleter)

// WithRateLimit sets the rate limit.  Invalid rate limit is ignored.
func WithRateLimit(rl RateLimit) DeleterOption {
	return func(d *Deleter) {
		if rl.Validate() != nil {
			return
		}
		d.limit = rl
	}
}

func WithProgress(p Progress) DeleterOption {
	return func(d *Deleter) {
		if p == nil {
			return
		}
		d.progress = p
	}
}

// WithOnPause sets the function that is called before each pause, n is the
// batch size and d is the pause duration.
func WithOnPause(fn func(n int, d time.Duration)) DeleterOption {
	return func(d *Deleter) {
		if fn == nil {
			return
		}
		d.onPause = fn
	}
}

// WithOnError sets the function that is called for every message that failed
// to delete.
func WithOnError(fn func(ts string, err error)) DeleterOption {
	return func(d *Deleter) {
		if fn == nil {
			return
		}
		d.onError = fn
	}
}

// WithSleepFunc replaces the function that waits for the pause to end.
func WithSleepFunc(fn func(ctx context.Context, d time.Duration) error) DeleterOption {
	return func(d *Deleter) {
		if fn == nil {
			return
		}
		d.sleep = fn
	}
}

func NewDeleter(cl MessageDeleter, opts ...DeleterOption) *Deleter {
	d := &Deleter{
		cl:       cl,
		progress: nopProgress{},
		onPause:  func(int, time.Duration) {},
		onError:  func(string, error) {},
		sleep:    sleep,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Delete deletes messages with timestamps ts from the channel, in order,
// one at a time.  Failure to delete a message does not stop the deletion, all
// failures are returned in the Result.  If the rate limit is set, Delete
// pauses after every batch, counting failed attempts as well.
//
// The error is returned only if the context is cancelled.
func (d *Deleter) Delete(ctx context.Context, channelID string, ts []string) (Result, error) {
	ctx, task := trace.NewTask(ctx, "Delete")
	defer task.End()

	var res Result
	d.progress.Start(len(ts))
	defer d.progress.Finish()

	for i, id := range ts {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := d.cl.DeleteMessage(ctx, channelID, id); err != nil {
			res.Failed = append(res.Failed, Failure{TS: id, Err: err})
			d.onError(id, err)
		} else {
			res.Deleted++
			d.progress.Increment()
		}
		if d.limit.Enabled() && (i+1)%d.limit.BatchSize == 0 {
			trace.Logf(ctx, "logic", "pause after %d", i+1)
			d.onPause(d.limit.BatchSize, d.limit.Pause)
			if err := d.sleep(ctx, d.limit.Pause); err != nil {
				return res, err
			}
		}
	}
	return res, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
