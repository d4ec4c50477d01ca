package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/rusq/wipeslack/internal/waipu"
)

// confirm asks the user to confirm the deletion.  The negative answer
// cancels the operation.
func (app *App) confirm(ctx context.Context) (string, error) {
	proceed, err := app.askBool(ctx, Question{
		Name:    qProceed,
		Kind:    KindConfirm,
		Message: "Proceed with delete?",
		Default: "false",
	})
	if err != nil {
		return "", err
	}
	if !proceed {
		return "", ErrCancelled
	}
	return evConfirmed, nil
}

// delete deletes the messages.  It gets the channel ID, messages and the
// rate limit from the FSM Metadata.
func (app *App) delete(ctx context.Context) (string, error) {
	id, err := metadata[string](app.fsm, metaChannelID)
	if err != nil {
		return "", err
	}
	msgs, err := metadata[[]string](app.fsm, metaMessages)
	if err != nil {
		return "", err
	}
	// absent rate limit means no pauses.
	rl, _ := metadata[waipu.RateLimit](app.fsm, metaRateLimit)

	opts := append([]waipu.DeleterOption{
		waipu.WithRateLimit(rl),
		waipu.WithProgress(app.newProgress(app.out)),
		waipu.WithOnPause(app.paused),
		waipu.WithOnError(app.deleteFailed),
	}, app.delOpts...)

	res, err := waipu.NewDeleter(app.sl, opts...).Delete(ctx, id, msgs)
	app.fsm.SetMetadata(metaResult, res)
	if err != nil {
		app.printf("\n")
		app.problemf("Interrupted: %d deleted, %d failed, %d left",
			res.Deleted, len(res.Failed), len(msgs)-res.Deleted-len(res.Failed))
		return "", err
	}
	return evDeleted, nil
}

func (app *App) paused(n int, d time.Duration) {
	app.printf("\n %s Pausing for %s seconds after deleting %d messages...\n",
		tagPause, strconv.FormatFloat(d.Seconds(), 'f', -1, 64), n)
}

// deleteFailed logs the failure on a new line, the progress bar shares the
// output.
func (app *App) deleteFailed(ts string, err error) {
	app.printf("\n")
	app.logf("Error deleting message with ID %s: %s", ts, err)
}
