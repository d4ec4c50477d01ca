package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/rusq/wipeslack/internal/waipu"
)

// question names
const (
	qChannel    = "channel"
	qCustomRate = "custom_rate_limit"
	qBatchSize  = "batch_size"
	qPauseMs    = "pause_ms"
	qProceed    = "proceed"
	qBotToken   = "bot_token"
	qUserToken  = "user_token"
)

func (app *App) askChannel(ctx context.Context) (string, error) {
	ans, err := app.prompt.Ask(ctx, Question{
		Name:     qChannel,
		Kind:     KindText,
		Message:  "Slack channel name?",
		Validate: required,
	})
	if err != nil {
		return "", err
	}
	name := waipu.ChannelName(ans)
	if name == "" {
		return "", ErrCancelled
	}
	app.fsm.SetMetadata(metaChannel, name)
	return evEntered, nil
}

// resolve finds the channel ID.  Any listing error is logged and the
// channel is considered missing.
func (app *App) resolve(ctx context.Context) (string, error) {
	name, err := metadata[string](app.fsm, metaChannel)
	if err != nil {
		return "", err
	}
	id, err := waipu.ResolveChannel(ctx, app.sl, name)
	if err != nil {
		if !errors.Is(err, waipu.ErrChannelNotFound) {
			app.error(err)
		}
		return evMissing, nil
	}
	app.fsm.SetMetadata(metaChannelID, id)
	app.okf("Found channel #%s with ID: %s, please wait...", name, id)
	return evFound, nil
}

func (app *App) collect(ctx context.Context) (string, error) {
	name, err := metadata[string](app.fsm, metaChannel)
	if err != nil {
		return "", err
	}
	id, err := metadata[string](app.fsm, metaChannelID)
	if err != nil {
		return "", err
	}

	spin := newSpinner(app.out, fmt.Sprintf("Scanning #%s", name))
	msgs, err := waipu.CollectMessages(ctx, app.sl, id, func(n int) {
		_ = spin.Add(n)
	})
	_ = spin.Finish()
	if err != nil {
		return "", fmt.Errorf("collect messages: %w", err)
	}
	app.log.Debugf("collected %d messages from %s", len(msgs), id)

	if len(msgs) == 0 {
		return evNothingToDo, nil
	}
	app.fsm.SetMetadata(metaMessages, msgs)
	app.okf("Found %d messages to delete", len(msgs))
	return evFetched, nil
}
