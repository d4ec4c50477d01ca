package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rusq/wipeslack/internal/waipu"
)

func (app *App) askRateChoice(ctx context.Context) (string, error) {
	custom, err := app.askBool(ctx, Question{
		Name:     qCustomRate,
		Kind:     KindToggle,
		Message:  "Do you want to use a custom rate limit (No to use Slack API defaults - can be slower)?",
		Default:  "true",
		Active:   "yes",
		Inactive: "no",
	})
	if err != nil {
		return "", err
	}
	if !custom {
		app.fsm.SetMetadata(metaRateLimit, waipu.RateLimit{})
		return evDefaultRate, nil
	}
	return evCustomRate, nil
}

func (app *App) askRateValues(ctx context.Context) (string, error) {
	batch, err := app.askInt(ctx, Question{
		Name:    qBatchSize,
		Kind:    KindNumber,
		Message: "Batch Size",
		Default: strconv.Itoa(waipu.DefBatchSize),
		Min:     waipu.MinBatchSize,
		Max:     waipu.MaxBatchSize,
	})
	if err != nil {
		return "", err
	}
	pauseMs, err := app.askInt(ctx, Question{
		Name:    qPauseMs,
		Kind:    KindNumber,
		Message: "Pause Duration (in milliseconds) e.g. 5 seconds = 5000",
		Default: strconv.FormatInt(waipu.DefPause.Milliseconds(), 10),
		Min:     int(waipu.MinPause.Milliseconds()),
		Max:     int(waipu.MaxPause.Milliseconds()),
	})
	if err != nil {
		return "", err
	}
	rl := waipu.RateLimit{BatchSize: batch, Pause: time.Duration(pauseMs) * time.Millisecond}
	if err := rl.Validate(); err != nil {
		return "", err
	}
	app.fsm.SetMetadata(metaRateLimit, rl)
	return evRateSet, nil
}

func (app *App) askInt(ctx context.Context, q Question) (int, error) {
	ans, err := app.prompt.Ask(ctx, q)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(ans))
}

func (app *App) askBool(ctx context.Context, q Question) (bool, error) {
	ans, err := app.prompt.Ask(ctx, q)
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(ans)
}
