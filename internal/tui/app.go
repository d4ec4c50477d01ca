// Package tui implements the interactive wipe flow.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/looplab/fsm"
	"github.com/rusq/dlog"

	"github.com/rusq/wipeslack/internal/waipu"
)

var (
	tagOK      = color.New(color.BgGreen, color.FgBlack).Sprint(" OK ")
	tagProblem = color.New(color.BgRed, color.FgWhite).Sprint(" PROBLEM ")
	tagPause   = color.New(color.BgBlue, color.FgWhite).Sprint(" PAUSE ")
)

// App walks the user through the wipe, from the channel name to the
// deletion.
type App struct {
	sl     waipu.Slacker
	prompt Prompter
	out    io.Writer
	debug  bool
	log    *dlog.Logger
	fsm    *fsm.FSM

	newProgress func(w io.Writer) waipu.Progress
	delOpts     []waipu.DeleterOption
}

type Option func(*App)

// WithPrompter sets the Prompter, default is Terminal.
func WithPrompter(p Prompter) Option {
	return func(app *App) {
		if p == nil {
			return
		}
		app.prompt = p
	}
}

// WithOutput sets the output writer, default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(app *App) {
		if w == nil {
			return
		}
		app.out = w
	}
}

func WithDebug(enable bool) Option {
	return func(app *App) {
		app.debug = enable
	}
}

// WithProgress sets the function that creates the deletion progress
// reporter, default is NewBar.
func WithProgress(fn func(w io.Writer) waipu.Progress) Option {
	return func(app *App) {
		if fn == nil {
			return
		}
		app.newProgress = fn
	}
}

// WithDeleterOptions adds options to the Deleter.
func WithDeleterOptions(opts ...waipu.DeleterOption) Option {
	return func(app *App) {
		app.delOpts = append(app.delOpts, opts...)
	}
}

func New(sl waipu.Slacker, opts ...Option) *App {
	app := &App{
		sl:     sl,
		prompt: Terminal{},
		out:    os.Stdout,
		newProgress: func(w io.Writer) waipu.Progress {
			return NewBar(w)
		},
	}
	for _, opt := range opts {
		opt(app)
	}

	app.log = dlog.New(app.out, "", dlog.Flags(), app.debug)

	// init finite state machine
	app.fsm = initFSM(app)

	return app
}

// Run runs the flow until it reaches one of the final states.  Cancellation
// by the user is not an error.  Run returns an error if the messages could
// not be collected.
func (app *App) Run(ctx context.Context) error {
	for {
		step := app.step(app.fsm.Current())
		if step == nil {
			return nil
		}
		ev, err := step(ctx)
		if err != nil {
			if !errors.Is(err, ErrCancelled) {
				return err
			}
			ev = evCancel
		}
		if err := app.fsm.Event(ctx, ev); err != nil {
			return err
		}
	}
}

// stepFunc does the work of the state and returns the event.
type stepFunc func(ctx context.Context) (string, error)

// step returns the stepFunc for the state, or nil, if the state is final.
func (app *App) step(state string) stepFunc {
	switch state {
	case stAwaitChannel:
		return app.askChannel
	case stResolving:
		return app.resolve
	case stCollecting:
		return app.collect
	case stAwaitRateChoice:
		return app.askRateChoice
	case stAwaitRateValues:
		return app.askRateValues
	case stAwaitConfirm:
		return app.confirm
	case stDeleting:
		return app.delete
	default:
		return nil
	}
}

// State returns the current state.
func (app *App) State() string {
	return app.fsm.Current()
}

func (app *App) logf(format string, a ...any) {
	app.log.Printf(format, a...)
}

func (app *App) error(err error) {
	app.log.Printf("ERROR: %s", err)
}

func (app *App) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(app.out, format, a...)
}

func (app *App) okf(format string, a ...any) {
	app.printf("%s %s\n", tagOK, fmt.Sprintf(format, a...))
}

func (app *App) problemf(format string, a ...any) {
	app.printf("%s %s\n", tagProblem, fmt.Sprintf(format, a...))
}
