package tui

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/rusq/wipeslack/internal/waipu"
)

type machine struct {
	app *App
	fsm *fsm.FSM
}

const (
	// events
	evEntered     = "entered"
	evFound       = "found"
	evMissing     = "missing"
	evFetched     = "fetched"
	evNothingToDo = "nothing_to_do"
	evCustomRate  = "custom_rate"
	evDefaultRate = "default_rate"
	evRateSet     = "rate_set"
	evConfirmed   = "confirmed"
	evDeleted     = "deleted"
	evCancel      = "cancel"

	// states
	stAwaitChannel    = "awaiting_channel"
	stResolving       = "resolving"
	stNotFound        = "not_found"
	stCollecting      = "collecting"
	stNoMessages      = "no_messages"
	stAwaitRateChoice = "awaiting_rate_choice"
	stAwaitRateValues = "awaiting_rate_values"
	stAwaitConfirm    = "awaiting_confirmation"
	stDeleting        = "deleting"
	stDone            = "done"
	stCancelled       = "cancelled"

	// metadata
	metaChannel   = "channel"
	metaChannelID = "channel_id"
	metaMessages  = "messages"
	metaRateLimit = "rate_limit"
	metaResult    = "result"
)

// awaiting are the states that wait for the user input, and can be
// cancelled.
var awaiting = []string{stAwaitChannel, stAwaitRateChoice, stAwaitRateValues, stAwaitConfirm}

func initFSM(app *App) *fsm.FSM {
	m := machine{app: app}
	sm := fsm.NewFSM(
		stAwaitChannel,
		fsm.Events{
			{Name: evEntered, Src: []string{stAwaitChannel}, Dst: stResolving},
			{Name: evFound, Src: []string{stResolving}, Dst: stCollecting},
			{Name: evMissing, Src: []string{stResolving}, Dst: stNotFound},
			{Name: evFetched, Src: []string{stCollecting}, Dst: stAwaitRateChoice},
			{Name: evNothingToDo, Src: []string{stCollecting}, Dst: stNoMessages},
			{Name: evCustomRate, Src: []string{stAwaitRateChoice}, Dst: stAwaitRateValues},
			{Name: evDefaultRate, Src: []string{stAwaitRateChoice}, Dst: stAwaitConfirm},
			{Name: evRateSet, Src: []string{stAwaitRateValues}, Dst: stAwaitConfirm},
			{Name: evConfirmed, Src: []string{stAwaitConfirm}, Dst: stDeleting},
			{Name: evDeleted, Src: []string{stDeleting}, Dst: stDone},
			// cancel
			{Name: evCancel, Src: awaiting, Dst: stCancelled},
		},
		fsm.Callbacks{
			m.enter("state"): func(_ context.Context, e *fsm.Event) {
				m.app.log.Debugf("*** transition: %q -> %q\n", e.Src, e.Dst)
			},
			// states
			m.enter(stNotFound):   m.enterNotFound,
			m.enter(stNoMessages): m.enterNoMessages,
			m.enter(stDone):       m.enterDone,
			// events
			m.after(evCancel): m.afterCancelled,
		},
	)
	m.fsm = sm

	return m.fsm
}

func (*machine) enter(state string) string {
	return "enter_" + state
}

func (*machine) after(event string) string {
	return "after_" + event
}

//
// States
//

func (m *machine) enterNotFound(context.Context, *fsm.Event) {
	m.app.problemf("Unable to find #%s", m.channel())
}

func (m *machine) enterNoMessages(context.Context, *fsm.Event) {
	m.app.problemf("There are 0 messages in #%s to delete", m.channel())
}

func (m *machine) enterDone(context.Context, *fsm.Event) {
	res, _ := metadata[waipu.Result](m.fsm, metaResult)
	m.app.printf("\n\n\n")
	if len(res.Failed) > 0 {
		m.app.okf("Complete: %d deleted, %d failed", res.Deleted, len(res.Failed))
		return
	}
	m.app.okf("Complete: %d deleted", res.Deleted)
}

//
// Events
//

func (m *machine) afterCancelled(context.Context, *fsm.Event) {
	m.cleanUp()
	m.app.logf("Operation cancelled")
}

func (m *machine) channel() string {
	name, _ := metadata[string](m.fsm, metaChannel)
	return name
}

func (m *machine) cleanUp() {
	m.fsm.SetMetadata(metaMessages, nil)
	m.fsm.SetMetadata(metaRateLimit, nil)
}

func metadata[T any](fsm *fsm.FSM, key string) (T, error) {
	var ret T
	val, ok := fsm.Metadata(key)
	if !ok || val == nil {
		return ret, fmt.Errorf("value of type %T not present in metadata", ret)
	}
	ret, ok = val.(T)
	if !ok {
		return ret, fmt.Errorf("invalid type (metadata: %T, want %T)", val, ret)
	}
	return ret, nil
}
