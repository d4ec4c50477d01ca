package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rusq/wipeslack/internal/waipu"
)

// ErrCancelled is returned by the Prompter if the user has cancelled the
// input or left it blank.
var ErrCancelled = errors.New("cancelled")

// Kind is the kind of the question.
type Kind int

const (
	KindText Kind = iota
	KindSecret
	KindNumber
	KindToggle
	KindConfirm
)

// Question is a single prompt.  Answers are always strings, KindNumber
// answers are integers and KindToggle and KindConfirm answers are "true" or
// "false".
type Question struct {
	// Name identifies the question.
	Name    string
	Kind    Kind
	Message string
	Default string
	// Min and Max bound the KindNumber answer, if Min < Max.
	Min, Max int
	// Active and Inactive are labels for the KindToggle.
	Active, Inactive string
	Validate         func(string) error
}

// Check validates the answer.
func (q Question) Check(ans string) error {
	switch q.Kind {
	case KindNumber:
		n, err := strconv.Atoi(strings.TrimSpace(ans))
		if err != nil {
			return errors.New("must be a number")
		}
		if q.Min < q.Max && (n < q.Min || q.Max < n) {
			return fmt.Errorf("must be between %d and %d", q.Min, q.Max)
		}
	case KindToggle, KindConfirm:
		if _, err := strconv.ParseBool(ans); err != nil {
			return errors.New("must be yes or no")
		}
	}
	if q.Validate != nil {
		return q.Validate(ans)
	}
	return nil
}

// Prompter asks the user a question.
type Prompter interface {
	// Ask returns the answer, or ErrCancelled, if the user has cancelled
	// the input.
	Ask(ctx context.Context, q Question) (string, error)
}

// required is the validation function for the mandatory text input.
func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required field")
	}
	return nil
}

// Preset is the Prompter with answers known in advance, keyed by the
// question name.  Questions without the answer are passed to the Fallback,
// or cancelled, if the Fallback is not set.
type Preset struct {
	Answers  map[string]string
	Fallback Prompter
}

func (p Preset) Ask(ctx context.Context, q Question) (string, error) {
	ans, ok := p.Answers[q.Name]
	if !ok {
		if p.Fallback != nil {
			return p.Fallback.Ask(ctx, q)
		}
		return "", ErrCancelled
	}
	if strings.TrimSpace(ans) == "" {
		return "", ErrCancelled
	}
	if err := q.Check(ans); err != nil {
		return "", fmt.Errorf("%s: %w", q.Name, err)
	}
	return ans, nil
}

// Answers are the answers to the wipe questions known in advance, i.e. from
// the command line.  Zero values are unknown.
type Answers struct {
	Channel   string
	RateLimit waipu.RateLimit
	// Yes answers the confirmation, and if the RateLimit is not set, declines
	// the custom rate limit.
	Yes bool
}

// Preset returns the Preset prompter with the answers.
func (a Answers) Preset(fallback Prompter) Preset {
	m := make(map[string]string)
	if a.Channel != "" {
		m[qChannel] = a.Channel
	}
	if a.RateLimit.Enabled() {
		m[qCustomRate] = "true"
		m[qBatchSize] = strconv.Itoa(a.RateLimit.BatchSize)
		m[qPauseMs] = strconv.FormatInt(a.RateLimit.Pause.Milliseconds(), 10)
	} else if a.Yes {
		m[qCustomRate] = "false"
	}
	if a.Yes {
		m[qProceed] = "true"
	}
	return Preset{Answers: m, Fallback: fallback}
}
