package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// Terminal asks questions on the terminal.
type Terminal struct{}

func (Terminal) Ask(ctx context.Context, q Question) (string, error) {
	var (
		field huh.Field
		text  = q.Default
		yes   bool
	)
	switch q.Kind {
	case KindToggle, KindConfirm:
		yes, _ = strconv.ParseBool(q.Default)
		c := huh.NewConfirm().Title(q.Message).Value(&yes)
		if q.Kind == KindToggle {
			c = c.Affirmative(orDefault(q.Active, "yes")).Negative(orDefault(q.Inactive, "no"))
		}
		field = c
	default:
		in := huh.NewInput().Title(q.Message).Value(&text).Validate(q.Check)
		if q.Kind == KindSecret {
			in = in.EchoMode(huh.EchoModePassword)
		}
		field = in
	}

	if err := huh.NewForm(huh.NewGroup(field)).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", err
	}

	switch q.Kind {
	case KindToggle, KindConfirm:
		return strconv.FormatBool(yes), nil
	default:
		return strings.TrimSpace(text), nil
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
