package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/rusq/wipeslack/internal/slackapi"
)

var (
	italic    = color.New(color.Italic)
	param     = color.New(color.Italic, color.FgBlue, color.BgHiWhite)
	warn      = color.New(color.FgHiRed)
	underline = color.New(color.Underline)

	line = strings.Repeat("-=", 40)
)

// AskCredentials prints the instructions and asks the user for the missing
// tokens.  Tokens present in have are kept.
func AskCredentials(ctx context.Context, w io.Writer, p Prompter, have slackapi.Creds) (slackapi.Creds, error) {
	if have.IsComplete() {
		return have, nil
	}
	instructions(w)
	var err error
	if have.BotToken == "" {
		have.BotToken, err = p.Ask(ctx, Question{
			Name:     qBotToken,
			Kind:     KindSecret,
			Message:  "Bot User OAuth Token (xoxb-...)",
			Validate: required,
		})
		if err != nil {
			return slackapi.Creds{}, err
		}
	}
	if have.UserToken == "" {
		have.UserToken, err = p.Ask(ctx, Question{
			Name:     qUserToken,
			Kind:     KindSecret,
			Message:  "User OAuth Token (xoxp-...)",
			Validate: required,
		})
		if err != nil {
			return slackapi.Creds{}, err
		}
	}
	return have, nil
}

func instructions(w io.Writer) {
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "To get the tokens, follow the instructions:\n\n")
	fmt.Fprintf(w, "\t1.  Create a Slack App in your workspace:\n")
	fmt.Fprintf(w, "\t\t%s\n", italic.Sprint("https://api.slack.com/apps"))
	fmt.Fprintf(w, "\t2.  Add the %s scopes: %s, %s;\n"+
		"\t3.  Add the %s scope: %s;\n"+
		"\t4.  Install the App to the workspace and invite the bot to the channel.\n\n",
		underline.Sprint("Bot Token"), underline.Sprint("channels:read"), underline.Sprint("channels:history"),
		underline.Sprint("User Token"), underline.Sprint("chat:write"))
	fmt.Fprintf(w, "You will see the '%s' and '%s' values on the\n"+
		"\"OAuth & Permissions\" page.  This application will encrypt and save the\n"+
		"tokens on your device.  You can delete them any time starting with -reset flag.\n\n",
		param.Sprint(" Bot User OAuth Token "), param.Sprint(" User OAuth Token "))
	warn.Fprintf(w, "VERY IMPORTANT: The user token can delete your messages, keep it secret, never\n"+
		"share it with anyone, never publish it online.\n")
	fmt.Fprintln(w, line)
	fmt.Fprintln(w)
}
