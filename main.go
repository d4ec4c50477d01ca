package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/rusq/dlog"
	"github.com/rusq/osenv/v2"
	"github.com/rusq/tracer"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/rusq/wipeslack/internal/slackapi"
	"github.com/rusq/wipeslack/internal/tui"
	"github.com/rusq/wipeslack/internal/waipu"
)

const (
	cacheDirName  = "wipeslack"
	credsFileName = "slack.dat"
)

const AppName = "Wipe Slack Channel"

var (
	version   = "dev"
	builtOn   = "just now"
	gitCommit = ""
	gitRef    = ""

	versionSig = fmt.Sprintf("%s %s (built %s)", AppName, version, builtOn)
)

var _ = godotenv.Load() // load environment variables from .env, if present

type Params struct {
	BotToken  string
	UserToken string
	APIURL    string
	Types     string

	Channel   string
	BatchSize int
	PauseMs   int
	Yes       bool

	Reset bool
	List  bool

	Version bool
	Verbose bool
	Trace   string

	cacheDir string
}

func main() {
	p, err := parseCmdLine()
	if err != nil {
		dlog.Fatal(err)
	}
	if p.Version {
		ver(os.Stdout)
		return
	}

	dlog.SetDebug(p.Verbose)

	if err := p.initCacheDir(cacheDirName); err != nil {
		dlog.Fatalf("failed to create cache directory: %s", err)
	}

	if err := run(context.Background(), p); err != nil {
		dlog.Fatal(err)
	}
}

func parseCmdLine() (Params, error) {
	var p Params
	{
		flag.StringVar(&p.BotToken, "bot-token", osenv.Secret("BOT_TOKEN", ""), "Slack bot `token` (xoxb-...), used to list channels and read history")
		flag.StringVar(&p.UserToken, "user-token", osenv.Secret("USER_TOKEN", ""), "Slack user `token` (xoxp-...), used to delete messages")
		flag.StringVar(&p.APIURL, "api-url", osenv.Value("SLACK_API_URL", ""), "Slack API base `URL` (optional)")
		flag.StringVar(&p.Types, "types", osenv.Value("CHANNEL_TYPES", strings.Join(slackapi.DefaultTypes, ",")), "comma separated conversation `types` to look the channel up in")

		flag.StringVar(&p.Channel, "channel", osenv.Value("CHANNEL", ""), "channel `name` to wipe, skips the channel prompt")
		flag.IntVar(&p.BatchSize, "batch", osenv.Value("BATCH_SIZE", 0), fmt.Sprintf("pause after every `N` deletions (%d-%d), skips the rate limit prompts", waipu.MinBatchSize, waipu.MaxBatchSize))
		flag.IntVar(&p.PauseMs, "pause", osenv.Value("PAUSE_MS", 0), fmt.Sprintf("pause duration in `milliseconds` (%d-%d)", waipu.MinPause.Milliseconds(), waipu.MaxPause.Milliseconds()))
		flag.BoolVar(&p.Yes, "y", false, "do not ask for confirmation, and use the default rate limit if -batch is not set")

		flag.BoolVar(&p.Reset, "reset", false, "delete saved credentials")
		flag.BoolVar(&p.List, "list", false, "list channels and their IDs")

		flag.BoolVar(&p.Version, "v", false, "print version and exit")
		flag.BoolVar(&p.Verbose, "verbose", osenv.Value("DEBUG", "") != "", "verbose output")
		flag.StringVar(&p.Trace, "trace", osenv.Value("TRACE_FILE", ""), "trace `filename`")

		flag.Parse()
	}
	if err := p.validate(); err != nil {
		return p, err
	}
	return p, nil
}

// validate checks the rate limit values given on the command line, so that
// the run fails before any API call.  Zero means not set.
func (p *Params) validate() error {
	if p.BatchSize < 0 || p.PauseMs < 0 {
		return errors.New("batch size and pause must not be negative")
	}
	if p.BatchSize != 0 && (p.BatchSize < waipu.MinBatchSize || waipu.MaxBatchSize < p.BatchSize) {
		return fmt.Errorf("batch size must be between %d and %d, got %d", waipu.MinBatchSize, waipu.MaxBatchSize, p.BatchSize)
	}
	minMs, maxMs := int(waipu.MinPause.Milliseconds()), int(waipu.MaxPause.Milliseconds())
	if p.PauseMs != 0 && (p.PauseMs < minMs || maxMs < p.PauseMs) {
		return fmt.Errorf("pause must be between %d and %d ms, got %d", minMs, maxMs, p.PauseMs)
	}
	return nil
}

// rateLimit returns the rate limit from the command line.  If only one of
// the values is set, the other one gets the default value.
func (p *Params) rateLimit() waipu.RateLimit {
	if p.BatchSize == 0 && p.PauseMs == 0 {
		return waipu.RateLimit{}
	}
	rl := waipu.RateLimit{
		BatchSize: p.BatchSize,
		Pause:     time.Duration(p.PauseMs) * time.Millisecond,
	}
	if rl.BatchSize == 0 {
		rl.BatchSize = waipu.DefBatchSize
	}
	if rl.Pause == 0 {
		rl.Pause = waipu.DefPause
	}
	return rl
}

func (p *Params) types() []string {
	var ret []string
	for _, t := range strings.Split(p.Types, ",") {
		if t = strings.TrimSpace(t); t != "" {
			ret = append(ret, t)
		}
	}
	return ret
}

func (p *Params) initCacheDir(appName string) error {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return err
	}
	cacheDir = filepath.Join(cacheDir, appName)
	if err := os.MkdirAll(cacheDir, 0700); err != nil {
		return err
	}
	p.cacheDir = cacheDir
	return nil
}

// credentials returns the tokens from the command line, the saved
// credentials file, or asks the user, in this order.  Tokens entered by the
// user are saved.
func (p *Params) credentials(ctx context.Context, interactive bool) (slackapi.Creds, error) {
	creds := slackapi.Creds{BotToken: p.BotToken, UserToken: p.UserToken}
	if creds.IsComplete() {
		return creds, nil
	}
	cs := slackapi.NewCredsStorage(filepath.Join(p.cacheDir, credsFileName))
	if cs.IsAvailable() {
		saved, err := cs.Load()
		if err != nil {
			dlog.Debugf("warning: error loading credentials file: %s", err)
		}
		if creds.BotToken == "" {
			creds.BotToken = saved.BotToken
		}
		if creds.UserToken == "" {
			creds.UserToken = saved.UserToken
		}
		if creds.IsComplete() {
			return creds, nil
		}
	}
	if !interactive {
		return creds, slackapi.ErrNoCredentials
	}
	creds, err := tui.AskCredentials(ctx, os.Stdout, tui.Terminal{}, creds)
	if err != nil {
		return creds, err
	}
	if err := cs.Save(creds); err != nil {
		// not a fatal error
		dlog.Debugf("failed to save credentials: %s", err)
	}
	return creds, nil
}

func run(ctx context.Context, p Params) error {
	if p.Trace != "" {
		tr := tracer.New(p.Trace)
		if err := tr.Start(); err != nil {
			return err
		}
		defer tr.End()
	}

	header(os.Stdout)

	if p.Reset {
		if err := slackapi.NewCredsStorage(filepath.Join(p.cacheDir, credsFileName)).Remove(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	creds, err := p.credentials(ctx, interactive)
	if err != nil {
		if errors.Is(err, tui.ErrCancelled) {
			return nil
		}
		return err
	}

	cl, err := slackapi.New(creds.BotToken, creds.UserToken,
		slackapi.WithAPIURL(p.APIURL),
		slackapi.WithConversationTypes(p.types()...),
		slackapi.WithDebug(p.Verbose),
	)
	if err != nil {
		return err
	}

	if p.List {
		done, finished := fakeProgress("Getting channels . . .", 0)
		chans, err := cl.GetChannels(ctx)
		close(done)
		<-finished
		if err != nil {
			return err
		}
		dlog.Debugf("got %d channels", len(chans))
		// served from the client cache.
		return waipu.List(ctx, os.Stdout, cl)
	}

	var fallback tui.Prompter
	if interactive {
		fallback = tui.Terminal{}
	}
	answers := tui.Answers{
		Channel:   p.Channel,
		RateLimit: p.rateLimit(),
		Yes:       p.Yes,
	}

	app := tui.New(cl,
		tui.WithPrompter(answers.Preset(fallback)),
		tui.WithDebug(p.Verbose),
	)
	if err := app.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			dlog.Println("interrupted")
			return nil
		}
		return err
	}
	return nil
}

// fakeProgress starts a fake spinner and returns a channel that must be closed
// once the operation completes. interval is interval between iterations. If not
// set, will default to 50ms.
func fakeProgress(title string, interval time.Duration) (chan<- struct{}, <-chan struct{}) {
	if interval == 0 {
		interval = 50 * time.Millisecond
	}
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		bar := progressbar.NewOptions(
			-1,
			progressbar.OptionSetDescription(title),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionSpinnerType(9),
		)
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-done:
				bar.Finish()
				fmt.Println()
				close(finished)
				return
			case <-t.C:
				bar.Add(1)
			}
		}
	}()
	return done, finished
}

func header(w io.Writer) {
	fmt.Fprintf(w,
		"%s\n%s\n%s\n", versionSig, strings.Repeat("-", len(versionSig)),
		color.New(color.Italic).Sprint("Bulk-delete messages from a Slack channel."),
	)
	fmt.Fprintln(w)
}

func ver(w io.Writer) {
	header(w)
	if gitCommit != "" {
		fmt.Fprintf(w, "commit: %s ref: %s\n", gitCommit, gitRef)
	}
}
