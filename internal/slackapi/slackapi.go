// Package slackapi provides a thin wrapper around the slack-go client, holding
// both the bot and the user identities.
package slackapi

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/bluele/gcache"
	"github.com/mattn/go-colorable"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defListLimit    = 200
	defHistoryLimit = 100
	defCacheEvict   = 10 * time.Minute
	defCacheSz      = 4
)

// DefaultTypes are the conversation types listed when none are specified.
var DefaultTypes = []string{"public_channel"}

// ErrNoCredentials is returned by New if any of the tokens is missing.
var ErrNoCredentials = errors.New("both bot and user tokens are required")

// Client talks to Slack on behalf of two identities: the bot, which reads
// channels and history, and the user, who owns the messages and deletes them.
type Client struct {
	bot  *slack.Client
	user *slack.Client

	cache gcache.Cache
	types []string

	apiURL     string
	httpClient *http.Client
	logger     *log.Logger
	debug      bool
}

// Channel is a Slack conversation, reduced to what is needed to find it.
type Channel struct {
	ID   string
	Name string
}

// HistoryPage is one page of a channel history.  Messages holds the message
// timestamps in the order they were returned.
type HistoryPage struct {
	Messages   []string
	HasMore    bool
	NextCursor string
}

type cacheKey int

const (
	cacheChannels cacheKey = iota
)

type Option func(c *Client)

// WithAPIURL overrides the Slack API base URL, i.e. for a mock server.
func WithAPIURL(u string) Option {
	return func(c *Client) {
		if u == "" {
			return
		}
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		c.apiURL = u
	}
}

// WithHTTPClient allows to specify a custom HTTP client.
func WithHTTPClient(cl *http.Client) Option {
	return func(c *Client) {
		if cl == nil {
			return
		}
		c.httpClient = cl
	}
}

// WithConversationTypes sets the conversation types that GetChannels lists,
// i.e. "public_channel", "private_channel".
func WithConversationTypes(types ...string) Option {
	return func(c *Client) {
		if len(types) == 0 {
			return
		}
		c.types = types
	}
}

func WithDebug(enable bool) Option {
	return func(c *Client) {
		c.debug = enable
		if !enable {
			c.logger = nil
			return
		}
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		lg := zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(cfg),
			zapcore.AddSync(colorable.NewColorableStdout()),
			zapcore.DebugLevel,
		))
		c.logger = zap.NewStdLog(lg.Named("slack"))
	}
}

// New creates a new Client with the bot token botToken and user token
// userToken.
func New(botToken, userToken string, opts ...Option) (*Client, error) {
	if botToken == "" || userToken == "" {
		return nil, ErrNoCredentials
	}
	// Client with the default parameters
	var c = Client{
		cache: gcache.New(defCacheSz).LFU().Expiration(defCacheEvict).Build(),
		types: DefaultTypes,
	}
	for _, opt := range opts {
		opt(&c)
	}

	c.bot = slack.New(botToken, c.slackOptions()...)
	c.user = slack.New(userToken, c.slackOptions()...)
	return &c, nil
}

func (c *Client) slackOptions() []slack.Option {
	var opts []slack.Option
	if c.apiURL != "" {
		opts = append(opts, slack.OptionAPIURL(c.apiURL))
	}
	if c.httpClient != nil {
		opts = append(opts, slack.OptionHTTPClient(c.httpClient))
	}
	if c.debug && c.logger != nil {
		opts = append(opts, slack.OptionDebug(true), slack.OptionLog(c.logger))
	}
	return opts
}
