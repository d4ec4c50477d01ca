package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rusq/wipeslack/internal/slackapi"
	"github.com/rusq/wipeslack/internal/waipu"
)

func TestParams_rateLimit(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   waipu.RateLimit
	}{
		{"not set", Params{}, waipu.RateLimit{}},
		{"both set", Params{BatchSize: 20, PauseMs: 3000}, waipu.RateLimit{BatchSize: 20, Pause: 3 * time.Second}},
		{"batch only", Params{BatchSize: 20}, waipu.RateLimit{BatchSize: 20, Pause: waipu.DefPause}},
		{"pause only", Params{PauseMs: 2500}, waipu.RateLimit{BatchSize: waipu.DefBatchSize, Pause: 2500 * time.Millisecond}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.params.rateLimit()
			assert.Equal(t, tt.want, got)
			assert.NoError(t, got.Validate())
		})
	}
}

func TestParams_validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"not set", Params{}, false},
		{"within bounds", Params{BatchSize: 20, PauseMs: 3000}, false},
		{"bounds inclusive", Params{BatchSize: waipu.MaxBatchSize, PauseMs: 2000}, false},
		{"batch only", Params{BatchSize: 3}, false},
		{"pause only", Params{PauseMs: 60000}, false},
		{"negative batch", Params{BatchSize: -1}, true},
		{"negative pause", Params{PauseMs: -1}, true},
		{"batch too small", Params{BatchSize: 1, PauseMs: 3000}, true},
		{"batch too large", Params{BatchSize: 101}, true},
		{"pause too short", Params{BatchSize: 20, PauseMs: 500}, true},
		{"pause too long", Params{PauseMs: 60001}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				// valid parameters never produce an answer the prompts reject.
				assert.NoError(t, tt.params.rateLimit().Validate())
			}
		})
	}
}

func TestParams_types(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"public_channel", []string{"public_channel"}},
		{"public_channel, private_channel", []string{"public_channel", "private_channel"}},
		{" , ", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p := Params{Types: tt.in}
			assert.Equal(t, tt.want, p.types())
		})
	}
}

func TestParams_credentials(t *testing.T) {
	ctx := context.Background()
	t.Run("from the command line", func(t *testing.T) {
		p := Params{BotToken: "xoxb-1", UserToken: "xoxp-2", cacheDir: t.TempDir()}
		got, err := p.credentials(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, slackapi.Creds{BotToken: "xoxb-1", UserToken: "xoxp-2"}, got)
	})
	t.Run("missing, not interactive", func(t *testing.T) {
		p := Params{BotToken: "xoxb-1", cacheDir: t.TempDir()}
		_, err := p.credentials(ctx, false)
		assert.ErrorIs(t, err, slackapi.ErrNoCredentials)
	})
}

func TestInitCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	var p Params
	require.NoError(t, p.initCacheDir("wipeslack-test"))
	assert.True(t, strings.HasSuffix(p.cacheDir, "wipeslack-test"))
}

func Test_ver(t *testing.T) {
	var buf bytes.Buffer
	ver(&buf)
	assert.True(t, strings.HasPrefix(buf.String(), versionSig+"\n"))
}
