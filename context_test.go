package quorum

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	// try logger with default
	newLogger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, newLogger)
	assert.Equal(t, DefaultLogger, GetLogger(bg))
	assert.Equal(t, newLogger, GetLogger(ctx))

	// changing the info, should modify the logger
	ctx2 := WithLogInfo(ctx, "foo", "bar")
	assert.NotEqual(t, GetLogger(ctx), GetLogger(ctx2))

	// chain id must be set before use
	assert.Panics(t, func() { GetChainID(ctx) })
	ctx2 = WithChainID(ctx, "my-chain")
	assert.Equal(t, "my-chain", GetChainID(ctx2))
}

func TestBlockTime(t *testing.T) {
	bg := context.Background()

	_, ok := BlockTime(bg)
	assert.False(t, ok)
	_, ok = BlockTime(WithBlockTime(bg, time.Time{}))
	assert.False(t, ok)

	now := time.Date(2019, 3, 1, 12, 0, 0, 0, time.UTC)
	got, ok := BlockTime(WithBlockTime(bg, now))
	assert.True(t, ok)
	assert.Equal(t, now, got)
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2019, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := WithBlockTime(context.Background(), now)

	assert.True(t, IsExpired(ctx, AsUnixTime(now.Add(-time.Second))))
	// expiration is not inclusive
	assert.False(t, IsExpired(ctx, AsUnixTime(now)))
	assert.False(t, IsExpired(ctx, AsUnixTime(now.Add(time.Second))))

	assert.Panics(t, func() { IsExpired(context.Background(), AsUnixTime(now)) })
}

func TestChainID(t *testing.T) {
	cases := []struct {
		chainID string
		valid   bool
	}{
		{"", false},
		{"foo", false},
		{"special", true},
		{"wish-YOU-88", true},
		{"invalid;;chars", false},
		{"this-chain-id-is-way-too-long", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.valid, IsValidChainID(tc.chainID), tc.chainID)
	}
}
