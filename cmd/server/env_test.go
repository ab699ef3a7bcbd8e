package main

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindEnv(t *testing.T) {
	t.Setenv("PORT", "6000")
	t.Setenv("BATTLE_TTL", "15m")
	t.Setenv("FEED_PORT", "9000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	port := flags.Int("port", 50051, "")
	feed := flags.Int("feed-port", 8081, "")
	ttl := flags.Duration("battle-ttl", time.Hour, "")
	other := flags.String("unbound", "x", "")

	require.NoError(t, flags.Parse([]string{"--feed-port", "7000"}))
	require.NoError(t, bindEnv(flags))

	assert.Equal(t, 6000, *port)
	assert.Equal(t, 15*time.Minute, *ttl)
	// the command line wins over the environment
	assert.Equal(t, 7000, *feed)
	assert.Equal(t, "x", *other)
}

func TestBindEnvRejectsBadValue(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 50051, "")

	err := bindEnv(flags)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}
