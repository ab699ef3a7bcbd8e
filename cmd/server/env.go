package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// envKeys maps flag names to the environment variables that set them when
// the flag is not given on the command line
var envKeys = map[string]string{
	"log-level":  "LOG_LEVEL",
	"port":       "PORT",
	"feed-port":  "FEED_PORT",
	"store":      "STORE",
	"redis-url":  "REDIS_URL",
	"battle-ttl": "BATTLE_TTL",
	"seed":       "RANDOM_SEED",
	"server":     "BATTLE_SERVER",
	"feed":       "BATTLE_FEED",
}

func bindEnv(flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		key, ok := envKeys[f.Name]
		if !ok || f.Changed || err != nil {
			return
		}
		value, set := os.LookupEnv(key)
		if !set {
			return
		}
		if setErr := flags.Set(f.Name, value); setErr != nil {
			err = fmt.Errorf("invalid %s %q: %w", key, value, setErr)
		}
	})
	return err
}
