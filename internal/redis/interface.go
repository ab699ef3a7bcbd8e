package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the redis surface used by the repositories
type Client interface {
	redis.UniversalClient
}

// Nil is returned by reads of a missing key
var Nil = redis.Nil
