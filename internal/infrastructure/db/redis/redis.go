// Package redis stores revoked session ids in Redis so that sign-outs hold
// across restarts and across replicas.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// ErrDisabled is returned by Open when no address is configured.
var ErrDisabled = errors.New("redis disabled")

// Options selects the Redis instance that holds revocations.
type Options struct {
	Addr     string
	Password string
	DB       int
	// PingTimeout bounds the start-up check; zero uses five seconds.
	PingTimeout time.Duration
}

// Open returns a client that has answered a ping. Callers fall back to the
// in-memory store on ErrDisabled.
func Open(ctx context.Context, o Options) (*redis.Client, error) {
	if o.Addr == "" {
		return nil, ErrDisabled
	}
	timeout := o.PingTimeout
	if timeout <= 0 {
		timeout = pingTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:     o.Addr,
		Password: o.Password,
		DB:       o.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", o.Addr, err)
	}
	return client, nil
}
