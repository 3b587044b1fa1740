// Package mongo persists the audit trail of proxied mutations.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	connectTimeout = 10 * time.Second
	defaultTimeout = 5 * time.Second
)

// ErrDisabled is returned by Open when no URI is configured.
var ErrDisabled = errors.New("mongodb disabled")

// Options selects the audit database.
type Options struct {
	URI      string
	Database string
	// ConnectTimeout bounds connect and ping; zero uses ten seconds.
	ConnectTimeout time.Duration
}

// Conn is an open connection and the database the audit trail lives in.
type Conn struct {
	client *mongo.Client
	DB     *mongo.Database
}

// Open connects, pings and selects the database.
func Open(ctx context.Context, o Options) (*Conn, error) {
	if o.URI == "" {
		return nil, ErrDisabled
	}
	timeout := o.ConnectTimeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(o.URI).
		SetAppName("food-notes-ui"))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Conn{client: client, DB: client.Database(o.Database)}, nil
}

// Close disconnects the client.
func (c *Conn) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
