package client

import (
	"context"
	"sync"

	"github.com/hibiken/asynq"
)

type ctxKey int

const (
	_ ctxKey = iota
	asynqCtxKey
)

var (
	globalClient *asynq.Client
	globalMu     sync.RWMutex
)

// GetClient returns the asynq client from ctx when one was injected (tests),
// falling back to the global client. Safe for concurrent use.
func GetClient(ctx context.Context) *asynq.Client {
	c := ctx.Value(asynqCtxKey)
	if c != nil {
		asynqClient, ok := c.(*asynq.Client)
		if !ok {
			return nil
		}

		return asynqClient
	}

	globalMu.RLock()
	asynqClient := globalClient
	globalMu.RUnlock()

	return asynqClient
}

// SetClient replaces the global client and returns a function restoring the
// previous value. Safe for concurrent use.
func SetClient(asynqClient *asynq.Client) func() {
	globalMu.Lock()
	prev := globalClient
	globalClient = asynqClient
	globalMu.Unlock()
	return func() { SetClient(prev) }
}

// WithClient injects an asynq client into ctx for the duration of a request.
func WithClient(ctx context.Context, asynqClient *asynq.Client) context.Context {
	return context.WithValue(ctx, asynqCtxKey, asynqClient)
}
