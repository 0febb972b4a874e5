package queue

import "context"

// Client publishes command jobs for the worker to pick up.
type Client interface {
	Send(ctx context.Context, m Message) error
}
