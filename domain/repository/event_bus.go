package repository

import "context"

// MessageHandler processes one delivery. A nil error acknowledges the message.
type MessageHandler func(ctx context.Context, payload []byte) error

// IEventBus moves pipeline events between stages.
type IEventBus interface {
	Publish(ctx context.Context, topic string, payload []byte) (string, error)
	// Receive blocks and dispatches deliveries until ctx is done.
	Receive(ctx context.Context, subscription string, handler MessageHandler) error
}
