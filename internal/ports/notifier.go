package ports

import "context"

// Notifier pushes a text message to an external destination.
type Notifier interface {
	Send(ctx context.Context, text string) error
}
