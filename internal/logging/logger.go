// Package logging defines the structured logger the server components
// share. Handlers and services depend on this interface rather than on a
// concrete logging backend.
package logging

import "context"

// Logger logs structured records. Variadic args alternate keys and values:
//
//	log.Info(ctx, "message stored", "conversation_id", convID, "sender_id", senderID)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)

	// Warn records unusual but survivable conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error records failures that need operator attention.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger whose records always carry the given
	// key-value pairs.
	With(args ...any) Logger
}
