package contract

import (
	"context"

	"cv-insight-be/pkg/store"
)

// SessionRepository is the keyed conversation store. Sessions are created
// lazily on first reference and removed only by Clear; there is no TTL.
//
// AppendTurn must be atomic per session: callers invoke it only after a
// successful generation, and concurrent appends to different sessions must
// not block each other.
type SessionRepository interface {
	GetOrCreate(ctx context.Context, sessionID string) ([]store.Turn, error)
	AppendTurn(ctx context.Context, sessionID, userText, assistantText string) error
	// Clear removes a session and reports whether it existed.
	Clear(ctx context.Context, sessionID string) (bool, error)
}
