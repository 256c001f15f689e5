package selection

import "context"

// Store persists the active session selection per user: a single string value
// read when a view is (re)built and written on every selection change.
type Store interface {
	// Load returns the saved session id for the user, or "" when none exists.
	Load(ctx context.Context, userID string) (string, error)
	Save(ctx context.Context, userID, sessionID string) error
}
