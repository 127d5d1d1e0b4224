package session

// Store defines the interface for the single-slot credential store. All
// mutation is a full replace or a full clear; the store never holds a
// partial session.
type Store interface {
	// Save durably writes the session, replacing any prior value
	Save(session *Session) error

	// Read returns the current session, or (nil, nil) when absent.
	// Unparseable stored content reads as absent, never as an error.
	Read() (*Session, error)

	// Clear removes the session unconditionally; idempotent
	Clear() error
}
