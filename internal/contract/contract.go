// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"github.com/locusproject/locus/schema"
)

// StoreManager defines the interface for accessing session storage.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetSessionStore() SessionStore
}

// SessionStore defines the interface for persisting user inputs between
// invocations. Implementations hold selections and raw weights only;
// rankings are recomputed on every run and never written here.
type SessionStore interface {
	// SaveSession inserts a session under a unique name, or updates the
	// payload of an existing session with that name, and returns its id.
	SaveSession(name string, payload schema.SessionPayload) (string, error)

	// GetSession fetches a session by id or name.
	GetSession(key string) (schema.SessionRecord, error)

	// ListSessions returns all sessions ordered by most recent update.
	ListSessions() ([]schema.SessionRecord, error)

	// DeleteSession removes a session by id or name.
	DeleteSession(key string) error

	// GetStatus returns status information about the session store.
	GetStatus() (schema.SessionStoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}
