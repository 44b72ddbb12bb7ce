// Package statestore persists saved sessions across invocations.
package statestore

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/schema"
)

// sessionsTable is the name of the table for saved sessions.
const sessionsTable = "locus_sessions"

// Global Manager instance for main logic.
var (
	Manager   = &SessionStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// SessionStoreManager guards access to the session store instance.
type SessionStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	sessions     contract.SessionStore
}

var _ contract.StoreManager = &SessionStoreManager{} // Compile-time check

// GetSessionStore returns the session SessionStore.
func (mgr *SessionStoreManager) GetSessionStore() contract.SessionStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.sessions
}

// GetStoreDBFilePath returns the path to the SQLite DB file for session storage.
func GetStoreDBFilePath() string {
	return contract.GetStoreDBFilePath()
}

// InitStore initializes the global store manager.
// backend can be empty to skip initialization entirely.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		var sessions contract.SessionStore
		if backend != "" {
			var err error
			sessions, err = NewSessionStore(backend, connStr)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize session store: %w", err)
				return
			}
		}

		Manager.Lock()
		Manager.sessions = sessions
		Manager.Unlock()
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.sessions != nil {
			_ = Manager.sessions.Close()
		}
	})
}

// ClearStore removes all saved sessions for the specified backend.
// For SQLite, it deletes the database file.
// For MySQL and PostgreSQL, it drops the sessions table.
// For NoneBackend, it does nothing.
func ClearStore(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return dropSQLTable("mysql", connStr, sessionsTable)

	case schema.PostgreSQLBackend:
		return dropSQLTable("pgx", connStr, sessionsTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend for clearing: %s", backend)
	}
}

// dropSQLTable connects to the SQL database and drops the table if it exists.
func dropSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}
