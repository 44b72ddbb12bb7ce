package schema

import "time"

// SessionStoreStatus represents the status of the session store.
type SessionStoreStatus struct {
	Backend           string    `json:"backend"`
	Connected         bool      `json:"connected"`
	TotalSessions     int       `json:"total_sessions"`
	LastUpdateTime    time.Time `json:"last_update_time"`
	OldestSessionTime time.Time `json:"oldest_session_time"`
	TableSizeBytes    int64     `json:"table_size_bytes"`
}
