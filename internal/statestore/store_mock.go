package statestore

import (
	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetSessionStore implements the StoreManager interface.
func (m *MockStoreManager) GetSessionStore() contract.SessionStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SessionStore)
	return store
}

// MockSessionStore is a mock implementation of SessionStore for testing.
type MockSessionStore struct {
	mock.Mock
}

var _ contract.SessionStore = &MockSessionStore{} // Compile-time check

// SaveSession implements the SessionStore interface.
func (m *MockSessionStore) SaveSession(name string, payload schema.SessionPayload) (string, error) {
	args := m.Called(name, payload)
	return args.String(0), args.Error(1)
}

// GetSession implements the SessionStore interface.
func (m *MockSessionStore) GetSession(key string) (schema.SessionRecord, error) {
	args := m.Called(key)
	return args.Get(0).(schema.SessionRecord), args.Error(1)
}

// ListSessions implements the SessionStore interface.
func (m *MockSessionStore) ListSessions() ([]schema.SessionRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.SessionRecord)
	return records, args.Error(1)
}

// DeleteSession implements the SessionStore interface.
func (m *MockSessionStore) DeleteSession(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// GetStatus implements the SessionStore interface.
func (m *MockSessionStore) GetStatus() (schema.SessionStoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.SessionStoreStatus), args.Error(1)
}

// Close implements the SessionStore interface.
func (m *MockSessionStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
