package mocks

import (
	"sync"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
)

// MockRoleStore implements domain.RoleStore for testing. The default
// behavior keeps the record in memory.
type MockRoleStore struct {
	LoadFunc  func() (domain.Role, bool, error)
	SaveFunc  func(role domain.Role) error
	ClearFunc func() error

	mu       sync.Mutex
	role     domain.Role
	recorded bool
	Cleared  int
}

// NewMockRoleStore creates a new MockRoleStore with default behaviors.
func NewMockRoleStore() *MockRoleStore {
	return &MockRoleStore{}
}

// NewMockRoleStoreWith creates a store whose record is pre-seeded.
func NewMockRoleStoreWith(role domain.Role) *MockRoleStore {
	return &MockRoleStore{role: role, recorded: true}
}

// Load returns the recorded role.
func (m *MockRoleStore) Load() (domain.Role, bool, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.recorded {
		return domain.RoleTenant, false, nil
	}
	return m.role, true, nil
}

// Save records the role.
func (m *MockRoleStore) Save(role domain.Role) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(role)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.role = role
	m.recorded = true
	return nil
}

// Clear removes the record.
func (m *MockRoleStore) Clear() error {
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.role = domain.RoleTenant
	m.recorded = false
	m.Cleared++
	return nil
}

// Recorded reports whether a role record currently exists.
func (m *MockRoleStore) Recorded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recorded
}

// Compile-time interface compliance verification
var _ domain.RoleStore = (*MockRoleStore)(nil)
