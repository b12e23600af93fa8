package mocks

import (
	"context"
	"sync"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
)

// TableCall records one table operation for assertion.
type TableCall struct {
	Op      string
	Table   string
	Columns []string
	Row     map[string]any
	Filters domain.Filters
}

// MockTableAPI implements domain.TableAPI for testing. Every call is
// recorded in Calls in invocation order.
type MockTableAPI struct {
	SelectFunc func(ctx context.Context, table string, columns []string, filters domain.Filters) ([]map[string]any, error)
	InsertFunc func(ctx context.Context, table string, row map[string]any) error
	UpdateFunc func(ctx context.Context, table string, row map[string]any, filters domain.Filters) error
	DeleteFunc func(ctx context.Context, table string, filters domain.Filters) error

	mu    sync.Mutex
	Calls []TableCall
}

// NewMockTableAPI creates a new MockTableAPI with default behaviors.
func NewMockTableAPI() *MockTableAPI {
	return &MockTableAPI{}
}

// Select runs a query.
func (m *MockTableAPI) Select(ctx context.Context, table string, columns []string, filters domain.Filters) ([]map[string]any, error) {
	m.record(TableCall{Op: "select", Table: table, Columns: columns, Filters: filters})
	if m.SelectFunc != nil {
		return m.SelectFunc(ctx, table, columns, filters)
	}
	// Default behavior: empty result
	return nil, nil
}

// Insert writes a row.
func (m *MockTableAPI) Insert(ctx context.Context, table string, row map[string]any) error {
	m.record(TableCall{Op: "insert", Table: table, Row: row})
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, table, row)
	}
	// Default behavior: success
	return nil
}

// Update mutates matching rows.
func (m *MockTableAPI) Update(ctx context.Context, table string, row map[string]any, filters domain.Filters) error {
	m.record(TableCall{Op: "update", Table: table, Row: row, Filters: filters})
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, table, row, filters)
	}
	// Default behavior: success
	return nil
}

// Delete removes matching rows.
func (m *MockTableAPI) Delete(ctx context.Context, table string, filters domain.Filters) error {
	m.record(TableCall{Op: "delete", Table: table, Filters: filters})
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, table, filters)
	}
	// Default behavior: success
	return nil
}

// CallsFor returns the recorded calls for one operation.
func (m *MockTableAPI) CallsFor(op string) []TableCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []TableCall
	for _, c := range m.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (m *MockTableAPI) record(c TableCall) {
	m.mu.Lock()
	m.Calls = append(m.Calls, c)
	m.mu.Unlock()
}

// Compile-time interface compliance verification
var _ domain.TableAPI = (*MockTableAPI)(nil)
