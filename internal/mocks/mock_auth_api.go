package mocks

import (
	"context"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
)

// MockAuthAPI implements domain.AuthAPI for testing.
type MockAuthAPI struct {
	SessionFunc            func(ctx context.Context) (*domain.Session, error)
	SignInWithPasswordFunc func(ctx context.Context, email, password string) (*domain.Session, error)
	SignUpFunc             func(ctx context.Context, email, password string, metadata map[string]string) (*domain.SignupOutcome, error)
	SignOutFunc            func(ctx context.Context) error
	OnAuthStateChangeFunc  func(fn func(domain.AuthChangeEvent, *domain.Session)) func()

	// Listener captures the subscription registered through the default
	// OnAuthStateChange behavior, so tests can emit transitions.
	Listener func(domain.AuthChangeEvent, *domain.Session)
}

// NewMockAuthAPI creates a new MockAuthAPI with default behaviors.
func NewMockAuthAPI() *MockAuthAPI {
	return &MockAuthAPI{}
}

// Session returns the current session.
func (m *MockAuthAPI) Session(ctx context.Context) (*domain.Session, error) {
	if m.SessionFunc != nil {
		return m.SessionFunc(ctx)
	}
	// Default behavior: no session
	return nil, nil
}

// SignInWithPassword signs in with email and password.
func (m *MockAuthAPI) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	if m.SignInWithPasswordFunc != nil {
		return m.SignInWithPasswordFunc(ctx, email, password)
	}
	// Default behavior: minimal session
	return &domain.Session{AccessToken: "token", UserID: "user-1", Email: email}, nil
}

// SignUp creates an account carrying metadata.
func (m *MockAuthAPI) SignUp(ctx context.Context, email, password string, metadata map[string]string) (*domain.SignupOutcome, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, email, password, metadata)
	}
	// Default behavior: immediate session
	return &domain.SignupOutcome{
		Session: &domain.Session{AccessToken: "token", UserID: "user-1", Email: email},
	}, nil
}

// SignOut destroys the current session.
func (m *MockAuthAPI) SignOut(ctx context.Context) error {
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx)
	}
	// Default behavior: success
	return nil
}

// OnAuthStateChange registers a transition listener.
func (m *MockAuthAPI) OnAuthStateChange(fn func(domain.AuthChangeEvent, *domain.Session)) func() {
	if m.OnAuthStateChangeFunc != nil {
		return m.OnAuthStateChangeFunc(fn)
	}
	// Default behavior: capture the listener for the test to drive
	m.Listener = fn
	return func() { m.Listener = nil }
}

// Compile-time interface compliance verification
var _ domain.AuthAPI = (*MockAuthAPI)(nil)
