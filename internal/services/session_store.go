package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
)

// SessionStore tracks the current authentication session and the role
// derived for it, and owns the auth lifecycle subscription. The initial
// session is resolved synchronously during construction, so readers never
// race ahead of the first value.
type SessionStore struct {
	auth  domain.AuthAPI
	roles domain.RoleStore
	log   *zap.Logger

	mu        sync.RWMutex
	session   *domain.Session
	role      domain.Role
	listeners map[string]func(domain.SessionChange)
	unsub     func()
}

// NewSessionStore fetches the current session once, derives the role, and
// subscribes to later transitions. A failed restore is treated as no
// session; it is logged, not fatal.
func NewSessionStore(ctx context.Context, auth domain.AuthAPI, roles domain.RoleStore, log *zap.Logger) *SessionStore {
	s := &SessionStore{
		auth:      auth,
		roles:     roles,
		log:       log,
		role:      domain.RoleTenant,
		listeners: make(map[string]func(domain.SessionChange)),
	}

	session, err := auth.Session(ctx)
	if err != nil {
		log.Warn("could not restore session", zap.Error(err))
		session = nil
	}
	s.mu.Lock()
	s.applySessionLocked(session)
	s.mu.Unlock()

	s.unsub = auth.OnAuthStateChange(s.handleAuthChange)
	return s
}

// Session returns the current session, or nil when none is established.
func (s *SessionStore) Session() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Role returns the active role. Tenant whenever no session exists.
func (s *SessionStore) Role() domain.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// SignedIn reports whether a session is established.
func (s *SessionStore) SignedIn() bool {
	return s.Session() != nil
}

// OnChange registers a listener for every subsequent transition. The
// returned function unsubscribes it.
func (s *SessionStore) OnChange(fn func(domain.SessionChange)) func() {
	id := uuid.NewString()
	s.mu.Lock()
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Close detaches the store from the auth subscription.
func (s *SessionStore) Close() {
	if s.unsub != nil {
		s.unsub()
	}
}

// Login records the chosen role, then establishes a session. Backend
// failures come back with their original message behind a static prefix.
func (s *SessionStore) Login(ctx context.Context, creds domain.Credentials, role domain.Role) (*domain.Session, error) {
	if err := s.roles.Save(role); err != nil {
		s.log.Warn("could not record role choice", zap.Error(err))
	}

	session, err := s.auth.SignInWithPassword(ctx, creds.Email, creds.Password)
	if err != nil {
		return nil, domain.NewAuthError("login failed", err)
	}

	s.transition(domain.SignedIn, session)
	s.log.Info("signed in",
		zap.String("user_id", session.UserID),
		zap.String("role", string(s.Role())))
	return session, nil
}

// Signup creates an account with the chosen role carried as metadata. A
// provider that requires email confirmation yields a pending outcome with no
// session established.
func (s *SessionStore) Signup(ctx context.Context, creds domain.Credentials, role domain.Role) (*domain.SignupOutcome, error) {
	outcome, err := s.auth.SignUp(ctx, creds.Email, creds.Password, map[string]string{
		"user_type": string(role),
	})
	if err != nil {
		return nil, domain.NewAuthError("signup failed", err)
	}

	if outcome.PendingConfirmation || outcome.Session == nil {
		s.log.Info("signup pending email confirmation", zap.String("email", creds.Email))
		return &domain.SignupOutcome{PendingConfirmation: true}, nil
	}

	if err := s.roles.Save(role); err != nil {
		s.log.Warn("could not record role choice", zap.Error(err))
	}
	s.transition(domain.SignedIn, outcome.Session)
	return outcome, nil
}

// Logout destroys the session. On failure the local session is kept so the
// user can retry; on success role resets to tenant and the device record is
// cleared.
func (s *SessionStore) Logout(ctx context.Context) error {
	if err := s.auth.SignOut(ctx); err != nil {
		return domain.NewAuthError("logout failed", err)
	}
	s.transition(domain.SignedOut, nil)
	s.log.Info("signed out")
	return nil
}

// handleAuthChange reconciles transitions observed through the gateway
// subscription (external expiry, sign-outs from the provider side).
func (s *SessionStore) handleAuthChange(event domain.AuthChangeEvent, session *domain.Session) {
	if event == domain.TokenExpired {
		s.log.Info("session token expired")
	}
	s.transition(event, session)
}

// transition swaps the session, re-derives the role, and notifies listeners.
// A token-identical session is a replay and delivers nothing: the gateway
// emits its subscription synchronously inside sign-in and sign-out, so the
// subscription and the direct Login/Logout call would otherwise both report
// the same transition.
func (s *SessionStore) transition(event domain.AuthChangeEvent, session *domain.Session) {
	s.mu.Lock()
	if sameToken(s.session, session) {
		s.mu.Unlock()
		return
	}
	s.applySessionLocked(session)
	change := domain.SessionChange{Event: event, Session: s.session, Role: s.role}
	listeners := make([]func(domain.SessionChange), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(change)
	}
}

// applySessionLocked sets the session and derives the role: account metadata
// first, the device record as a fallback hint, tenant otherwise. Without a
// session the role resets to tenant and the device record is cleared.
func (s *SessionStore) applySessionLocked(session *domain.Session) {
	s.session = session

	if session == nil {
		s.role = domain.RoleTenant
		if err := s.roles.Clear(); err != nil {
			s.log.Warn("could not clear role record", zap.Error(err))
		}
		return
	}

	role := domain.RoleTenant
	if session.MetadataRole.Valid() {
		role = session.MetadataRole
	} else if stored, ok, err := s.roles.Load(); err == nil && ok {
		role = stored
	} else if err != nil {
		s.log.Warn("could not read role record", zap.Error(err))
	}
	s.role = role

	if err := s.roles.Save(role); err != nil {
		s.log.Warn("could not record role", zap.Error(err))
	}
}

func sameToken(a, b *domain.Session) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.AccessToken == b.AccessToken
}
