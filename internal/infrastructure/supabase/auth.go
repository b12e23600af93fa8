package supabase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
)

// Auth implements domain.AuthAPI against the GoTrue REST surface.
type Auth struct {
	c *Client
}

// NewAuth creates the auth gateway.
func NewAuth(c *Client) domain.AuthAPI {
	return &Auth{c: c}
}

// tokenResponse is the GoTrue token/signup response shape.
type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	User         gotrueUser   `json:"user"`
	ID           string       `json:"id"` // signup without autoconfirm returns the bare user
	Email        string       `json:"email"`
	UserMetadata userMetadata `json:"user_metadata"`
}

type gotrueUser struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	UserMetadata userMetadata `json:"user_metadata"`
}

type userMetadata struct {
	UserType string `json:"user_type"`
}

// Session implements domain.AuthAPI. Expiry is observed lazily here: a
// tracked session past its deadline is dropped and reported through the
// auth-state subscription before nil is returned.
func (a *Auth) Session(_ context.Context) (*domain.Session, error) {
	a.c.mu.RLock()
	s := a.c.session
	a.c.mu.RUnlock()

	if s == nil {
		return nil, nil
	}
	if s.Expired() {
		a.c.log.Info("session expired", zap.String("user_id", s.UserID))
		a.c.setSession(domain.TokenExpired, nil)
		return nil, nil
	}
	return s, nil
}

// SignInWithPassword implements domain.AuthAPI.
func (a *Auth) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	var resp tokenResponse
	body := map[string]string{"email": email, "password": password}
	query := map[string][]string{"grant_type": {"password"}}
	if err := a.c.do(ctx, "POST", "/auth/v1/token", query, body, &resp, nil); err != nil {
		return nil, err
	}

	session := sessionFromToken(&resp)
	a.c.setSession(domain.SignedIn, session)
	return session, nil
}

// SignUp implements domain.AuthAPI. The chosen role travels as account
// metadata. When the project requires email confirmation, GoTrue returns the
// bare user without tokens; that maps to a pending-confirmation outcome.
func (a *Auth) SignUp(ctx context.Context, email, password string, metadata map[string]string) (*domain.SignupOutcome, error) {
	body := map[string]any{"email": email, "password": password}
	if len(metadata) > 0 {
		body["data"] = metadata
	}

	var resp tokenResponse
	if err := a.c.do(ctx, "POST", "/auth/v1/signup", nil, body, &resp, nil); err != nil {
		return nil, err
	}

	if resp.AccessToken == "" {
		return &domain.SignupOutcome{PendingConfirmation: true}, nil
	}

	session := sessionFromToken(&resp)
	a.c.setSession(domain.SignedIn, session)
	return &domain.SignupOutcome{Session: session}, nil
}

// SignOut implements domain.AuthAPI.
func (a *Auth) SignOut(ctx context.Context) error {
	a.c.mu.RLock()
	hasSession := a.c.session != nil
	a.c.mu.RUnlock()

	if hasSession {
		if err := a.c.do(ctx, "POST", "/auth/v1/logout", nil, nil, nil, nil); err != nil {
			return err
		}
	}
	a.c.setSession(domain.SignedOut, nil)
	return nil
}

// OnAuthStateChange implements domain.AuthAPI.
func (a *Auth) OnAuthStateChange(fn func(domain.AuthChangeEvent, *domain.Session)) func() {
	id := uuid.NewString()
	a.c.mu.Lock()
	a.c.listeners[id] = fn
	a.c.mu.Unlock()

	return func() {
		a.c.mu.Lock()
		delete(a.c.listeners, id)
		a.c.mu.Unlock()
	}
}

func sessionFromToken(resp *tokenResponse) *domain.Session {
	user := resp.User
	if user.ID == "" {
		user = gotrueUser{ID: resp.ID, Email: resp.Email, UserMetadata: resp.UserMetadata}
	}

	session := &domain.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		UserID:       user.ID,
		Email:        user.Email,
	}
	if user.UserMetadata.UserType != "" {
		session.MetadataRole = domain.ParseRole(user.UserMetadata.UserType)
	}
	if resp.ExpiresIn > 0 {
		session.ExpiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	} else if exp, ok := tokenExpiry(resp.AccessToken); ok {
		session.ExpiresAt = exp
	}
	return session
}

// tokenExpiry reads the exp claim without verifying the signature. The
// client is not the token issuer; the backend rejects bad tokens anyway.
func tokenExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
