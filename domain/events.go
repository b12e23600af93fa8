package domain

// AuthChangeEvent is the type of a session transition observed through the
// auth-state subscription.
type AuthChangeEvent string

const (
	// InitialSession is delivered once, synchronously, when the store first
	// resolves whether a session exists.
	InitialSession AuthChangeEvent = "INITIAL_SESSION"
	SignedIn       AuthChangeEvent = "SIGNED_IN"
	SignedOut      AuthChangeEvent = "SIGNED_OUT"
	// TokenExpired is reported when a previously valid session is observed
	// past its expiry. Listeners treat it like a sign-out.
	TokenExpired AuthChangeEvent = "TOKEN_EXPIRED"
)

// SessionChange is what SessionStore delivers to its listeners: the event,
// the session after the transition (nil on sign-out), and the role derived
// for it.
type SessionChange struct {
	Event   AuthChangeEvent
	Session *Session
	Role    Role
}
