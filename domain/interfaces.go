package domain

import "context"

// Filters are equality constraints applied to table operations. Every
// landlord mutation must carry an owner_id filter in addition to any record
// filter; the backend enforces the same rule server-side.
type Filters map[string]any

// AuthAPI is the authentication capability of the remote backend.
type AuthAPI interface {
	// Session returns the current session, or nil when none is established.
	Session(ctx context.Context) (*Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	// SignUp carries the chosen role as account metadata. A nil session with
	// PendingConfirmation set means the account needs email confirmation.
	SignUp(ctx context.Context, email, password string, metadata map[string]string) (*SignupOutcome, error)
	SignOut(ctx context.Context) error
	// OnAuthStateChange delivers every subsequent session transition. The
	// returned function unsubscribes the listener.
	OnAuthStateChange(fn func(AuthChangeEvent, *Session)) func()
}

// TableAPI is the relational capability of the remote backend. Rows travel
// as column→value maps; the schema is owned by the backend.
type TableAPI interface {
	Select(ctx context.Context, table string, columns []string, filters Filters) ([]map[string]any, error)
	Insert(ctx context.Context, table string, row map[string]any) error
	Update(ctx context.Context, table string, row map[string]any, filters Filters) error
	Delete(ctx context.Context, table string, filters Filters) error
}

// BlobAPI is the file-storage capability of the remote backend.
type BlobAPI interface {
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error
	// PublicURL returns the stable public URL for an uploaded object.
	PublicURL(bucket, key string) string
	Remove(ctx context.Context, bucket string, keys []string) error
}

// RoleStore persists the device-local "last chosen role" record. It is a
// hint for the next session, not the source of truth; account metadata wins
// once a session is available.
type RoleStore interface {
	// Load returns the recorded role and whether one was present.
	Load() (Role, bool, error)
	Save(role Role) error
	Clear() error
}
