package domain

import (
	"time"
)

// Role determines which views and mutations are available to a session.
type Role string

const (
	RoleTenant   Role = "tenant"
	RoleLandlord Role = "landlord"
)

// ParseRole maps a stored role string onto a known role, defaulting to tenant.
func ParseRole(s string) Role {
	if Role(s) == RoleLandlord {
		return RoleLandlord
	}
	return RoleTenant
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleTenant || r == RoleLandlord
}

// Page identifies a navigable view of the client.
type Page string

const (
	PageListings  Page = "listings"
	PageFavorites Page = "favorites"
	PageManage    Page = "manage"
)

// Session represents proof of authentication plus identity, as issued by the
// external auth provider.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Email        string
	ExpiresAt    time.Time
	// MetadataRole is the role carried in the account's own metadata, when
	// the provider returns it. Empty when the account has none recorded.
	MetadataRole Role
}

// Expired reports whether the session's access token has passed its expiry.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(time.Now())
}

// Credentials are what the auth provider accepts for sign-in.
type Credentials struct {
	Email    string
	Password string
}

// SignupOutcome is the result of a sign-up attempt. A provider that requires
// email confirmation returns no session and PendingConfirmation set; that is
// an outcome, not an error.
type SignupOutcome struct {
	Session             *Session
	PendingConfirmation bool
}

// Property is a persisted listing record. Optional numeric fields are
// pointers so an unknown value stays distinguishable from zero.
type Property struct {
	ID          string
	Title       string
	Type        string
	Price       *float64
	Bedrooms    *int
	Bathrooms   *int
	Area        *float64
	Location    string
	Phone       string
	Email       string
	Description string
	Amenities   string
	Latitude    *float64
	Longitude   *float64
	FullAddress string
	ImageURL    string
	ImagePath   string
	OwnerID     string
	Landlord    string
}

// FavoriteEdge links a user to a property they favorited.
type FavoriteEdge struct {
	UserID     string
	PropertyID string
	UserType   Role
}

// PropertyDraft is the mutable, not-yet-persisted shadow of a Property. Every
// field holds raw text input; numeric coercion happens only on submit.
type PropertyDraft struct {
	Title       string `form:"title" json:"title"`
	Location    string `form:"location" json:"location"`
	Price       string `form:"price" json:"price"`
	Type        string `form:"type" json:"type"`
	Bedrooms    string `form:"bedrooms" json:"bedrooms"`
	Bathrooms   string `form:"bathrooms" json:"bathrooms"`
	Area        string `form:"area" json:"area"`
	Description string `form:"description" json:"description"`
	Phone       string `form:"phone" json:"phone"`
	Email       string `form:"email" json:"email"`
	Amenities   string `form:"amenities" json:"amenities"`
	Latitude    string `form:"latitude" json:"latitude"`
	Longitude   string `form:"longitude" json:"longitude"`
	FullAddress string `form:"full_address" json:"full_address"`
	ImageURL    string `form:"image_url" json:"image_url"`
}

// NewPropertyDraft returns the blank create-mode draft.
func NewPropertyDraft() PropertyDraft {
	return PropertyDraft{Type: "Apartment"}
}

// DraftFromProperty seeds a draft from an existing record, including mapping
// the persisted image URL into the draft's image-URL field.
func DraftFromProperty(p Property) PropertyDraft {
	return PropertyDraft{
		Title:       p.Title,
		Location:    p.Location,
		Price:       formatFloat(p.Price),
		Type:        defaultString(p.Type, "Apartment"),
		Bedrooms:    formatInt(p.Bedrooms),
		Bathrooms:   formatInt(p.Bathrooms),
		Area:        formatFloat(p.Area),
		Description: p.Description,
		Phone:       p.Phone,
		Email:       p.Email,
		Amenities:   p.Amenities,
		Latitude:    formatFloat(p.Latitude),
		Longitude:   formatFloat(p.Longitude),
		FullAddress: p.FullAddress,
		ImageURL:    p.ImageURL,
	}
}

// PendingFile is a locally selected image that has not been uploaded yet.
type PendingFile struct {
	Name        string
	ContentType string
	Data        []byte
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
