package domain

import (
	"testing"
	"time"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"landlord", RoleLandlord},
		{"tenant", RoleTenant},
		{"", RoleTenant},
		{"admin", RoleTenant},
		{"Landlord", RoleTenant},
	}
	for _, tt := range tests {
		if got := ParseRole(tt.in); got != tt.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSessionExpired(t *testing.T) {
	past := &Session{ExpiresAt: time.Now().Add(-time.Minute)}
	if !past.Expired() {
		t.Error("session past its expiry should report expired")
	}
	future := &Session{ExpiresAt: time.Now().Add(time.Hour)}
	if future.Expired() {
		t.Error("session before its expiry should not report expired")
	}
	// A session without an expiry claim never expires locally.
	unset := &Session{}
	if unset.Expired() {
		t.Error("session with zero expiry should not report expired")
	}
}

func TestNewPropertyDraftDefaultsType(t *testing.T) {
	d := NewPropertyDraft()
	if d.Type != "Apartment" {
		t.Errorf("Type = %q, want Apartment", d.Type)
	}
	if d.Title != "" || d.Price != "" {
		t.Errorf("blank draft carries data: %+v", d)
	}
}

func TestDraftFromProperty(t *testing.T) {
	price := 1250.5
	beds := 3
	p := Property{
		ID:       "p1",
		Title:    "Garden House",
		Location: "Nakuru",
		Price:    &price,
		Bedrooms: &beds,
		ImageURL: "https://img.example.com/p1.jpg",
	}

	d := DraftFromProperty(p)
	if d.Price != "1250.5" {
		t.Errorf("Price = %q, want 1250.5", d.Price)
	}
	if d.Bedrooms != "3" {
		t.Errorf("Bedrooms = %q, want 3", d.Bedrooms)
	}
	if d.Bathrooms != "" {
		t.Errorf("Bathrooms = %q, want empty for a nil value", d.Bathrooms)
	}
	if d.ImageURL != p.ImageURL {
		t.Errorf("ImageURL = %q, want the persisted URL", d.ImageURL)
	}
	if d.Type != "Apartment" {
		t.Errorf("Type = %q, want the Apartment default for an untyped record", d.Type)
	}
}
