package services

import (
	"testing"

	"github.com/MiluneSadakaChrispinus/househunter/domain"

	"github.com/stretchr/testify/require"
)

func TestViewRouter_Resolve(t *testing.T) {
	policy, err := NewAccessPolicy()
	require.NoError(t, err)
	router := NewViewRouter(policy)

	tests := []struct {
		name      string
		role      domain.Role
		requested domain.Page
		want      domain.Page
	}{
		{"tenant keeps listings", domain.RoleTenant, domain.PageListings, domain.PageListings},
		{"tenant keeps favorites", domain.RoleTenant, domain.PageFavorites, domain.PageFavorites},
		{"tenant bounced off manage", domain.RoleTenant, domain.PageManage, domain.PageListings},
		{"landlord keeps listings", domain.RoleLandlord, domain.PageListings, domain.PageListings},
		{"landlord keeps manage", domain.RoleLandlord, domain.PageManage, domain.PageManage},
		{"landlord bounced off favorites", domain.RoleLandlord, domain.PageFavorites, domain.PageManage},
		{"unknown page falls back", domain.RoleTenant, domain.Page("settings"), domain.PageListings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, router.Resolve(tt.role, tt.requested))
		})
	}
}

func TestViewRouter_DefaultPage(t *testing.T) {
	policy, err := NewAccessPolicy()
	require.NoError(t, err)
	router := NewViewRouter(policy)

	require.Equal(t, domain.PageManage, router.DefaultPage(domain.RoleLandlord))
	require.Equal(t, domain.PageListings, router.DefaultPage(domain.RoleTenant))
}

func TestAccessPolicy_Writes(t *testing.T) {
	policy, err := NewAccessPolicy()
	require.NoError(t, err)

	require.True(t, policy.CanWrite(domain.RoleTenant, "favorites"))
	require.True(t, policy.CanWrite(domain.RoleLandlord, "favorites"))
	require.False(t, policy.CanWrite(domain.RoleTenant, "properties"))
	require.True(t, policy.CanWrite(domain.RoleLandlord, "properties"))
}
