package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
	"github.com/MiluneSadakaChrispinus/househunter/internal/services"
)

// ListingHandlers exposes the tenant-facing listing and favorites views.
type ListingHandlers struct {
	listings  *services.ListingRepository
	favorites *services.FavoritesController
}

// NewListingHandlers creates new listing handlers.
func NewListingHandlers(listings *services.ListingRepository, favorites *services.FavoritesController) *ListingHandlers {
	return &ListingHandlers{listings: listings, favorites: favorites}
}

// propertyView is the JSON shape of one listing. Pointer fields render as
// null when the value is unknown.
type propertyView struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Price       *float64 `json:"price"`
	Bedrooms    *int     `json:"bedrooms"`
	Bathrooms   *int     `json:"bathrooms"`
	Area        *float64 `json:"area"`
	Location    string   `json:"location"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Description string   `json:"description"`
	Amenities   string   `json:"amenities"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	FullAddress string   `json:"full_address"`
	ImageURL    string   `json:"image_url"`
	ImagePath   string   `json:"image_path"`
	OwnerID     string   `json:"owner_id"`
	Landlord    string   `json:"landlord"`
	Favorite    bool     `json:"favorite"`
}

// Listings returns the cached collection with search and sort applied, plus
// the loading flag and any banner error.
func (h *ListingHandlers) Listings(c *gin.Context) {
	search := c.Query("search")
	order := services.ParseSortOrder(c.Query("sort"))
	props := h.listings.List(search, order)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"properties": h.views(props),
			"loading":    h.listings.Loading(),
			"error":      h.listings.LastError(),
		},
	})
}

// Favorites returns the favorited subset of the cached collection.
func (h *ListingHandlers) Favorites(c *gin.Context) {
	var favs []domain.Property
	for _, p := range h.listings.Properties() {
		if h.favorites.Contains(p.ID) {
			favs = append(favs, p)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"properties": h.views(favs),
			"ids":        h.favorites.IDs(),
		},
	})
}

// ToggleFavorite flips membership of one property in the favorite set.
func (h *ListingHandlers) ToggleFavorite(c *gin.Context) {
	propertyID := c.Param("id")
	err := h.favorites.Toggle(c.Request.Context(), propertyID)
	if err != nil {
		if errors.Is(err, domain.ErrAuthRequired) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"property_id": propertyID,
			"favorite":    h.favorites.Contains(propertyID),
		},
	})
}

// Refresh re-fetches the collection on demand.
func (h *ListingHandlers) Refresh(c *gin.Context) {
	if err := h.listings.FetchAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"count": len(h.listings.Properties())}})
}

func (h *ListingHandlers) views(props []domain.Property) []propertyView {
	out := make([]propertyView, 0, len(props))
	for _, p := range props {
		out = append(out, propertyView{
			ID:          p.ID,
			Title:       p.Title,
			Type:        p.Type,
			Price:       p.Price,
			Bedrooms:    p.Bedrooms,
			Bathrooms:   p.Bathrooms,
			Area:        p.Area,
			Location:    p.Location,
			Phone:       p.Phone,
			Email:       p.Email,
			Description: p.Description,
			Amenities:   p.Amenities,
			Latitude:    p.Latitude,
			Longitude:   p.Longitude,
			FullAddress: p.FullAddress,
			ImageURL:    p.ImageURL,
			ImagePath:   p.ImagePath,
			OwnerID:     p.OwnerID,
			Landlord:    p.Landlord,
			Favorite:    h.favorites.Contains(p.ID),
		})
	}
	return out
}
