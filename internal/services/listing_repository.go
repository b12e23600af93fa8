package services

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
)

// SortOrder selects how listings are ordered for display.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortPriceAsc
	SortPriceDesc
)

// ParseSortOrder maps the listing page's sort selector values.
func ParseSortOrder(s string) SortOrder {
	switch s {
	case "low":
		return SortPriceAsc
	case "high":
		return SortPriceDesc
	default:
		return SortNone
	}
}

// ListingRepository fetches and caches the property collection. A failed
// fetch records an error and leaves the previous list intact, so a transient
// failure never flashes an empty page.
type ListingRepository struct {
	tables domain.TableAPI
	log    *zap.Logger

	mu         sync.RWMutex
	properties []domain.Property
	owned      []domain.Property
	loading    bool
	lastError  string
}

// NewListingRepository creates the repository.
func NewListingRepository(tables domain.TableAPI, log *zap.Logger) *ListingRepository {
	return &ListingRepository{tables: tables, log: log}
}

// FetchAll retrieves the full property collection. Browsing is public, so no
// session is required.
func (r *ListingRepository) FetchAll(ctx context.Context) error {
	r.setLoading(true)
	defer r.setLoading(false)

	rows, err := r.tables.Select(ctx, domain.PropertiesTable, domain.PropertyColumns, nil)
	if err != nil {
		fetchErr := domain.NewFetchError("could not load property listings", err)
		r.setError(fetchErr.Error())
		r.log.Warn("property fetch failed", zap.Error(err))
		return fetchErr
	}

	r.mu.Lock()
	r.properties = domain.PropertiesFromRows(rows)
	r.lastError = ""
	r.mu.Unlock()
	return nil
}

// FetchOwned retrieves one owner's records for the landlord management list.
func (r *ListingRepository) FetchOwned(ctx context.Context, ownerID string) error {
	r.setLoading(true)
	defer r.setLoading(false)

	rows, err := r.tables.Select(ctx, domain.PropertiesTable, domain.PropertyColumns, domain.Filters{
		"owner_id": ownerID,
	})
	if err != nil {
		fetchErr := domain.NewFetchError("could not load your properties", err)
		r.setError(fetchErr.Error())
		r.log.Warn("owned property fetch failed",
			zap.String("owner_id", ownerID), zap.Error(err))
		return fetchErr
	}

	r.mu.Lock()
	r.owned = domain.PropertiesFromRows(rows)
	r.lastError = ""
	r.mu.Unlock()
	return nil
}

// Properties returns the cached collection.
func (r *ListingRepository) Properties() []domain.Property {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Property(nil), r.properties...)
}

// Owned returns the cached owner-scoped list.
func (r *ListingRepository) Owned() []domain.Property {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Property(nil), r.owned...)
}

// OwnedBy filters the cached collection to one owner.
func (r *ListingRepository) OwnedBy(ownerID string) []domain.Property {
	var out []domain.Property
	for _, p := range r.Properties() {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out
}

// ByID looks a record up in the cached collection.
func (r *ListingRepository) ByID(id string) (domain.Property, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.properties {
		if p.ID == id {
			return p, true
		}
	}
	for _, p := range r.owned {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Property{}, false
}

// List applies the listing page's search and sort to the cached collection.
// Search matches title, type, and location case-insensitively.
func (r *ListingRepository) List(search string, order SortOrder) []domain.Property {
	props := r.Properties()

	term := strings.ToLower(strings.TrimSpace(search))
	if term != "" {
		filtered := props[:0]
		for _, p := range props {
			if strings.Contains(strings.ToLower(p.Title), term) ||
				strings.Contains(strings.ToLower(p.Type), term) ||
				strings.Contains(strings.ToLower(p.Location), term) {
				filtered = append(filtered, p)
			}
		}
		props = filtered
	}

	switch order {
	case SortPriceAsc:
		domain.SortPropertiesByPrice(props, true)
	case SortPriceDesc:
		domain.SortPropertiesByPrice(props, false)
	}
	return props
}

// Loading reports whether a fetch is in flight.
func (r *ListingRepository) Loading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loading
}

// LastError returns the user-facing message from the most recent failed
// fetch, empty after a success.
func (r *ListingRepository) LastError() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastError
}

func (r *ListingRepository) setLoading(v bool) {
	r.mu.Lock()
	r.loading = v
	r.mu.Unlock()
}

func (r *ListingRepository) setError(msg string) {
	r.mu.Lock()
	r.lastError = msg
	r.mu.Unlock()
}
