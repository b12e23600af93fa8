package services

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
)

// FavoritesController maintains the set of favorited property IDs for the
// current session. Toggles are optimistic: the local set changes
// immediately and is rolled back when the backend reports failure. With no
// session the controller is empty and inert.
type FavoritesController struct {
	tables   domain.TableAPI
	sessions *SessionStore
	log      *zap.Logger

	mu  sync.Mutex
	ids map[string]struct{}
}

// NewFavoritesController creates the controller.
func NewFavoritesController(tables domain.TableAPI, sessions *SessionStore, log *zap.Logger) *FavoritesController {
	return &FavoritesController{
		tables:   tables,
		sessions: sessions,
		log:      log,
		ids:      make(map[string]struct{}),
	}
}

// Refresh loads the favorite edges for the current session. Without a
// session the set empties and no fetch is issued.
func (f *FavoritesController) Refresh(ctx context.Context) error {
	session := f.sessions.Session()
	if session == nil {
		f.Clear()
		return nil
	}

	rows, err := f.tables.Select(ctx, domain.FavoritesTable, []string{"property_id"}, domain.Filters{
		"user_id": session.UserID,
	})
	if err != nil {
		f.log.Warn("favorites fetch failed", zap.Error(err))
		return domain.NewFetchError("could not load favorites", err)
	}

	ids := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if id, ok := row["property_id"].(string); ok && id != "" {
			ids[id] = struct{}{}
		}
	}

	f.mu.Lock()
	f.ids = ids
	f.mu.Unlock()
	return nil
}

// Toggle flips membership of one property in the favorite set. It requires
// an active session; otherwise it surfaces the authentication-required
// notice and touches nothing. A toggle on the same property while a prior
// one is in flight is last-write-wins.
func (f *FavoritesController) Toggle(ctx context.Context, propertyID string) error {
	session := f.sessions.Session()
	if session == nil {
		return domain.ErrAuthRequired
	}

	if f.Contains(propertyID) {
		err := applyOptimistic(
			func() { f.remove(propertyID) },
			func() { f.add(propertyID) },
			func() error {
				return f.tables.Delete(ctx, domain.FavoritesTable, domain.Filters{
					"user_id":     session.UserID,
					"property_id": propertyID,
				})
			},
		)
		if err != nil {
			f.log.Warn("favorite removal failed",
				zap.String("property_id", propertyID), zap.Error(err))
			return domain.NewMutationError("could not remove favorite", err)
		}
		return nil
	}

	edge := domain.FavoriteEdge{
		UserID:     session.UserID,
		PropertyID: propertyID,
		UserType:   f.sessions.Role(),
	}
	err := applyOptimistic(
		func() { f.add(propertyID) },
		func() { f.remove(propertyID) },
		func() error {
			return f.tables.Insert(ctx, domain.FavoritesTable, edge.Row())
		},
	)
	if err != nil {
		f.log.Warn("favorite insert failed",
			zap.String("property_id", propertyID), zap.Error(err))
		return domain.NewMutationError("could not add favorite", err)
	}
	return nil
}

// Contains reports membership of one property.
func (f *FavoritesController) Contains(propertyID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.ids[propertyID]
	return ok
}

// IDs returns the favorited property IDs in stable order.
func (f *FavoritesController) IDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Clear empties the local set. Used on logout.
func (f *FavoritesController) Clear() {
	f.mu.Lock()
	f.ids = make(map[string]struct{})
	f.mu.Unlock()
}

func (f *FavoritesController) add(propertyID string) {
	f.mu.Lock()
	f.ids[propertyID] = struct{}{}
	f.mu.Unlock()
}

func (f *FavoritesController) remove(propertyID string) {
	f.mu.Lock()
	delete(f.ids, propertyID)
	f.mu.Unlock()
}
