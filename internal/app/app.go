package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
	"github.com/MiluneSadakaChrispinus/househunter/internal/config"
	httpx "github.com/MiluneSadakaChrispinus/househunter/internal/http"
	"github.com/MiluneSadakaChrispinus/househunter/internal/http/handlers"
)

// Run builds the container, performs the initial sync, and serves the
// interactive surface.
func Run(cfg *config.Config, log *zap.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx := context.Background()
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer c.Close()

	// Initial sync: listings are public, favorites follow the restored
	// session. Failures surface as banner errors, not startup failures.
	if err := c.Listings.FetchAll(ctx); err != nil {
		log.Warn("initial listing fetch failed", zap.Error(err))
	}
	if err := c.Favorites.Refresh(ctx); err != nil {
		log.Warn("initial favorites fetch failed", zap.Error(err))
	}

	// Re-fetch on every session transition; the two fetches write disjoint
	// state, so their completion order does not matter.
	unsubscribe := c.Sessions.OnChange(func(change domain.SessionChange) {
		go func() {
			if err := c.Listings.FetchAll(ctx); err != nil {
				log.Warn("listing refresh failed", zap.Error(err))
			}
		}()
		go func() {
			if change.Session == nil {
				c.Favorites.Clear()
				return
			}
			if err := c.Favorites.Refresh(ctx); err != nil {
				log.Warn("favorites refresh failed", zap.Error(err))
			}
		}()
	})
	defer unsubscribe()

	ah := handlers.NewAuthHandlers(c.Sessions, c.Router)
	lh := handlers.NewListingHandlers(c.Listings, c.Favorites)
	ph := handlers.NewPropertyHandlers(c.Form, c.Listings, c.Sessions)
	r := httpx.BuildRouter(ah, lh, ph, log)

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("gateway_mode", cfg.GatewayMode))
	return r.Run(addr)
}
