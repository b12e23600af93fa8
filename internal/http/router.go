package httpx

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MiluneSadakaChrispinus/househunter/internal/http/handlers"
	"github.com/MiluneSadakaChrispinus/househunter/internal/http/middleware"
)

// BuildRouter assembles the interactive surface. Presentation stays out of
// scope; every route is a JSON mapping onto a controller operation.
func BuildRouter(ah *handlers.AuthHandlers, lh *handlers.ListingHandlers, ph *handlers.PropertyHandlers, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/login", ah.Login)
	auth.POST("/signup", ah.Signup)
	auth.POST("/logout", ah.Logout)

	r.GET("/session", ah.Session)
	r.GET("/page", ah.Page)

	r.GET("/listings", lh.Listings)
	r.POST("/listings/refresh", lh.Refresh)
	r.GET("/favorites", lh.Favorites)
	r.POST("/favorites/:id/toggle", lh.ToggleFavorite)

	props := r.Group("/properties")
	props.GET("/mine", ph.Mine)
	props.POST("", ph.Create)
	props.PUT("/:id", ph.Update)
	props.DELETE("/:id", ph.Delete)

	return r
}
