package routes

import (
	"venuehub/internal/middleware"
	"venuehub/internal/services"

	handlers "venuehub/internal/handlers/shared"

	"github.com/gin-gonic/gin"
)

// SetupLocationRoutes wires the listing catalog and share-link endpoints.
// Reads take optional auth so anonymous visitors see the published catalog
// while owners see their drafts; mutations require a signed-in user, except
// update, which also admits share-token editors.
func SetupLocationRoutes(r *gin.RouterGroup, authService services.AuthService, locationHandler *handlers.LocationHandler, shareHandler *handlers.ShareHandler) {
	locations := r.Group("/locations")
	locations.Use(middleware.OptionalAuth(authService))
	{
		locations.GET("", locationHandler.ListLocations)
		locations.GET("/markers", locationHandler.Markers)
		locations.GET("/:id", locationHandler.GetLocation)
		locations.PUT("/:id", locationHandler.UpdateLocation)
	}

	owned := r.Group("/locations")
	owned.Use(middleware.AuthRequired(authService))
	{
		owned.POST("", locationHandler.CreateLocation)
		owned.DELETE("/:id", locationHandler.DeleteLocation)
		owned.PUT("/:id/status", locationHandler.SetStatus)

		owned.POST("/:id/shares", shareHandler.CreateShare)
		owned.GET("/:id/shares", shareHandler.ListShares)
		owned.DELETE("/:id/shares/:shareId", shareHandler.DeleteShare)
	}
}
