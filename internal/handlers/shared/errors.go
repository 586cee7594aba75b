package handlers

import (
	"errors"
	"net/http"

	"venuehub/internal/models"
	"venuehub/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondError maps the service error taxonomy onto HTTP responses. A client
// cannot tell a hidden draft from a missing record; an expired share is
// reported distinctly so the UI can say the link went stale.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotAuthenticated):
		utils.UnauthorizedResponse(c)
	case errors.Is(err, models.ErrForbidden):
		utils.ForbiddenResponse(c)
	case errors.Is(err, models.ErrShareExpired):
		utils.ErrorResponse(c, http.StatusGone, "SHARE_EXPIRED", "Share link has expired")
	case errors.Is(err, models.ErrNotFound):
		utils.NotFoundResponse(c, "Location")
	case errors.Is(err, models.ErrDemoImmutable):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "DEMO_IMMUTABLE", "Demo listings cannot be modified")
	case errors.Is(err, models.ErrUpstreamUnavailable):
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Storage backend is unavailable")
	default:
		utils.InternalServerErrorResponse(c)
	}
}

// currentUserID returns the authenticated user id, or the zero ObjectID for
// anonymous requests.
func currentUserID(c *gin.Context) primitive.ObjectID {
	userID, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID
	}

	id, ok := userID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID
	}
	return id
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}

// shareToken reads the share token from the query string or header; the
// query form is what shared links carry.
func shareToken(c *gin.Context) string {
	if token := c.Query("share_token"); token != "" {
		return token
	}
	return c.GetHeader("X-Share-Token")
}
