package handlers

import (
	"venuehub/internal/models"
	"venuehub/internal/services"
	"venuehub/internal/utils"
	"venuehub/internal/validators"

	"github.com/gin-gonic/gin"
)

type ShareHandler struct {
	shareService services.ShareService
}

func NewShareHandler(shareService services.ShareService) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
	}
}

func (h *ShareHandler) CreateShare(c *gin.Context) {
	locationID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var request services.CreateShareRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateShareCreate(&validators.ShareCreateRequest{
		AccessLevel: string(request.AccessLevel),
		Name:        request.Name,
		ExpiresAt:   request.ExpiresAt,
	}); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	share, err := h.shareService.CreateShare(c.Request.Context(), locationID, &request, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Share created successfully", share)
}

func (h *ShareHandler) ListShares(c *gin.Context) {
	locationID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	shares, err := h.shareService.ListShares(c.Request.Context(), locationID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if shares == nil {
		shares = []*models.LocationShare{}
	}
	utils.SuccessResponse(c, "Shares retrieved successfully", shares)
}

func (h *ShareHandler) DeleteShare(c *gin.Context) {
	locationID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	shareID, ok := objectIDParam(c, "shareId")
	if !ok {
		return
	}

	if err := h.shareService.DeleteShare(c.Request.Context(), shareID, locationID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Share deleted successfully", nil)
}
