package handlers

import (
	"encoding/json"
	"mime/multipart"
	"strconv"

	"venuehub/internal/filter"
	"venuehub/internal/models"
	"venuehub/internal/services"
	"venuehub/internal/utils"
	"venuehub/internal/validators"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	locationService services.LocationService
}

func NewLocationHandler(locationService services.LocationService) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
	}
}

// ListLocations returns the catalog narrowed by search, range, and amenity
// filters. Anonymous callers see published listings only; authenticated
// callers may also request their own drafts.
func (h *LocationHandler) ListLocations(c *gin.Context) {
	query := services.ListQuery{
		Search:        c.Query("search"),
		Filter:        parseLocationFilter(c),
		SortBy:        filter.SortKey(c.Query("sort")),
		Order:         filter.SortOrder(c.Query("order")),
		IncludeDrafts: c.Query("include_drafts") == "true",
		Pagination:    utils.GetPaginationParams(c),
	}

	locations, total, err := h.locationService.List(c.Request.Context(), query, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Locations retrieved successfully", locations, &utils.Meta{
		Total: total,
		Count: len(locations),
	})
}

func (h *LocationHandler) GetLocation(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	location, err := h.locationService.Get(c.Request.Context(), id, currentUserID(c), shareToken(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Location retrieved successfully", location)
}

func (h *LocationHandler) CreateLocation(c *gin.Context) {
	req, images, ok := bindLocationForm[services.CreateLocationRequest](c)
	if !ok {
		return
	}

	if errs := validators.ValidateLocationCreate(&validators.LocationCreateRequest{
		Title:               req.Title,
		Description:         req.Description,
		Address:             req.Address,
		Price:               req.Price,
		Area:                req.Area,
		Amenities:           req.Amenities,
		Rules:               req.Rules,
		Status:              string(req.Status),
		MinimumBookingHours: req.MinimumBookingHours,
	}); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}
	if errs := validators.ValidateImageCount(len(images) + len(req.ImageURLs)); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	location, err := h.locationService.Create(c.Request.Context(), req, currentUserID(c), images)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Location created successfully", location)
}

func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	req, images, ok := bindLocationForm[services.UpdateLocationRequest](c)
	if !ok {
		return
	}

	location, err := h.locationService.Update(c.Request.Context(), id, req, currentUserID(c), shareToken(c), images)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Location updated successfully", location)
}

func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.locationService.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Location deleted successfully", nil)
}

func (h *LocationHandler) SetStatus(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var request struct {
		Status models.LocationStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	switch request.Status {
	case models.LocationStatusDraft, models.LocationStatusPublished, models.LocationStatusArchived:
	default:
		utils.BadRequestResponse(c, "Invalid status")
		return
	}

	location, err := h.locationService.SetStatus(c.Request.Context(), id, request.Status, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Location status updated successfully", location)
}

// Markers returns the published catalog reduced to map markers.
func (h *LocationHandler) Markers(c *gin.Context) {
	markers, err := h.locationService.Markers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Markers retrieved successfully", markers)
}

// bindLocationForm accepts either a JSON body or a multipart form carrying a
// "data" JSON part plus "images" file parts.
func bindLocationForm[T any](c *gin.Context) (*T, []*multipart.FileHeader, bool) {
	var req T

	contentType := c.ContentType()
	if contentType == "multipart/form-data" {
		form, err := c.MultipartForm()
		if err != nil {
			utils.BadRequestResponse(c, "Invalid form: "+err.Error())
			return nil, nil, false
		}

		if data := c.PostForm("data"); data != "" {
			if err := json.Unmarshal([]byte(data), &req); err != nil {
				utils.BadRequestResponse(c, "Invalid request data: "+err.Error())
				return nil, nil, false
			}
		}

		return &req, form.File["images"], true
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return nil, nil, false
	}
	return &req, nil, true
}

func parseLocationFilter(c *gin.Context) *models.LocationFilter {
	f := &models.LocationFilter{
		Amenities: c.QueryArray("amenities"),
	}

	f.MinPrice = floatQuery(c, "min_price")
	f.MaxPrice = floatQuery(c, "max_price")
	f.MinArea = floatQuery(c, "min_area")
	f.MaxArea = floatQuery(c, "max_area")

	return f
}

func floatQuery(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}
