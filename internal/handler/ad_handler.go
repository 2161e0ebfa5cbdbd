package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moltaqa/moltaqa-api/internal/models"
	"github.com/moltaqa/moltaqa-api/internal/service"
	appErrors "github.com/moltaqa/moltaqa-api/pkg/errors"
	"github.com/moltaqa/moltaqa-api/pkg/response"
)

// AdHandler exposes ad endpoints.
type AdHandler struct {
	ads *service.AdService
}

// NewAdHandler constructs AdHandler.
func NewAdHandler(ads *service.AdService) *AdHandler {
	return &AdHandler{ads: ads}
}

// List godoc
// @Summary List active ads
// @Tags Ads
// @Produce json
// @Param type query string false "Ad type"
// @Param subjectId query string false "Subject"
// @Success 200 {object} response.Envelope
// @Router /ads [get]
func (h *AdHandler) List(c *gin.Context) {
	filter := models.AdFilter{
		AdType:    models.AdType(c.Query("type")),
		SubjectID: c.Query("subjectId"),
	}
	ads, err := h.ads.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ads, nil)
}

// Create godoc
// @Summary Post a new ad
// @Tags Ads
// @Accept json
// @Produce json
// @Param request body service.CreateAdRequest true "Ad payload"
// @Success 201 {object} response.Envelope
// @Router /ads [post]
func (h *AdHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	ad, err := h.ads.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ad)
}

// Delete godoc
// @Summary Delete an ad owned by the caller
// @Tags Ads
// @Param id path string true "Ad ID"
// @Success 204
// @Router /ads/{id} [delete]
func (h *AdHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.ads.Delete(c.Request.Context(), c.Param("id"), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
