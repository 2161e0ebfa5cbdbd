package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/moltaqa/moltaqa-api/internal/models"
	appErrors "github.com/moltaqa/moltaqa-api/pkg/errors"
	"github.com/moltaqa/moltaqa-api/pkg/response"
)

type moltaqaSearchService interface {
	Search(ctx context.Context, userID string, req models.MoltaqaSearchRequest) (*models.MoltaqaSearchResponse, error)
	Preview(ctx context.Context, limit int) ([]models.ProfileSummary, error)
}

// MoltaqaMatchHandler exposes the profile-to-profile search endpoints.
type MoltaqaMatchHandler struct {
	matches moltaqaSearchService
}

// NewMoltaqaMatchHandler constructs MoltaqaMatchHandler.
func NewMoltaqaMatchHandler(matches moltaqaSearchService) *MoltaqaMatchHandler {
	return &MoltaqaMatchHandler{matches: matches}
}

// Search godoc
// @Summary Search visible student profiles by subject, major, level and study modes
// @Tags Moltaqa
// @Accept json
// @Produce json
// @Param request body models.MoltaqaSearchRequest true "Search parameters"
// @Success 200 {object} response.Envelope
// @Router /moltaqa/match/search [post]
func (h *MoltaqaMatchHandler) Search(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.MoltaqaSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	result, err := h.matches.Search(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Preview godoc
// @Summary Preview the most recently registered visible profiles
// @Tags Moltaqa
// @Produce json
// @Param limit query int false "Result limit (1-12)"
// @Success 200 {object} response.Envelope
// @Router /moltaqa/match/search/preview [get]
func (h *MoltaqaMatchHandler) Preview(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be a number"))
			return
		}
		limit = parsed
	}

	results, err := h.matches.Preview(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"results": results}, nil)
}
