package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moltaqa/moltaqa-api/internal/models"
	appErrors "github.com/moltaqa/moltaqa-api/pkg/errors"
	"github.com/moltaqa/moltaqa-api/pkg/response"
)

type matchSearchService interface {
	Search(ctx context.Context, userID string, req models.MatchSearchRequest) (*models.MatchSearchResponse, error)
}

// SearchHandler exposes the candidate matching endpoint.
type SearchHandler struct {
	matches matchSearchService
}

// NewSearchHandler constructs SearchHandler.
func NewSearchHandler(matches matchSearchService) *SearchHandler {
	return &SearchHandler{matches: matches}
}

// Match godoc
// @Summary Search matching partners, groups, tutors or helpers for a subject
// @Tags Search
// @Accept json
// @Produce json
// @Param request body models.MatchSearchRequest true "Search parameters"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /search/match [post]
func (h *SearchHandler) Match(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.MatchSearchRequest
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
