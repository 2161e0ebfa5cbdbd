package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moltaqa/moltaqa-api/internal/models"
	"github.com/moltaqa/moltaqa-api/internal/service"
	appErrors "github.com/moltaqa/moltaqa-api/pkg/errors"
	"github.com/moltaqa/moltaqa-api/pkg/response"
)

// ExportHandler exposes admin-only export endpoints.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// ProfileDirectory godoc
// @Summary Export the visible profile directory as CSV or PDF
// @Tags Admin
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /admin/profiles/export [get]
func (h *ExportHandler) ProfileDirectory(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if claims.Role != models.RoleAdmin {
		response.Error(c, appErrors.ErrForbidden)
		return
	}

	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	payload, contentType, err := h.exports.ProfileDirectory(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("profiles_%s.%s", time.Now().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
