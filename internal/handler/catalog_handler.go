package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moltaqa/moltaqa-api/internal/service"
	"github.com/moltaqa/moltaqa-api/pkg/response"
)

// CatalogHandler exposes the read-only college/major/subject hierarchy.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Colleges godoc
// @Summary List colleges
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /colleges [get]
func (h *CatalogHandler) Colleges(c *gin.Context) {
	colleges, err := h.catalog.Colleges(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, colleges, nil)
}

// Majors godoc
// @Summary List majors under a college
// @Tags Catalog
// @Produce json
// @Param id path string true "College ID"
// @Success 200 {object} response.Envelope
// @Router /colleges/{id}/majors [get]
func (h *CatalogHandler) Majors(c *gin.Context) {
	majors, err := h.catalog.Majors(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, majors, nil)
}

// Subjects godoc
// @Summary List subjects under a major
// @Tags Catalog
// @Produce json
// @Param id path string true "Major ID"
// @Success 200 {object} response.Envelope
// @Router /majors/{id}/subjects [get]
func (h *CatalogHandler) Subjects(c *gin.Context) {
	subjects, err := h.catalog.Subjects(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// Subject godoc
// @Summary Get a subject by ID
// @Tags Catalog
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /subjects/{id} [get]
func (h *CatalogHandler) Subject(c *gin.Context) {
	subject, err := h.catalog.Subject(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subject, nil)
}
