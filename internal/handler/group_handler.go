package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moltaqa/moltaqa-api/internal/models"
	"github.com/moltaqa/moltaqa-api/internal/service"
	appErrors "github.com/moltaqa/moltaqa-api/pkg/errors"
	"github.com/moltaqa/moltaqa-api/pkg/response"
)

// GroupHandler exposes study group endpoints.
type GroupHandler struct {
	groups *service.GroupService
}

// NewGroupHandler constructs GroupHandler.
func NewGroupHandler(groups *service.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// List godoc
// @Summary List open study groups covering a subject
// @Tags Groups
// @Produce json
// @Param subjectId query string true "Subject"
// @Success 200 {object} response.Envelope
// @Router /groups [get]
func (h *GroupHandler) List(c *gin.Context) {
	subjectID := c.Query("subjectId")
	if subjectID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "subjectId is required"))
		return
	}

	groups, err := h.groups.List(c.Request.Context(), models.GroupFilter{SubjectID: subjectID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups, nil)
}

// Create godoc
// @Summary Open a new study group
// @Tags Groups
// @Accept json
// @Produce json
// @Param request body service.CreateGroupRequest true "Group payload"
// @Success 201 {object} response.Envelope
// @Router /groups [post]
func (h *GroupHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	group, err := h.groups.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, group)
}
