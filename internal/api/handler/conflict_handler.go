package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/dto"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/service"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/response"
)

// ConflictHandler conflict-check endpoint.
type ConflictHandler struct {
	svc service.ConflictService
}

// Check POST /api/v1/conflicts/check
func (h *ConflictHandler) Check(c *gin.Context) {
	var req dto.ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, codeBadInput, err.Error())
		return
	}

	resp, err := h.svc.Check(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}
