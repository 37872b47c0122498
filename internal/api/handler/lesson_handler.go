package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/dto"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/service"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/response"
)

// LessonHandler lesson lifecycle endpoints.
type LessonHandler struct {
	svc service.LessonService
}

// Create POST /api/v1/lessons
func (h *LessonHandler) Create(c *gin.Context) {
	var req dto.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, codeBadInput, err.Error())
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, resp)
}

// Get GET /api/v1/lessons/:id
func (h *LessonHandler) Get(c *gin.Context) {
	resp, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}

// List GET /api/v1/lessons
func (h *LessonHandler) List(c *gin.Context) {
	var req dto.LessonListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, codeBadInput, err.Error())
		return
	}

	resp, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}

// Cancel POST /api/v1/lessons/:id/cancel
func (h *LessonHandler) Cancel(c *gin.Context) {
	resp, err := h.svc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, resp)
}
