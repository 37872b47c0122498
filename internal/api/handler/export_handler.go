package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/dto"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/service"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/response"
)

// ExportHandler schedule export endpoints.
type ExportHandler struct {
	svc service.ExportService
}

// exportWindow shared query shape for both exports.
type exportWindow struct {
	From      string  `form:"from"       binding:"required,datetime=2006-01-02"`
	To        string  `form:"to"         binding:"required,datetime=2006-01-02"`
	TeacherID *string `form:"teacher_id" binding:"omitempty,uuid"`
}

// Availability GET /api/v1/export/availability (xlsx download)
func (h *ExportHandler) Availability(c *gin.Context) {
	var q exportWindow
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, codeBadInput, err.Error())
		return
	}

	f, err := h.svc.AvailabilityWorkbook(c.Request.Context(), q.From, q.To, q.TeacherID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("availability_%s_%s.xlsx", q.From, q.To)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(c.Writer); err != nil {
		// Headers are already on the wire; nothing useful left to send.
		_ = c.Error(err)
	}
}

// TeacherCalendar GET /api/v1/export/teachers/:id/calendar.ics (ICS feed)
func (h *ExportHandler) TeacherCalendar(c *gin.Context) {
	var q dto.LessonListRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, codeBadInput, err.Error())
		return
	}

	ics, err := h.svc.TeacherCalendar(c.Request.Context(), c.Param("id"), q.From, q.To)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="calendar.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}
