package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/service"
	apperrors "github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/errors"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/response"
)

// Handler aggregates all HTTP handlers behind one injection point.
type Handler struct {
	Teacher  *TeacherHandler
	Template *TemplateHandler
	Lesson   *LessonHandler
	Slot     *SlotHandler
	Conflict *ConflictHandler
	Export   *ExportHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Services) *Handler {
	return &Handler{
		Teacher:  &TeacherHandler{svc: svc.Teacher},
		Template: &TemplateHandler{svc: svc.Template},
		Lesson:   &LessonHandler{svc: svc.Lesson},
		Slot:     &SlotHandler{slots: svc.Slot, sync: svc.Sync, rollover: svc.Rollover},
		Conflict: &ConflictHandler{svc: svc.Conflict},
		Export:   &ExportHandler{svc: svc.Export},
	}
}

// ── Error code blocks ──
//
// 20xxx scheduling domain, 50000 unclassified.
const (
	codeBadInput        = 20001
	codeNotFound        = 20404
	codeConflict        = 20901
	codeStateConflict   = 20902
	codeVersionConflict = 20903
	codeCheckDown       = 20503
)

// writeServiceError maps service sentinel errors to the response envelope.
func writeServiceError(c *gin.Context, err error) {
	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		response.Conflict(c, codeConflict, "scheduling conflict", conflictErr.Conflicts)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrInvalidLessonInput),
		errors.Is(err, service.ErrInvalidTemplateInput),
		errors.Is(err, service.ErrInvalidSyncWindow):
		response.BadRequest(c, codeBadInput, err.Error())

	case errors.Is(err, service.ErrLessonNotFound),
		errors.Is(err, service.ErrSlotNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, codeNotFound, err.Error())

	case errors.Is(err, service.ErrSlotNotBookable),
		errors.Is(err, service.ErrSlotNotBlocked),
		errors.Is(err, service.ErrSlotHasLinkedLessons),
		errors.Is(err, service.ErrLessonNotCancelable):
		response.Error(c, http.StatusConflict, codeStateConflict, err.Error())

	case errors.Is(err, apperrors.ErrOptimisticLock):
		response.Error(c, http.StatusConflict, codeVersionConflict, "record was modified concurrently, retry")

	case errors.Is(err, service.ErrConflictCheckFailed),
		errors.Is(err, service.ErrSyncLoadFailed):
		response.Error(c, http.StatusServiceUnavailable, codeCheckDown, err.Error())

	default:
		response.InternalError(c)
	}
}
