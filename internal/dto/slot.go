package dto

// ── Slot inventory & sync DTOs ──

// SlotSyncRequest parameters for one orchestrator run.
type SlotSyncRequest struct {
	StartDate string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	DaysAhead int     `json:"days_ahead" binding:"omitempty,min=1,max=90"`
	TeacherID *string `json:"teacher_id" binding:"omitempty,uuid"`
}

// SlotSyncError a single failed apply item; the batch continues past it.
type SlotSyncError struct {
	NaturalKey string `json:"natural_key"`
	Stage      string `json:"stage"` // create | update | deactivate
	Message    string `json:"message"`
}

// SlotSyncResult counts and per-item errors for one run.
type SlotSyncResult struct {
	Created     int             `json:"created"`
	Updated     int             `json:"updated"`
	Deactivated int             `json:"deactivated"`
	Errors      []SlotSyncError `json:"errors"`
}

// SlotListRequest inventory window query.
type SlotListRequest struct {
	From      string  `form:"from"       binding:"required,datetime=2006-01-02"`
	To        string  `form:"to"         binding:"required,datetime=2006-01-02"`
	TeacherID *string `form:"teacher_id" binding:"omitempty,uuid"`
}

// BlockSlotRequest reserve a time range as unavailable (vacation, personal
// hold). Block instances are protected from the sync engine.
type BlockSlotRequest struct {
	TeacherID string `json:"teacher_id" binding:"required,uuid"`
	Date      string `json:"date"       binding:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" binding:"required"` // "10:00"
	EndTime   string `json:"end_time"   binding:"required"` // "12:00"
}

// SlotResponse one slot instance.
type SlotResponse struct {
	ID                    string   `json:"id"`
	NaturalKey            string   `json:"natural_key"`
	TeacherID             string   `json:"teacher_id"`
	TeacherName           string   `json:"teacher_name,omitempty"`
	Date                  string   `json:"date"`
	StartTime             string   `json:"start_time"`
	EndTime               string   `json:"end_time"`
	Status                string   `json:"status"`
	CreatedFromTemplateID *string  `json:"created_from_template_id,omitempty"`
	IsLocked              bool     `json:"is_locked"`
	IsBlock               bool     `json:"is_block"`
	LinkedLessonIDs       []string `json:"linked_lesson_ids,omitempty"`
	CreatedAt             string   `json:"created_at"`
	UpdatedAt             string   `json:"updated_at"`
}

// RolloverResult outcome of one rollover invocation.
type RolloverResult struct {
	ClosedWeekStart string          `json:"closed_week_start"`
	NewWeekStart    string          `json:"new_week_start"`
	Sync            *SlotSyncResult `json:"sync"`
	LessonsCreated  int             `json:"lessons_created"`
	LessonsSkipped  int             `json:"lessons_skipped"`
}
