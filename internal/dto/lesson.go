package dto

// ── Lesson DTOs ──

// CreateLessonRequest book a lesson; conflict-checked before creation.
type CreateLessonRequest struct {
	TeacherID       string `json:"teacher_id"       binding:"required,uuid"`
	StudentName     string `json:"student_name"     binding:"required,min=2,max=100"`
	Date            string `json:"date"             binding:"required,datetime=2006-01-02"`
	StartTime       string `json:"start_time"       binding:"required"` // "10:00"
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,min=15,max=480"`
	SlotID          string `json:"slot_id"          binding:"omitempty,uuid"` // book into an open slot
	Notes           string `json:"notes"            binding:"omitempty,max=500"`
}

// LessonListRequest lesson window query.
type LessonListRequest struct {
	From      string  `form:"from"       binding:"required,datetime=2006-01-02"`
	To        string  `form:"to"         binding:"required,datetime=2006-01-02"`
	TeacherID *string `form:"teacher_id" binding:"omitempty,uuid"`
}

// LessonResponse one lesson record.
type LessonResponse struct {
	ID              string        `json:"id"`
	TeacherID       string        `json:"teacher_id"`
	Teacher         *TeacherBrief `json:"teacher,omitempty"`
	StudentName     string        `json:"student_name"`
	Date            string        `json:"date"`
	StartTime       string        `json:"start_time"`
	EndTime         string        `json:"end_time"`
	DurationMinutes int           `json:"duration_minutes"`
	Status          string        `json:"status"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       string        `json:"created_at"`
	UpdatedAt       string        `json:"updated_at"`
}
