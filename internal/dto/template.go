package dto

// ── Weekly template DTOs ──

// CreateTemplateRequest create a recurring availability definition.
type CreateTemplateRequest struct {
	TeacherID       string  `json:"teacher_id"       binding:"required,uuid"`
	DayOfWeek       int     `json:"day_of_week"      binding:"min=0,max=6"`
	StartTime       string  `json:"start_time"       binding:"required"` // "16:00"
	EndTime         string  `json:"end_time"         binding:"required"` // "17:00"
	Type            string  `json:"type"             binding:"omitempty,oneof=open_slot fixed_lesson"`
	DurationMinutes int     `json:"duration_minutes" binding:"omitempty,min=15,max=480"`
	StudentName     *string `json:"student_name"     binding:"omitempty,max=100"`
}

// UpdateTemplateRequest partial template update.
type UpdateTemplateRequest struct {
	DayOfWeek       *int    `json:"day_of_week"      binding:"omitempty,min=0,max=6"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=15,max=480"`
	StudentName     *string `json:"student_name"     binding:"omitempty,max=100"`
	IsActive        *bool   `json:"is_active"`
}

// TemplateListRequest template list query.
type TemplateListRequest struct {
	TeacherID       *string `form:"teacher_id"       binding:"omitempty,uuid"`
	IncludeInactive bool    `form:"include_inactive"`
}

// TemplateResponse one weekly template.
type TemplateResponse struct {
	ID              string        `json:"id"`
	TeacherID       string        `json:"teacher_id"`
	Teacher         *TeacherBrief `json:"teacher,omitempty"`
	DayOfWeek       int           `json:"day_of_week"`
	StartTime       string        `json:"start_time"`
	EndTime         string        `json:"end_time"`
	Type            string        `json:"type"`
	DurationMinutes int           `json:"duration_minutes"`
	StudentName     *string       `json:"student_name,omitempty"`
	IsActive        bool          `json:"is_active"`
	CreatedAt       string        `json:"created_at"`
	UpdatedAt       string        `json:"updated_at"`
}

// TeacherBrief embedded teacher summary.
type TeacherBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
