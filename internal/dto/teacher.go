package dto

// ── Teacher registry DTOs ──

// CreateTeacherRequest register a teacher.
type CreateTeacherRequest struct {
	Name  string `json:"name"  binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UpdateTeacherRequest partial teacher update.
type UpdateTeacherRequest struct {
	Name     *string `json:"name"  binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	IsActive *bool   `json:"is_active"`
}

// TeacherResponse one teacher record.
type TeacherResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
