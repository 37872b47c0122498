package model

// TemplateType distinguishes what a weekly template materializes into.
type TemplateType string

const (
	// TemplateOpenSlot generates bookable slot instances.
	TemplateOpenSlot TemplateType = "open_slot"
	// TemplateFixedLesson generates a recurring lesson for a standing student.
	TemplateFixedLesson TemplateType = "fixed_lesson"
)

// WeeklyTemplate maps to weekly_templates. The source of truth for
// recurring availability; expanded into dated slot instances (or fixed
// lessons) over the rolling open window.
type WeeklyTemplate struct {
	TemplateID      string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"template_id"`
	TeacherID       string       `gorm:"type:uuid;not null;index"                       json:"teacher_id"`
	DayOfWeek       int          `gorm:"type:smallint;not null"                         json:"day_of_week"` // 0=Sunday .. 6=Saturday
	StartTime       string       `gorm:"type:varchar(5);not null"                       json:"start_time"`  // HH:MM
	EndTime         string       `gorm:"type:varchar(5);not null"                       json:"end_time"`    // HH:MM
	Type            TemplateType `gorm:"type:varchar(20);not null;default:'open_slot'"  json:"type"`
	DurationMinutes int          `gorm:"type:smallint;not null;default:60"              json:"duration_minutes"`
	StudentName     *string      `gorm:"type:varchar(100)"                              json:"student_name,omitempty"` // fixed_lesson only
	IsActive        bool         `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

func (WeeklyTemplate) TableName() string { return "weekly_templates" }
