package repository

import "gorm.io/gorm"

// Repository aggregates all repositories behind one injection point.
type Repository struct {
	Teacher  TeacherRepository
	Template WeeklyTemplateRepository
	Lesson   LessonRepository
	Slot     SlotInstanceRepository
}

// NewRepository creates the Repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Teacher:  NewTeacherRepo(db),
		Template: NewWeeklyTemplateRepo(db),
		Lesson:   NewLessonRepo(db),
		Slot:     NewSlotInstanceRepo(db),
	}
}
