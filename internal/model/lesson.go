package model

import (
	"database/sql/driver"
	"fmt"
)

// ── Lesson status enum with persistence-boundary locale mapping ──
//
// The booking records predate this service and store Hebrew status values.
// All internal logic operates on the enum; the Hebrew strings exist only in
// the Scanner/Valuer below.

// LessonStatus is the internal lesson lifecycle status.
type LessonStatus string

const (
	LessonScheduled     LessonStatus = "scheduled"
	LessonCompleted     LessonStatus = "completed"
	LessonCancelled     LessonStatus = "cancelled"
	LessonPendingCancel LessonStatus = "pending_cancel"
	LessonNoShow        LessonStatus = "no_show"
)

// lessonStatusToDB maps the enum to the stored Hebrew value.
var lessonStatusToDB = map[LessonStatus]string{
	LessonScheduled:     "מתוכנן",
	LessonCompleted:     "התקיים",
	LessonCancelled:     "בוטל",
	LessonPendingCancel: "ממתין לביטול",
	LessonNoShow:        "לא הגיע",
}

// lessonStatusFromDB accepts both the Hebrew stored values and the English
// enum values (records written before the column was normalized).
var lessonStatusFromDB = func() map[string]LessonStatus {
	m := make(map[string]LessonStatus, len(lessonStatusToDB)*2)
	for status, db := range lessonStatusToDB {
		m[db] = status
		m[string(status)] = status
	}
	return m
}()

// Scan implements sql.Scanner.
func (s *LessonStatus) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	case nil:
		*s = ""
		return nil
	default:
		return fmt.Errorf("LessonStatus.Scan: unsupported type %T", src)
	}
	status, ok := lessonStatusFromDB[raw]
	if !ok {
		return fmt.Errorf("LessonStatus.Scan: unknown status %q", raw)
	}
	*s = status
	return nil
}

// Value implements driver.Valuer.
func (s LessonStatus) Value() (driver.Value, error) {
	if s == "" {
		return nil, nil
	}
	db, ok := lessonStatusToDB[s]
	if !ok {
		return nil, fmt.Errorf("LessonStatus.Value: unknown status %q", s)
	}
	return db, nil
}

// ExcludedFromConflicts reports whether a lesson in this status is ignored
// by conflict detection.
func (s LessonStatus) ExcludedFromConflicts() bool {
	return s == LessonCancelled || s == LessonPendingCancel
}

// Lesson maps to the lessons table.
type Lesson struct {
	LessonID        string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"lesson_id"`
	TeacherID       string       `gorm:"type:uuid;not null;index"                       json:"teacher_id"`
	StudentName     string       `gorm:"type:varchar(100);not null"                     json:"student_name"`
	Date            DateOnly     `gorm:"type:date;not null;index"                       json:"date"`       // YYYY-MM-DD
	StartTime       string       `gorm:"type:varchar(5);not null"                       json:"start_time"` // HH:MM
	DurationMinutes int          `gorm:"type:smallint;not null"                         json:"duration_minutes"`
	Status          LessonStatus `gorm:"type:varchar(20);not null"                      json:"status"`
	Notes           string       `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	VersionedModel

	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

func (Lesson) TableName() string { return "lessons" }
