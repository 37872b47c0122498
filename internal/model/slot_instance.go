package model

import (
	"database/sql/driver"
	"fmt"
)

// ── Slot status enum with persistence-boundary locale mapping ──

// SlotStatus is the internal slot-instance status.
type SlotStatus string

const (
	SlotOpen     SlotStatus = "open"
	SlotClosed   SlotStatus = "closed"
	SlotCanceled SlotStatus = "canceled"
	SlotBlocked  SlotStatus = "blocked"
)

var slotStatusToDB = map[SlotStatus]string{
	SlotOpen:     "פתוח",
	SlotClosed:   "סגור",
	SlotCanceled: "מבוטל",
	SlotBlocked:  "חסום",
}

var slotStatusFromDB = func() map[string]SlotStatus {
	m := make(map[string]SlotStatus, len(slotStatusToDB)*2)
	for status, db := range slotStatusToDB {
		m[db] = status
		m[string(status)] = status
	}
	return m
}()

// Scan implements sql.Scanner.
func (s *SlotStatus) Scan(src interface{}) error {
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
		return fmt.Errorf("SlotStatus.Scan: unsupported type %T", src)
	}
	status, ok := slotStatusFromDB[raw]
	if !ok {
		return fmt.Errorf("SlotStatus.Scan: unknown status %q", raw)
	}
	*s = status
	return nil
}

// Value implements driver.Valuer.
func (s SlotStatus) Value() (driver.Value, error) {
	if s == "" {
		return nil, nil
	}
	db, ok := slotStatusToDB[s]
	if !ok {
		return nil, fmt.Errorf("SlotStatus.Value: unknown status %q", s)
	}
	return db, nil
}

// SlotNaturalKey builds the canonical idempotency key for a slot instance.
// Format: {teacherID}|{YYYY-MM-DD}|{HH:MM}. The pipe separator is canonical;
// older records written with underscores are migrated, not preserved.
func SlotNaturalKey(teacherID, date, startTime string) string {
	return teacherID + "|" + date + "|" + startTime
}

// SlotInstance maps to slot_instances: one dated, bookable availability
// window, generated from a weekly template or created manually by staff.
type SlotInstance struct {
	SlotID                string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"slot_id"`
	NaturalKey            string      `gorm:"type:varchar(120);not null;index"               json:"natural_key"`
	TeacherID             string      `gorm:"type:uuid;not null;index"                       json:"teacher_id"`
	Date                  DateOnly    `gorm:"type:date;not null;index"                       json:"date"`       // YYYY-MM-DD
	StartTime             string      `gorm:"type:varchar(5);not null"                       json:"start_time"` // HH:MM
	EndTime               string      `gorm:"type:varchar(5);not null"                       json:"end_time"`   // HH:MM
	Status                SlotStatus  `gorm:"type:varchar(20);not null"                      json:"status"`
	CreatedFromTemplateID *string     `gorm:"type:uuid"                                      json:"created_from_template_id,omitempty"`
	IsLocked              bool        `gorm:"not null;default:false"                         json:"is_locked"`
	IsBlock               bool        `gorm:"not null;default:false"                         json:"is_block"`
	LinkedLessonIDs       StringArray `gorm:"type:text[]"                                    json:"linked_lesson_ids,omitempty"`
	VersionedModel

	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

func (SlotInstance) TableName() string { return "slot_instances" }

// Protected reports whether the sync engine must never auto-update or
// auto-deactivate this instance. Manual or booking-driven state always wins
// over template drift.
func (s *SlotInstance) Protected() bool {
	return s.IsLocked || len(s.LinkedLessonIDs) > 0 || s.IsBlock
}

// HasLinkedLessons reports whether any lesson is booked against this slot.
func (s *SlotInstance) HasLinkedLessons() bool { return len(s.LinkedLessonIDs) > 0 }
