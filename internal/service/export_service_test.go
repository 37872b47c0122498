package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/model"
)

func newExportFixture() (*testRepos, ExportService) {
	repos := newTestRepos()
	repos.teacher.teachers[testTeacherID] = &model.Teacher{
		TeacherID: testTeacherID,
		Name:      "Michal",
		IsActive:  true,
	}
	svc := NewExportService(repos.repo, nil, 10*time.Minute, testLocation(), zap.NewNop())
	return repos, svc
}

func TestAvailabilityWorkbookRendersInventory(t *testing.T) {
	repos, svc := newExportFixture()
	open := instanceFor("s1", "tpl-1", "2026-09-07", "16:00", "17:00")
	cancelled := instanceFor("s2", "tpl-1", "2026-09-08", "16:00", "17:00")
	cancelled.Status = model.SlotCanceled
	repos.slot.slots["s1"] = &open
	repos.slot.slots["s2"] = &cancelled

	f, err := svc.AvailabilityWorkbook(context.Background(), "2026-09-01", "2026-09-30", nil)
	if err != nil {
		t.Fatalf("AvailabilityWorkbook returned error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Availability")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// Header plus the single live instance; cancelled rows are omitted.
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Date" {
		t.Errorf("header row = %v", rows[0])
	}
	got := rows[1]
	if got[0] != "2026-09-07" || got[1] != "Monday" || got[2] != "Michal" || got[5] != "Open" {
		t.Errorf("unexpected data row: %v", got)
	}
}

func TestTeacherCalendarIncludesLessonsAndBlocks(t *testing.T) {
	repos, svc := newExportFixture()
	addLesson(repos, "l1", "2026-09-07", "16:00", 60, model.LessonScheduled)
	addLesson(repos, "l2", "2026-09-08", "16:00", 60, model.LessonCancelled)
	block := instanceFor("s1", "", "2026-09-09", "10:00", "12:00")
	block.Status = model.SlotBlocked
	block.IsBlock = true
	repos.slot.slots["s1"] = &block
	openSlot := instanceFor("s2", "tpl-1", "2026-09-10", "16:00", "17:00")
	repos.slot.slots["s2"] = &openSlot

	ics, err := svc.TeacherCalendar(context.Background(), testTeacherID, "2026-09-01", "2026-09-30")
	if err != nil {
		t.Fatalf("TeacherCalendar returned error: %v", err)
	}

	if !strings.Contains(ics, "BEGIN:VCALENDAR") {
		t.Fatal("missing calendar envelope")
	}
	if !strings.Contains(ics, "lesson-l1@raz-tutoring") {
		t.Error("scheduled lesson missing from feed")
	}
	if strings.Contains(ics, "lesson-l2@raz-tutoring") {
		t.Error("cancelled lesson must not appear in feed")
	}
	if !strings.Contains(ics, "block-s1@raz-tutoring") {
		t.Error("block missing from feed")
	}
	if strings.Contains(ics, "block-s2") {
		t.Error("open slot must not appear as a block")
	}
	if !strings.Contains(ics, "Lesson: Dana") {
		t.Error("lesson summary missing")
	}
}
