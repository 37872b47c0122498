package service

import (
	"testing"
	"time"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/model"
)

func openTemplate(id, teacherID string, day int, start, end string) model.WeeklyTemplate {
	return model.WeeklyTemplate{
		TemplateID: id,
		TeacherID:  teacherID,
		DayOfWeek:  day,
		StartTime:  start,
		EndTime:    end,
		Type:       model.TemplateOpenSlot,
		IsActive:   true,
	}
}

func mustDate(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", date, testLocation())
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	return d
}

func TestGenerateSlotDraftsTwoWeekWindow(t *testing.T) {
	// Monday template expanded from a Monday over 14 days: the window end
	// is exclusive, so exactly the Mondays of week 0 and week 1 appear.
	tpls := []model.WeeklyTemplate{
		openTemplate("tpl-1", testTeacherID, 1, "16:00", "17:00"),
	}
	windowStart := mustDate(t, "2026-09-07") // Monday

	drafts := generateSlotDrafts(tpls, windowStart, 14, testLocation())
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d: %+v", len(drafts), drafts)
	}
	if drafts[0].Date != "2026-09-07" || drafts[1].Date != "2026-09-14" {
		t.Errorf("expected occurrences 7 days apart, got %s and %s", drafts[0].Date, drafts[1].Date)
	}
	wantKey := testTeacherID + "|2026-09-07|16:00"
	if drafts[0].NaturalKey != wantKey {
		t.Errorf("natural key = %q, want %q", drafts[0].NaturalKey, wantKey)
	}
	if drafts[0].StartTime != "16:00" || drafts[0].EndTime != "17:00" {
		t.Errorf("unexpected clock times: %+v", drafts[0])
	}
	if drafts[0].TemplateID != "tpl-1" {
		t.Errorf("draft must carry its template id, got %q", drafts[0].TemplateID)
	}
}

func TestGenerateSlotDraftsMidWeekWindowStart(t *testing.T) {
	// Window opens on a Wednesday; the Monday template's first occurrence
	// is the following Monday.
	tpls := []model.WeeklyTemplate{
		openTemplate("tpl-1", testTeacherID, 1, "16:00", "17:00"),
	}
	windowStart := mustDate(t, "2026-09-09") // Wednesday

	drafts := generateSlotDrafts(tpls, windowStart, 7, testLocation())
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(drafts))
	}
	if drafts[0].Date != "2026-09-14" {
		t.Errorf("expected next Monday 2026-09-14, got %s", drafts[0].Date)
	}
}

func TestGenerateSlotDraftsSkipsFixedLessonTemplates(t *testing.T) {
	student := "Yoav"
	tpls := []model.WeeklyTemplate{
		{
			TemplateID:  "tpl-fixed",
			TeacherID:   testTeacherID,
			DayOfWeek:   1,
			StartTime:   "16:00",
			EndTime:     "17:00",
			Type:        model.TemplateFixedLesson,
			StudentName: &student,
			IsActive:    true,
		},
	}
	drafts := generateSlotDrafts(tpls, mustDate(t, "2026-09-07"), 14, testLocation())
	if len(drafts) != 0 {
		t.Fatalf("fixed-lesson templates must not produce slot drafts, got %d", len(drafts))
	}
}

func TestGenerateSlotDraftsSkipsMalformedTemplates(t *testing.T) {
	cases := []struct {
		name string
		tpl  model.WeeklyTemplate
	}{
		{"missing teacher", openTemplate("t1", "", 1, "16:00", "17:00")},
		{"missing start", openTemplate("t2", testTeacherID, 1, "", "17:00")},
		{"inverted clocks", openTemplate("t3", testTeacherID, 1, "17:00", "16:00")},
		{"day out of range", openTemplate("t4", testTeacherID, 7, "16:00", "17:00")},
		{"unparseable start", openTemplate("t5", testTeacherID, 1, "half past", "17:00")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			drafts := generateSlotDrafts([]model.WeeklyTemplate{tc.tpl}, mustDate(t, "2026-09-07"), 14, testLocation())
			if len(drafts) != 0 {
				t.Fatalf("malformed template must be skipped, got %d drafts", len(drafts))
			}
		})
	}
}

func TestGenerateSlotDraftsDeterministic(t *testing.T) {
	tpls := []model.WeeklyTemplate{
		openTemplate("tpl-1", testTeacherID, 0, "09:00", "10:00"),
		openTemplate("tpl-2", testTeacherID, 3, "16:00", "17:00"),
		openTemplate("tpl-3", "another-teacher", 3, "16:00", "17:00"),
	}
	windowStart := mustDate(t, "2026-09-06") // Sunday

	first := generateSlotDrafts(tpls, windowStart, 14, testLocation())
	second := generateSlotDrafts(tpls, windowStart, 14, testLocation())
	if len(first) != len(second) {
		t.Fatalf("non-deterministic draft count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("non-deterministic draft at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
	// Two templates for the same teacher, 14-day window: 2 occurrences each,
	// plus 2 for the second teacher.
	if len(first) != 6 {
		t.Fatalf("expected 6 drafts, got %d", len(first))
	}
}

func TestGenerateSlotDraftsEmptyWindow(t *testing.T) {
	tpls := []model.WeeklyTemplate{
		openTemplate("tpl-1", testTeacherID, 1, "16:00", "17:00"),
	}
	if got := generateSlotDrafts(tpls, mustDate(t, "2026-09-07"), 0, testLocation()); len(got) != 0 {
		t.Fatalf("zero-day window must produce nothing, got %d", len(got))
	}
}

func TestWeekStartAlignsToSunday(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2026-09-06", "2026-09-06"}, // Sunday maps to itself
		{"2026-09-07", "2026-09-06"}, // Monday
		{"2026-09-12", "2026-09-06"}, // Saturday
	}
	for _, tc := range cases {
		got := weekStart(mustDate(t, tc.in))
		if got.Format("2006-01-02") != tc.want {
			t.Errorf("weekStart(%s) = %s, want %s", tc.in, got.Format("2006-01-02"), tc.want)
		}
		if got.Hour() != 0 || got.Minute() != 0 {
			t.Errorf("weekStart(%s) not at midnight: %v", tc.in, got)
		}
	}
}
