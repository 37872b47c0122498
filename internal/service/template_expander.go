package service

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/model"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/interval"
)

// SlotDraft is one dated occurrence generated from a weekly template,
// not yet persisted. Its natural key is the idempotency identity used to
// diff against the live inventory.
type SlotDraft struct {
	NaturalKey string
	TeacherID  string
	Date       string // YYYY-MM-DD
	StartTime  string // HH:MM
	EndTime    string // HH:MM
	TemplateID string
}

// generateSlotDrafts deterministically expands active open-slot templates
// into dated drafts over [windowStart, windowStart+daysAhead). Templates
// with missing or malformed required fields are skipped, not fatal.
// Identical inputs always produce the identical ordered draft list; that is
// what makes the diff reproducible and the sync idempotent.
func generateSlotDrafts(templates []model.WeeklyTemplate, windowStart time.Time, daysAhead int, loc *time.Location) []SlotDraft {
	drafts := make([]SlotDraft, 0)

	for i := range templates {
		tpl := &templates[i]
		if tpl.Type != model.TemplateOpenSlot {
			continue
		}
		if !templateComplete(tpl) {
			continue
		}

		for _, occ := range templateOccurrences(tpl, windowStart, daysAhead, loc) {
			date := interval.FormatDate(occ)
			drafts = append(drafts, SlotDraft{
				NaturalKey: model.SlotNaturalKey(tpl.TeacherID, date, tpl.StartTime),
				TeacherID:  tpl.TeacherID,
				Date:       date,
				StartTime:  tpl.StartTime,
				EndTime:    tpl.EndTime,
				TemplateID: tpl.TemplateID,
			})
		}
	}

	return drafts
}

// templateOccurrences expands one template's weekly recurrence inside the
// window. DTSTART is the first date on/after windowStart matching the
// template's day of week; the rule then steps in 7-day increments up to the
// exclusive window end.
func templateOccurrences(tpl *model.WeeklyTemplate, windowStart time.Time, daysAhead int, loc *time.Location) []time.Time {
	if daysAhead <= 0 {
		return nil
	}

	startClock, err := time.ParseInLocation("15:04", tpl.StartTime, loc)
	if err != nil {
		return nil
	}

	first := firstOnOrAfter(windowStart, time.Weekday(tpl.DayOfWeek))
	dtstart := time.Date(first.Year(), first.Month(), first.Day(),
		startClock.Hour(), startClock.Minute(), 0, 0, loc)

	// Window end is exclusive: the last included day is windowStart+daysAhead-1.
	lastDay := windowStart.AddDate(0, 0, daysAhead-1)
	until := time.Date(lastDay.Year(), lastDay.Month(), lastDay.Day(), 23, 59, 59, 0, loc)
	if dtstart.After(until) {
		return nil
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.WEEKLY,
		Dtstart: dtstart,
		Until:   until,
	})
	if err != nil {
		return nil
	}

	return rule.All()
}

// templateComplete reports whether the required expansion fields are present.
func templateComplete(tpl *model.WeeklyTemplate) bool {
	if tpl.TeacherID == "" || tpl.StartTime == "" || tpl.EndTime == "" {
		return false
	}
	if tpl.DayOfWeek < 0 || tpl.DayOfWeek > 6 {
		return false
	}
	if tpl.StartTime >= tpl.EndTime {
		return false
	}
	return true
}

// firstOnOrAfter returns the first date on/after t whose weekday matches.
func firstOnOrAfter(t time.Time, weekday time.Weekday) time.Time {
	offset := (int(weekday) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset)
}

// weekStart returns the Sunday-aligned start of t's week at midnight in
// t's location.
func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}
