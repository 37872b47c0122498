package service

import (
	"testing"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/model"
)

func draftFor(templateID, date, start, end string) SlotDraft {
	return SlotDraft{
		NaturalKey: model.SlotNaturalKey(testTeacherID, date, start),
		TeacherID:  testTeacherID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		TemplateID: templateID,
	}
}

func instanceFor(slotID, templateID, date, start, end string) model.SlotInstance {
	tplID := &templateID
	if templateID == "" {
		tplID = nil
	}
	return model.SlotInstance{
		SlotID:                slotID,
		NaturalKey:            model.SlotNaturalKey(testTeacherID, date, start),
		TeacherID:             testTeacherID,
		Date:                  model.DateOnly(date),
		StartTime:             start,
		EndTime:               end,
		Status:                model.SlotOpen,
		CreatedFromTemplateID: tplID,
	}
}

func TestDiffCreatesMissingDrafts(t *testing.T) {
	drafts := []SlotDraft{
		draftFor("tpl-1", "2026-09-07", "16:00", "17:00"),
		draftFor("tpl-1", "2026-09-14", "16:00", "17:00"),
	}
	existing := []model.SlotInstance{
		instanceFor("s1", "tpl-1", "2026-09-07", "16:00", "17:00"),
	}

	cs := diffSlotInventory(existing, drafts, map[string]bool{"tpl-1": true})
	if len(cs.toCreate) != 1 || cs.toCreate[0].Date != "2026-09-14" {
		t.Fatalf("expected one create for 2026-09-14, got %+v", cs.toCreate)
	}
	if len(cs.toUpdate) != 0 || len(cs.toDeactivate) != 0 {
		t.Fatalf("matching instance must be untouched: %+v", cs)
	}
}

func TestDiffIsIdempotentWhenNothingChanged(t *testing.T) {
	drafts := []SlotDraft{
		draftFor("tpl-1", "2026-09-07", "16:00", "17:00"),
	}
	existing := []model.SlotInstance{
		instanceFor("s1", "tpl-1", "2026-09-07", "16:00", "17:00"),
	}

	cs := diffSlotInventory(existing, drafts, map[string]bool{"tpl-1": true})
	if len(cs.toCreate)+len(cs.toUpdate)+len(cs.toDeactivate) != 0 {
		t.Fatalf("second pass over an in-sync inventory must be a no-op, got %+v", cs)
	}
}

func TestDiffUpdatesDriftedUnprotectedInstance(t *testing.T) {
	drafts := []SlotDraft{
		draftFor("tpl-1", "2026-09-07", "16:00", "17:30"),
	}
	existing := []model.SlotInstance{
		instanceFor("s1", "tpl-1", "2026-09-07", "16:00", "17:00"),
	}

	cs := diffSlotInventory(existing, drafts, map[string]bool{"tpl-1": true})
	if len(cs.toUpdate) != 1 {
		t.Fatalf("expected one update, got %+v", cs)
	}
	if cs.toUpdate[0].draft.EndTime != "17:30" || cs.toUpdate[0].existing.SlotID != "s1" {
		t.Fatalf("unexpected update pairing: %+v", cs.toUpdate[0])
	}
}

func TestDiffNeverTouchesProtectedInstances(t *testing.T) {
	protect := []struct {
		name  string
		shape func(*model.SlotInstance)
	}{
		{"locked", func(s *model.SlotInstance) { s.IsLocked = true }},
		{"lesson-linked", func(s *model.SlotInstance) { s.LinkedLessonIDs = model.StringArray{"l1"} }},
		{"block", func(s *model.SlotInstance) { s.IsBlock = true }},
	}

	for _, tc := range protect {
		t.Run(tc.name+"/drifted", func(t *testing.T) {
			inst := instanceFor("s1", "tpl-1", "2026-09-07", "16:00", "17:00")
			tc.shape(&inst)
			drafts := []SlotDraft{draftFor("tpl-1", "2026-09-07", "16:00", "18:00")}

			cs := diffSlotInventory([]model.SlotInstance{inst}, drafts, map[string]bool{"tpl-1": true})
			if len(cs.toUpdate) != 0 {
				t.Fatalf("protected instance must not be updated: %+v", cs.toUpdate)
			}
		})

		t.Run(tc.name+"/orphaned", func(t *testing.T) {
			inst := instanceFor("s1", "tpl-1", "2026-09-07", "16:00", "17:00")
			tc.shape(&inst)

			cs := diffSlotInventory([]model.SlotInstance{inst}, nil, map[string]bool{})
			if len(cs.toDeactivate) != 0 {
				t.Fatalf("protected instance must not be deactivated: %+v", cs.toDeactivate)
			}
		})
	}
}

func TestDiffDeactivatesOnlyOrphansOfInactiveTemplates(t *testing.T) {
	existing := []model.SlotInstance{
		// Orphan: template no longer active, no drafts cover it.
		instanceFor("s1", "tpl-gone", "2026-09-07", "16:00", "17:00"),
		// Manual instance: never deactivated by the engine.
		instanceFor("s2", "", "2026-09-07", "18:00", "19:00"),
		// Backed by a still-active template that produced no draft here
		// (e.g. teacher-filtered run): left alone.
		instanceFor("s3", "tpl-live", "2026-09-08", "16:00", "17:00"),
	}

	cs := diffSlotInventory(existing, nil, map[string]bool{"tpl-live": true})
	if len(cs.toDeactivate) != 1 || cs.toDeactivate[0].SlotID != "s1" {
		t.Fatalf("expected only the orphan s1 deactivated, got %+v", cs.toDeactivate)
	}
}

func TestDiffIgnoresCancelledInstances(t *testing.T) {
	cancelled := instanceFor("s1", "tpl-1", "2026-09-07", "16:00", "17:00")
	cancelled.Status = model.SlotCanceled

	drafts := []SlotDraft{draftFor("tpl-1", "2026-09-07", "16:00", "17:00")}
	cs := diffSlotInventory([]model.SlotInstance{cancelled}, drafts, map[string]bool{"tpl-1": true})

	// A cancelled instance is not live inventory: the draft recreates it.
	if len(cs.toCreate) != 1 {
		t.Fatalf("expected recreation over the cancelled instance, got %+v", cs)
	}
	if len(cs.toDeactivate) != 0 {
		t.Fatalf("cancelled instances must never be re-deactivated: %+v", cs.toDeactivate)
	}
}
