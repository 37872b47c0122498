package service

import (
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/model"
)

// slotUpdate pairs a stale existing instance with the draft that supersedes
// its template-derived fields.
type slotUpdate struct {
	existing *model.SlotInstance
	draft    SlotDraft
}

// slotChangeSet is the output of diffing generated drafts against the live
// inventory.
type slotChangeSet struct {
	toCreate     []SlotDraft
	toUpdate     []slotUpdate
	toDeactivate []*model.SlotInstance
}

// diffSlotInventory compares the generated drafts with the existing
// inventory by natural key. Pure function:
//
//   - toCreate: drafts with no live matching instance.
//   - toUpdate: matched instances, not protected, whose template-derived
//     fields differ from the draft.
//   - toDeactivate: live instances absent from the draft set whose backing
//     template is no longer active (orphans), and not protected.
//
// Protected instances (locked, lesson-linked, or block) appear in none of
// the three sets regardless of template drift.
func diffSlotInventory(existing []model.SlotInstance, drafts []SlotDraft, activeTemplateIDs map[string]bool) slotChangeSet {
	var cs slotChangeSet

	byKey := make(map[string]*model.SlotInstance, len(existing))
	for i := range existing {
		inst := &existing[i]
		if inst.Status == model.SlotCanceled {
			// Deactivated instances are retained in storage but are not
			// part of the live inventory identity.
			continue
		}
		byKey[inst.NaturalKey] = inst
	}

	draftKeys := make(map[string]bool, len(drafts))
	for _, d := range drafts {
		draftKeys[d.NaturalKey] = true

		inst, ok := byKey[d.NaturalKey]
		if !ok {
			cs.toCreate = append(cs.toCreate, d)
			continue
		}
		if inst.Protected() {
			continue
		}
		if slotDiffers(inst, d) {
			cs.toUpdate = append(cs.toUpdate, slotUpdate{existing: inst, draft: d})
		}
	}

	for i := range existing {
		inst := &existing[i]
		if inst.Status == model.SlotCanceled {
			continue
		}
		if draftKeys[inst.NaturalKey] {
			continue
		}
		if inst.Protected() {
			continue
		}
		// Only orphans are deactivated: instances whose backing template was
		// deactivated or deleted. Manual instances (no template reference)
		// and instances of still-active templates are left alone.
		if inst.CreatedFromTemplateID == nil {
			continue
		}
		if activeTemplateIDs[*inst.CreatedFromTemplateID] {
			continue
		}
		cs.toDeactivate = append(cs.toDeactivate, inst)
	}

	return cs
}

// slotDiffers reports whether the template-derived fields diverge.
func slotDiffers(inst *model.SlotInstance, d SlotDraft) bool {
	if inst.TeacherID != d.TeacherID ||
		inst.Date.String() != d.Date ||
		inst.StartTime != d.StartTime ||
		inst.EndTime != d.EndTime {
		return true
	}
	if inst.CreatedFromTemplateID == nil {
		return d.TemplateID != ""
	}
	return *inst.CreatedFromTemplateID != d.TemplateID
}
