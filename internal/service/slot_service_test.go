package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/dto"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/model"
)

func newSlotFixture() (*testRepos, SlotInventoryService) {
	repos := newTestRepos()
	return repos, NewSlotInventoryService(repos.repo, zap.NewNop())
}

func TestBlockCreatesProtectedInstance(t *testing.T) {
	repos, svc := newSlotFixture()

	resp, err := svc.Block(context.Background(), &dto.BlockSlotRequest{
		TeacherID: testTeacherID,
		Date:      "2026-09-07",
		StartTime: "10:00",
		EndTime:   "12:00",
	})
	if err != nil {
		t.Fatalf("Block returned error: %v", err)
	}
	if resp.Status != string(model.SlotBlocked) || !resp.IsBlock {
		t.Fatalf("unexpected block shape: %+v", resp)
	}

	slot := repos.slot.slots[resp.ID]
	if !slot.Protected() {
		t.Error("a block must be protected from the sync engine")
	}
}

func TestBlockRejectsInvalidRange(t *testing.T) {
	_, svc := newSlotFixture()
	_, err := svc.Block(context.Background(), &dto.BlockSlotRequest{
		TeacherID: testTeacherID,
		Date:      "2026-09-07",
		StartTime: "12:00",
		EndTime:   "10:00",
	})
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
}

func TestUnblockCancelsBlockOnly(t *testing.T) {
	repos, svc := newSlotFixture()
	block := instanceFor("s1", "", "2026-09-07", "10:00", "12:00")
	block.Status = model.SlotBlocked
	block.IsBlock = true
	repos.slot.slots["s1"] = &block
	regular := instanceFor("s2", "tpl-1", "2026-09-07", "16:00", "17:00")
	repos.slot.slots["s2"] = &regular

	resp, err := svc.Unblock(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Unblock returned error: %v", err)
	}
	if resp.Status != string(model.SlotCanceled) || resp.IsBlock {
		t.Fatalf("unexpected unblock result: %+v", resp)
	}

	if _, err := svc.Unblock(context.Background(), "s2"); !errors.Is(err, ErrSlotNotBlocked) {
		t.Fatalf("expected ErrSlotNotBlocked, got %v", err)
	}
	if _, err := svc.Unblock(context.Background(), "missing"); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
}

func TestUnblockRefusedWhileLessonsLinked(t *testing.T) {
	repos, svc := newSlotFixture()
	block := instanceFor("s1", "", "2026-09-07", "10:00", "12:00")
	block.Status = model.SlotBlocked
	block.IsBlock = true
	block.LinkedLessonIDs = model.StringArray{"l1"}
	repos.slot.slots["s1"] = &block

	_, err := svc.Unblock(context.Background(), "s1")
	if !errors.Is(err, ErrSlotHasLinkedLessons) {
		t.Fatalf("expected ErrSlotHasLinkedLessons, got %v", err)
	}
	after := repos.slot.slots["s1"]
	if !after.IsBlock || after.Status != model.SlotBlocked {
		t.Errorf("refused unblock must leave the block untouched: %+v", after)
	}
}

func TestSetLockToggles(t *testing.T) {
	repos, svc := newSlotFixture()
	inst := instanceFor("s1", "tpl-1", "2026-09-07", "16:00", "17:00")
	repos.slot.slots["s1"] = &inst

	resp, err := svc.SetLock(context.Background(), "s1", true)
	if err != nil {
		t.Fatalf("SetLock returned error: %v", err)
	}
	if !resp.IsLocked || !repos.slot.slots["s1"].Protected() {
		t.Error("locked slot must be protected")
	}

	resp, err = svc.SetLock(context.Background(), "s1", false)
	if err != nil {
		t.Fatalf("SetLock returned error: %v", err)
	}
	if resp.IsLocked {
		t.Error("lock not released")
	}
}

func TestListSlotsWindow(t *testing.T) {
	repos, svc := newSlotFixture()
	in := instanceFor("s1", "tpl-1", "2026-09-07", "16:00", "17:00")
	out := instanceFor("s2", "tpl-1", "2026-10-01", "16:00", "17:00")
	repos.slot.slots["s1"] = &in
	repos.slot.slots["s2"] = &out

	got, err := svc.List(context.Background(), &dto.SlotListRequest{From: "2026-09-01", To: "2026-09-30"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "s1" {
		t.Fatalf("expected only the in-window slot, got %+v", got)
	}
	if got[0].NaturalKey == "" {
		t.Error("response must carry the natural key")
	}
}
