package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/dto"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/model"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/repository"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/interval"
)

// ── Slot sync module errors ──

var (
	// ErrSyncLoadFailed the initial bulk template/inventory load failed;
	// the whole run is aborted (unlike per-item apply failures).
	ErrSyncLoadFailed = errors.New("failed to load templates or inventory")

	ErrInvalidSyncWindow = errors.New("invalid sync window")

	// ErrSlotInstanceExists a live instance already holds the natural key;
	// a concurrent writer claimed it after the inventory was loaded.
	ErrSlotInstanceExists = errors.New("live slot instance already exists for natural key")
)

// SlotSyncService expands weekly templates over a window and reconciles the
// generated drafts with the live slot inventory.
type SlotSyncService interface {
	// Run executes one sync pass. Per-item apply failures are recorded in
	// the result and do not abort the batch. Re-running with unchanged
	// templates and no protected mutations yields zero changes.
	Run(ctx context.Context, req *dto.SlotSyncRequest) (*dto.SlotSyncResult, error)
}

type slotSyncService struct {
	repo      *repository.Repository
	conflicts ConflictService
	loc       *time.Location
	daysAhead int
	logger    *zap.Logger
}

// NewSlotSyncService creates a SlotSyncService instance.
func NewSlotSyncService(repo *repository.Repository, conflicts ConflictService, loc *time.Location, daysAhead int, logger *zap.Logger) SlotSyncService {
	return &slotSyncService{
		repo:      repo,
		conflicts: conflicts,
		loc:       loc,
		daysAhead: daysAhead,
		logger:    logger,
	}
}

// ════════════════════════════════════════════════════════════
// Run: expand, diff, apply
// ════════════════════════════════════════════════════════════

func (s *slotSyncService) Run(ctx context.Context, req *dto.SlotSyncRequest) (*dto.SlotSyncResult, error) {
	windowStart, err := interval.ParseDate(req.StartDate, s.loc)
	if err != nil {
		return nil, ErrInvalidSyncWindow
	}
	daysAhead := req.DaysAhead
	if daysAhead <= 0 {
		daysAhead = s.daysAhead
	}
	from := req.StartDate
	to := interval.FormatDate(windowStart.AddDate(0, 0, daysAhead-1))

	// 1. Bulk load. A failure here is fatal for the run: diffing against a
	// partial inventory would deactivate slots that merely failed to load.
	var (
		templates []model.WeeklyTemplate
		existing  []model.SlotInstance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		templates, err = s.repo.Template.ListActive(gctx, req.TeacherID)
		return err
	})
	g.Go(func() error {
		var err error
		existing, err = s.repo.Slot.ListByDateRange(gctx, from, to, req.TeacherID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("slot sync load failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSyncLoadFailed, err)
	}

	// 2. Diagnostic pass: overlapping open instances are reported, never
	// auto-resolved; staff untangle those by hand.
	s.reportInventoryOverlaps(existing)

	// 3. Expand and diff.
	drafts := generateSlotDrafts(templates, windowStart, daysAhead, s.loc)
	activeIDs := make(map[string]bool, len(templates))
	for _, tpl := range templates {
		activeIDs[tpl.TemplateID] = true
	}
	cs := diffSlotInventory(existing, drafts, activeIDs)

	s.logger.Info("slot sync diff computed",
		zap.String("window_start", from),
		zap.Int("days_ahead", daysAhead),
		zap.Int("drafts", len(drafts)),
		zap.Int("to_create", len(cs.toCreate)),
		zap.Int("to_update", len(cs.toUpdate)),
		zap.Int("to_deactivate", len(cs.toDeactivate)),
	)

	// 4. Apply, continue-on-error, each item keyed by its natural key.
	result := &dto.SlotSyncResult{Errors: make([]dto.SlotSyncError, 0)}

	for _, d := range cs.toCreate {
		if err := s.createInstance(ctx, d); err != nil {
			result.Errors = append(result.Errors, dto.SlotSyncError{
				NaturalKey: d.NaturalKey,
				Stage:      "create",
				Message:    err.Error(),
			})
			continue
		}
		result.Created++
	}

	for _, u := range cs.toUpdate {
		inst := u.existing
		templateID := u.draft.TemplateID
		inst.TeacherID = u.draft.TeacherID
		inst.Date = model.DateOnly(u.draft.Date)
		inst.StartTime = u.draft.StartTime
		inst.EndTime = u.draft.EndTime
		inst.NaturalKey = u.draft.NaturalKey
		inst.CreatedFromTemplateID = &templateID
		if err := s.repo.Slot.Update(ctx, inst); err != nil {
			result.Errors = append(result.Errors, dto.SlotSyncError{
				NaturalKey: u.draft.NaturalKey,
				Stage:      "update",
				Message:    err.Error(),
			})
			continue
		}
		result.Updated++
	}

	for _, inst := range cs.toDeactivate {
		inst.Status = model.SlotCanceled
		if err := s.repo.Slot.Update(ctx, inst); err != nil {
			result.Errors = append(result.Errors, dto.SlotSyncError{
				NaturalKey: inst.NaturalKey,
				Stage:      "deactivate",
				Message:    err.Error(),
			})
			continue
		}
		result.Deactivated++
	}

	s.logger.Info("slot sync applied",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("deactivated", result.Deactivated),
		zap.Int("errors", len(result.Errors)),
	)

	return result, nil
}

// createInstance creates one open instance, guarded against overlapping
// lessons. A confirmed conflict blocks the creation (fail closed); an
// inability to run the check does not (fail open): a transient fetch error
// must not leave availability silently closed.
func (s *slotSyncService) createInstance(ctx context.Context, d SlotDraft) error {
	// The inventory snapshot is from the start of the run; a concurrent
	// writer may have claimed the key since. The partial unique index would
	// reject the insert anyway, the lookup turns that into a readable error.
	if _, err := s.repo.Slot.GetByNaturalKey(ctx, d.NaturalKey); err == nil {
		return ErrSlotInstanceExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warn("natural-key lookup failed before slot create",
			zap.String("natural_key", d.NaturalKey), zap.Error(err))
	}

	conflicts, err := s.conflicts.FindLessonConflicts(ctx, d.TeacherID, d.Date, d.StartTime, d.EndTime)
	if err != nil {
		s.logger.Warn("slot-opening conflict check unavailable, creating anyway",
			zap.String("natural_key", d.NaturalKey),
			zap.Error(err),
		)
	} else if len(conflicts) > 0 {
		return &ConflictError{Conflicts: conflicts}
	}

	templateID := d.TemplateID
	inst := &model.SlotInstance{
		NaturalKey:            d.NaturalKey,
		TeacherID:             d.TeacherID,
		Date:                  model.DateOnly(d.Date),
		StartTime:             d.StartTime,
		EndTime:               d.EndTime,
		Status:                model.SlotOpen,
		CreatedFromTemplateID: &templateID,
	}
	return s.repo.Slot.Create(ctx, inst)
}

// reportInventoryOverlaps logs pairs of open instances for the same teacher
// and date whose ranges overlap.
func (s *slotSyncService) reportInventoryOverlaps(existing []model.SlotInstance) {
	byDay := make(map[string][]*model.SlotInstance)
	for i := range existing {
		inst := &existing[i]
		if inst.Status != model.SlotOpen {
			continue
		}
		key := inst.TeacherID + "|" + inst.Date.String()
		byDay[key] = append(byDay[key], inst)
	}

	for _, group := range byDay {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				ra, errA := interval.New(a.SlotID, interval.SourceSlot, a.Date.String(), a.StartTime, a.EndTime, "", s.loc)
				rb, errB := interval.New(b.SlotID, interval.SourceSlot, b.Date.String(), b.StartTime, b.EndTime, "", s.loc)
				if errA != nil || errB != nil {
					continue
				}
				if ra.Overlaps(rb) {
					s.logger.Warn("overlapping open slot instances in inventory",
						zap.String("teacher_id", a.TeacherID),
						zap.String("date", a.Date.String()),
						zap.String("slot_a", a.SlotID),
						zap.String("slot_b", b.SlotID),
					)
				}
			}
		}
	}
}
