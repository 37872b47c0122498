package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/model"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/repository"
)

// Map-backed repository fakes. Each mock exposes error hooks so tests can
// simulate storage failures on specific operations.

func testLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Jerusalem")
	if err != nil {
		panic(err)
	}
	return loc
}

// ── Teacher ──

type mockTeacherRepo struct {
	teachers map[string]*model.Teacher
	getErr   error
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	t, ok := m.teachers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *mockTeacherRepo) List(_ context.Context, includeInactive bool) ([]model.Teacher, error) {
	out := make([]model.Teacher, 0, len(m.teachers))
	for _, t := range m.teachers {
		if !includeInactive && !t.IsActive {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	if teacher.TeacherID == "" {
		teacher.TeacherID = fmt.Sprintf("teacher-%d", len(m.teachers)+1)
	}
	cp := *teacher
	m.teachers[teacher.TeacherID] = &cp
	return nil
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	cp := *teacher
	m.teachers[teacher.TeacherID] = &cp
	return nil
}

// ── Weekly template ──

type mockTemplateRepo struct {
	templates map[string]*model.WeeklyTemplate
	listErr   error
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{templates: make(map[string]*model.WeeklyTemplate)}
}

func (m *mockTemplateRepo) Create(_ context.Context, tpl *model.WeeklyTemplate) error {
	if tpl.TemplateID == "" {
		tpl.TemplateID = fmt.Sprintf("tpl-%d", len(m.templates)+1)
	}
	cp := *tpl
	m.templates[tpl.TemplateID] = &cp
	return nil
}

func (m *mockTemplateRepo) GetByID(_ context.Context, id string) (*model.WeeklyTemplate, error) {
	tpl, ok := m.templates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *tpl
	return &cp, nil
}

func (m *mockTemplateRepo) ListActive(ctx context.Context, teacherID *string) ([]model.WeeklyTemplate, error) {
	return m.List(ctx, teacherID, false)
}

func (m *mockTemplateRepo) List(_ context.Context, teacherID *string, includeInactive bool) ([]model.WeeklyTemplate, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.WeeklyTemplate, 0, len(m.templates))
	for _, tpl := range m.templates {
		if !includeInactive && !tpl.IsActive {
			continue
		}
		if teacherID != nil && *teacherID != "" && tpl.TeacherID != *teacherID {
			continue
		}
		out = append(out, *tpl)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		if a.TeacherID != b.TeacherID {
			return a.TeacherID < b.TeacherID
		}
		if a.DayOfWeek != b.DayOfWeek {
			return a.DayOfWeek < b.DayOfWeek
		}
		return a.StartTime < b.StartTime
	})
	return out, nil
}

func (m *mockTemplateRepo) Update(_ context.Context, tpl *model.WeeklyTemplate) error {
	cp := *tpl
	m.templates[tpl.TemplateID] = &cp
	return nil
}

func (m *mockTemplateRepo) Deactivate(_ context.Context, id string, _ string) error {
	tpl, ok := m.templates[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	tpl.IsActive = false
	return nil
}

// ── Lesson ──

type mockLessonRepo struct {
	lessons   map[string]*model.Lesson
	listErr   error
	createErr error
}

func newMockLessonRepo() *mockLessonRepo {
	return &mockLessonRepo{lessons: make(map[string]*model.Lesson)}
}

func (m *mockLessonRepo) Create(_ context.Context, lesson *model.Lesson) error {
	if m.createErr != nil {
		return m.createErr
	}
	if lesson.LessonID == "" {
		lesson.LessonID = fmt.Sprintf("lesson-%d", len(m.lessons)+1)
	}
	cp := *lesson
	m.lessons[lesson.LessonID] = &cp
	return nil
}

func (m *mockLessonRepo) GetByID(_ context.Context, id string) (*model.Lesson, error) {
	lesson, ok := m.lessons[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *lesson
	return &cp, nil
}

func (m *mockLessonRepo) ListByDateRange(_ context.Context, from, to string, teacherID *string) ([]model.Lesson, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.Lesson, 0)
	for _, lesson := range m.lessons {
		if lesson.Date.String() < from || lesson.Date.String() > to {
			continue
		}
		if teacherID != nil && *teacherID != "" && lesson.TeacherID != *teacherID {
			continue
		}
		out = append(out, *lesson)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (m *mockLessonRepo) ExistsAt(_ context.Context, teacherID, date, startTime string) (bool, error) {
	for _, lesson := range m.lessons {
		if lesson.TeacherID == teacherID && lesson.Date.String() == date &&
			lesson.StartTime == startTime && lesson.Status != model.LessonCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLessonRepo) Update(_ context.Context, lesson *model.Lesson) error {
	cp := *lesson
	m.lessons[lesson.LessonID] = &cp
	return nil
}

// ── Slot instance ──

type mockSlotRepo struct {
	slots     map[string]*model.SlotInstance
	listErr   error
	createErr error
	updateErr error
	// updateErrOnce fails the first Update call only.
	updateErrOnce error
}

func newMockSlotRepo() *mockSlotRepo {
	return &mockSlotRepo{slots: make(map[string]*model.SlotInstance)}
}

func (m *mockSlotRepo) Create(_ context.Context, slot *model.SlotInstance) error {
	if m.createErr != nil {
		return m.createErr
	}
	if slot.SlotID == "" {
		slot.SlotID = fmt.Sprintf("slot-%d", len(m.slots)+1)
	}
	cp := *slot
	m.slots[slot.SlotID] = &cp
	return nil
}

func (m *mockSlotRepo) GetByID(_ context.Context, id string) (*model.SlotInstance, error) {
	slot, ok := m.slots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *slot
	return &cp, nil
}

func (m *mockSlotRepo) GetByNaturalKey(_ context.Context, key string) (*model.SlotInstance, error) {
	for _, slot := range m.slots {
		if slot.NaturalKey == key && slot.Status != model.SlotCanceled {
			cp := *slot
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSlotRepo) ListByDateRange(_ context.Context, from, to string, teacherID *string) ([]model.SlotInstance, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.SlotInstance, 0)
	for _, slot := range m.slots {
		if slot.Date.String() < from || slot.Date.String() > to {
			continue
		}
		if teacherID != nil && *teacherID != "" && slot.TeacherID != *teacherID {
			continue
		}
		out = append(out, *slot)
	}
	sortSlots(out)
	return out, nil
}

func (m *mockSlotRepo) ListOpenByDateRange(ctx context.Context, from, to string, teacherID *string) ([]model.SlotInstance, error) {
	all, err := m.ListByDateRange(ctx, from, to, teacherID)
	if err != nil {
		return nil, err
	}
	out := make([]model.SlotInstance, 0, len(all))
	for _, slot := range all {
		if slot.Status == model.SlotOpen {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (m *mockSlotRepo) ListLinkingLesson(_ context.Context, lessonID string) ([]model.SlotInstance, error) {
	out := make([]model.SlotInstance, 0)
	for _, slot := range m.slots {
		if slot.LinkedLessonIDs.Contains(lessonID) {
			out = append(out, *slot)
		}
	}
	sortSlots(out)
	return out, nil
}

func (m *mockSlotRepo) Update(_ context.Context, slot *model.SlotInstance) error {
	if m.updateErrOnce != nil {
		err := m.updateErrOnce
		m.updateErrOnce = nil
		return err
	}
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.slots[slot.SlotID]; !ok {
		return gorm.ErrRecordNotFound
	}
	slot.Version++
	cp := *slot
	m.slots[slot.SlotID] = &cp
	return nil
}

func sortSlots(slots []model.SlotInstance) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime < slots[j].StartTime
		}
		return slots[i].SlotID < slots[j].SlotID
	})
}

// ── Aggregate ──

type testRepos struct {
	teacher  *mockTeacherRepo
	template *mockTemplateRepo
	lesson   *mockLessonRepo
	slot     *mockSlotRepo
	repo     *repository.Repository
}

func newTestRepos() *testRepos {
	tr := &testRepos{
		teacher:  newMockTeacherRepo(),
		template: newMockTemplateRepo(),
		lesson:   newMockLessonRepo(),
		slot:     newMockSlotRepo(),
	}
	tr.repo = &repository.Repository{
		Teacher:  tr.teacher,
		Template: tr.template,
		Lesson:   tr.lesson,
		Slot:     tr.slot,
	}
	return tr
}
