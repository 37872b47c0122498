package dto

// ── Conflict-check DTOs ──

// Entity values accepted by the conflict-check endpoint.
const (
	EntityLesson        = "lesson"
	EntitySlotInventory = "slot_inventory"
)

// ConflictCheckRequest asks whether a proposed interval collides with
// existing lessons or open slots for a teacher.
type ConflictCheckRequest struct {
	Entity          string   `json:"entity"            binding:"required,oneof=lesson slot_inventory"`
	RecordID        string   `json:"record_id"         binding:"omitempty"` // self, when editing
	LinkedLessonIDs []string `json:"linked_lesson_ids" binding:"omitempty"` // lessons already linked to the slot being edited
	TeacherID       string   `json:"teacher_id"        binding:"required,uuid"`
	Date            string   `json:"date"              binding:"required,datetime=2006-01-02"`
	Start           string   `json:"start"             binding:"required"` // "10:00"
	End             string   `json:"end"               binding:"required"` // "11:00"
}

// ConflictItem one conflicting record, normalized.
type ConflictItem struct {
	Source   string `json:"source"` // lesson | slot
	RecordID string `json:"record_id"`
	Start    string `json:"start"` // RFC3339
	End      string `json:"end"`   // RFC3339
	Label    string `json:"label"`
}

// ConflictCheckResponse conflicts sorted by start ascending.
type ConflictCheckResponse struct {
	HasConflicts bool           `json:"has_conflicts"`
	Conflicts    []ConflictItem `json:"conflicts"`
}
