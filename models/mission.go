package models

import "encoding/json"

// Mission statuses. A mission may skip in_progress and complete directly;
// there is no transition out of completed.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ValidStatuses lists every status a mission may carry.
var ValidStatuses = []string{StatusOpen, StatusInProgress, StatusCompleted}

// IsValidStatus reports whether s is a recognized mission status.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Tag is a named, colored label. Missions hold a denormalized copy of the
// profile's tag, not a reference; consistency is enforced only at the
// cascade-delete boundary.
type Tag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ProgressEntry records one progress registration on a mission.
type ProgressEntry struct {
	Date string `json:"date"`
}

// Mission is a user-created task record. Slice position is the user-visible
// sort order, so it carries no order field of its own.
type Mission struct {
	ID        string          `json:"id,omitempty"`
	Title     string          `json:"title"`
	Status    string          `json:"status"`
	CreatedAt string          `json:"created_at"`
	Records   []ProgressEntry `json:"records,omitempty"`
	Tag       *Tag            `json:"tag,omitempty"`

	// extra carries unrecognized fields through a load/save cycle so that
	// additive schema changes are not stripped from disk.
	extra map[string]json.RawMessage
}

var missionKnownFields = []string{"id", "title", "status", "created_at", "records", "tag"}

// UnmarshalJSON decodes known fields and stashes the remainder.
func (m *Mission) UnmarshalJSON(data []byte) error {
	type alias Mission
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	a.extra = extraFields(data, missionKnownFields)
	*m = Mission(a)
	return nil
}

// MarshalJSON re-emits known fields plus any preserved unknown ones.
func (m Mission) MarshalJSON() ([]byte, error) {
	type alias Mission
	return mergeExtra(alias(m), m.extra)
}

// extraFields returns the raw fields of data that are not in known.
func extraFields(data []byte, known []string) map[string]json.RawMessage {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, k := range known {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil
	}
	return raw
}

// mergeExtra marshals v and overlays extra fields that do not collide with
// the typed ones.
func mergeExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return b, nil
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, ok := out[k]; !ok {
			out[k] = raw
		}
	}
	return json.Marshal(out)
}
