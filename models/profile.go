package models

import "encoding/json"

// Profile is the singleton record holding the player-like progression state.
// It is created lazily with fixed defaults on first access.
type Profile struct {
	Level         int      `json:"level"`
	XP            int      `json:"xp"`
	XPToNext      int      `json:"xp_to_next"`
	Coins         int      `json:"coins"`
	Streak        int      `json:"streak"`
	CompletedDays []string `json:"completed_days"`
	Inventory     []string `json:"inventory"`
	ActiveTheme   string   `json:"active_theme"`
	Tags          []Tag    `json:"tags"`

	extra map[string]json.RawMessage
}

var profileKnownFields = []string{
	"level", "xp", "xp_to_next", "coins", "streak",
	"completed_days", "inventory", "active_theme", "tags",
}

// DefaultProfile returns the fresh level-1 profile.
func DefaultProfile() Profile {
	return Profile{
		Level:         1,
		XP:            0,
		XPToNext:      100,
		Coins:         0,
		Streak:        0,
		CompletedDays: []string{},
		Inventory:     []string{},
		ActiveTheme:   "",
		Tags:          []Tag{},
	}
}

// Owns reports whether itemID is in the inventory.
func (p *Profile) Owns(itemID string) bool {
	for _, id := range p.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}

// HasTag reports whether a tag with the given name exists.
func (p *Profile) HasTag(name string) bool {
	for _, t := range p.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// HasCompletedDay reports whether day (YYYY-MM-DD) is marked completed.
func (p *Profile) HasCompletedDay(day string) bool {
	for _, d := range p.CompletedDays {
		if d == day {
			return true
		}
	}
	return false
}

// UnmarshalJSON decodes known fields and stashes the remainder.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type alias Profile
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	a.extra = extraFields(data, profileKnownFields)
	*p = Profile(a)
	return nil
}

// MarshalJSON re-emits known fields plus any preserved unknown ones.
func (p Profile) MarshalJSON() ([]byte, error) {
	type alias Profile
	return mergeExtra(alias(p), p.extra)
}
