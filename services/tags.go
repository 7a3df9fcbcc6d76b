package services

import (
	"errors"
	"fmt"

	"github.com/furylabs/furycell/models"
	"github.com/furylabs/furycell/storage"
)

var (
	ErrTagNameRequired = errors.New("tag name is required")
	ErrTagExists       = errors.New("tag already exists")
	ErrTagNotFound     = errors.New("tag not found")
)

// TagService manages the profile's tag set. Missions embed denormalized
// copies of tags; the only consistency rule is the cascade on delete.
type TagService struct {
	store       *storage.Store
	progression *Progression
}

// NewTagService creates a tag engine over the given store.
func NewTagService(store *storage.Store, progression *Progression) *TagService {
	return &TagService{store: store, progression: progression}
}

// Create adds a tag to the profile. Names are unique within the profile.
func (t *TagService) Create(name, color string) error {
	if name == "" {
		return ErrTagNameRequired
	}

	profile, err := t.progression.EnsureProfile()
	if err != nil {
		return err
	}
	if profile.HasTag(name) {
		return ErrTagExists
	}

	profile.Tags = append(profile.Tags, models.Tag{Name: name, Color: color})
	if err := t.store.SaveProfile(profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Delete removes the named tag from the profile and strips the matching
// denormalized copy from every mission. Returns how many missions were
// affected.
func (t *TagService) Delete(name string) (affected int, err error) {
	profile, err := t.progression.EnsureProfile()
	if err != nil {
		return 0, err
	}

	kept := make([]models.Tag, 0, len(profile.Tags))
	for _, tag := range profile.Tags {
		if tag.Name != name {
			kept = append(kept, tag)
		}
	}
	if len(kept) == len(profile.Tags) {
		return 0, ErrTagNotFound
	}
	profile.Tags = kept

	missions, _ := t.store.LoadMissions()
	for i := range missions {
		if missions[i].Tag != nil && missions[i].Tag.Name == name {
			missions[i].Tag = nil
			affected++
		}
	}

	if err := t.store.SaveProfile(profile); err != nil {
		return 0, fmt.Errorf("save profile: %w", err)
	}
	if err := t.store.SaveMissions(missions); err != nil {
		return 0, fmt.Errorf("save missions: %w", err)
	}
	return affected, nil
}

// DeleteAll clears the profile's tag set. Missions keep their embedded
// copies; there is no cascade here, only per-tag Delete strips missions.
func (t *TagService) DeleteAll() (int, error) {
	profile, err := t.progression.EnsureProfile()
	if err != nil {
		return 0, err
	}

	count := len(profile.Tags)
	profile.Tags = []models.Tag{}
	if err := t.store.SaveProfile(profile); err != nil {
		return 0, fmt.Errorf("save profile: %w", err)
	}
	return count, nil
}
