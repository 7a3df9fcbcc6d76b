package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furylabs/furycell/models"
	"github.com/furylabs/furycell/storage"
)

func newTestTags(t *testing.T) (*TagService, *Progression, *storage.Store) {
	t.Helper()
	store := newTestStore(t)
	progression := NewProgression(store, testConfig())
	return NewTagService(store, progression), progression, store
}

func TestCreateTag(t *testing.T) {
	tags, progression, _ := newTestTags(t)

	require.NoError(t, tags.Create("work", "#ff0000"))

	profile, err := progression.EnsureProfile()
	require.NoError(t, err)
	assert.Equal(t, []models.Tag{{Name: "work", Color: "#ff0000"}}, profile.Tags)
}

func TestCreateTagRejectsEmptyName(t *testing.T) {
	tags, _, _ := newTestTags(t)

	assert.ErrorIs(t, tags.Create("", "#ff0000"), ErrTagNameRequired)
}

func TestCreateTagRejectsDuplicate(t *testing.T) {
	tags, _, _ := newTestTags(t)

	require.NoError(t, tags.Create("work", "#ff0000"))
	assert.ErrorIs(t, tags.Create("work", "#00ff00"), ErrTagExists)
}

func TestDeleteTagCascadesToMissions(t *testing.T) {
	tags, progression, store := newTestTags(t)

	require.NoError(t, tags.Create("work", "#ff0000"))
	require.NoError(t, tags.Create("home", "#00ff00"))

	work := &models.Tag{Name: "work", Color: "#ff0000"}
	home := &models.Tag{Name: "home", Color: "#00ff00"}
	missions := []models.Mission{
		{ID: "a", Title: "Tagged one", Status: models.StatusOpen, Tag: work},
		{ID: "b", Title: "Tagged two", Status: models.StatusOpen, Tag: work},
		{ID: "c", Title: "Other tag", Status: models.StatusOpen, Tag: home},
		{ID: "d", Title: "Untagged", Status: models.StatusOpen},
	}
	require.NoError(t, store.SaveMissions(missions))

	affected, err := tags.Delete("work")
	require.NoError(t, err)
	assert.Equal(t, 2, affected)

	profile, err := progression.EnsureProfile()
	require.NoError(t, err)
	assert.Equal(t, []models.Tag{{Name: "home", Color: "#00ff00"}}, profile.Tags)

	out, _ := store.LoadMissions()
	assert.Nil(t, out[0].Tag)
	assert.Nil(t, out[1].Tag)
	assert.Equal(t, home, out[2].Tag)
	assert.Nil(t, out[3].Tag)
}

func TestDeleteTagNotFound(t *testing.T) {
	tags, _, _ := newTestTags(t)

	_, err := tags.Delete("ghost")
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestDeleteAllLeavesMissionTags(t *testing.T) {
	tags, progression, store := newTestTags(t)

	require.NoError(t, tags.Create("work", "#ff0000"))
	require.NoError(t, tags.Create("home", "#00ff00"))

	work := &models.Tag{Name: "work", Color: "#ff0000"}
	require.NoError(t, store.SaveMissions([]models.Mission{
		{ID: "a", Title: "Keeps its tag", Status: models.StatusOpen, Tag: work},
	}))

	count, err := tags.DeleteAll()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	profile, err := progression.EnsureProfile()
	require.NoError(t, err)
	assert.Empty(t, profile.Tags)

	out, _ := store.LoadMissions()
	assert.Equal(t, work, out[0].Tag)
}
