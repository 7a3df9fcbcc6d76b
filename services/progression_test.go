package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furylabs/furycell/config"
	"github.com/furylabs/furycell/models"
	"github.com/furylabs/furycell/storage"
)

func testConfig() config.AppConfig {
	return config.AppConfig{
		TitleMinLength:    3,
		TitleMaxLength:    255,
		MaxHistoryEntries: 1000,
		CreateXP:          10,
		ProgressXP:        5,
		CompleteXP:        50,
		CompleteCoins:     5,
		LevelUpCoins:      10,
		FocusPotionXP:     100,
		MysteryBoxPrize:   200,
	}
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	dir := t.TempDir()
	return storage.NewStore(
		filepath.Join(dir, "missions.json"),
		filepath.Join(dir, "history.json"),
		filepath.Join(dir, "profile.json"),
		nil,
	)
}

func newTestProgression(t *testing.T) (*Progression, *storage.Store) {
	t.Helper()
	store := newTestStore(t)
	return NewProgression(store, testConfig()), store
}

func TestXPToNextLevelCurve(t *testing.T) {
	assert.Equal(t, 100, XPToNextLevel(1))
	assert.Equal(t, 120, XPToNextLevel(2))
	assert.Equal(t, 144, XPToNextLevel(3))
}

func TestEnsureProfileBootstrapsDefaults(t *testing.T) {
	progression, store := newTestProgression(t)

	profile, err := progression.EnsureProfile()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProfile(), profile)

	// Must have been persisted, not just returned.
	persisted, status := store.LoadProfile()
	assert.Equal(t, storage.LoadedOK, status)
	assert.Equal(t, models.DefaultProfile(), persisted)
}

func TestAwardXPSingleLevel(t *testing.T) {
	progression, _ := newTestProgression(t)

	level, leveledUp, err := progression.AwardXP(100)
	require.NoError(t, err)
	assert.Equal(t, 2, level)
	assert.True(t, leveledUp)

	profile, err := progression.EnsureProfile()
	require.NoError(t, err)
	assert.Equal(t, 0, profile.XP)
	assert.Equal(t, 120, profile.XPToNext)
	assert.Equal(t, 10, profile.Coins) // level-up bonus
}

func TestAwardXPSpansMultipleLevels(t *testing.T) {
	progression, _ := newTestProgression(t)

	// 250 XP from scratch: -100 to reach level 2, -120 to reach level 3.
	level, leveledUp, err := progression.AwardXP(250)
	require.NoError(t, err)
	assert.Equal(t, 3, level)
	assert.True(t, leveledUp)

	profile, err := progression.EnsureProfile()
	require.NoError(t, err)
	assert.Equal(t, 30, profile.XP)
	assert.Equal(t, 144, profile.XPToNext)
	assert.Equal(t, 20, profile.Coins) // two level-up bonuses
}

func TestAwardXPInvariant(t *testing.T) {
	progression, _ := newTestProgression(t)

	prevLevel := 1
	for _, amount := range []int{0, 7, 99, 100, 250, 1, 5000} {
		level, _, err := progression.AwardXP(amount)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, level, prevLevel)
		prevLevel = level

		profile, err := progression.EnsureProfile()
		require.NoError(t, err)
		assert.Less(t, profile.XP, profile.XPToNext)
	}
}

func TestAwardCoins(t *testing.T) {
	progression, _ := newTestProgression(t)

	require.NoError(t, progression.AwardCoins(5))
	require.NoError(t, progression.AwardCoins(7))

	profile, err := progression.EnsureProfile()
	require.NoError(t, err)
	assert.Equal(t, 12, profile.Coins)
}

func TestMarkCompletionStreak(t *testing.T) {
	progression, store := newTestProgression(t)

	now := time.Now()

	streak, err := progression.MarkCompletion(now)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)

	// Same day again is a no-op.
	streak, err = progression.MarkCompletion(now)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)

	// A completion the next day extends the streak.
	streak, err = progression.MarkCompletion(now.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, streak)

	// A gap restarts it.
	streak, err = progression.MarkCompletion(now.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, streak)

	profile, _ := store.LoadProfile()
	assert.Len(t, profile.CompletedDays, 3)
}

func TestResetProgressKeepsEverythingElse(t *testing.T) {
	progression, store := newTestProgression(t)

	_, _, err := progression.AwardXP(250)
	require.NoError(t, err)

	profile, err := progression.EnsureProfile()
	require.NoError(t, err)
	profile.Inventory = []string{"theme_matrix"}
	profile.ActiveTheme = "theme_matrix"
	profile.Tags = []models.Tag{{Name: "work", Color: "#ff0000"}}
	require.NoError(t, store.SaveProfile(profile))

	require.NoError(t, progression.ResetProgress())

	profile, err = progression.EnsureProfile()
	require.NoError(t, err)
	assert.Equal(t, 1, profile.Level)
	assert.Equal(t, 0, profile.XP)
	assert.Equal(t, 100, profile.XPToNext)
	assert.Equal(t, 0, profile.Coins)
	assert.Equal(t, []string{"theme_matrix"}, profile.Inventory)
	assert.Equal(t, "theme_matrix", profile.ActiveTheme)
	assert.Equal(t, []models.Tag{{Name: "work", Color: "#ff0000"}}, profile.Tags)
}
