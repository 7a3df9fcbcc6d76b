package services

import (
	"fmt"
	"math"
	"time"

	"github.com/furylabs/furycell/config"
	"github.com/furylabs/furycell/models"
	"github.com/furylabs/furycell/storage"
)

const (
	// BaseXPToNext is the level-1 experience threshold.
	BaseXPToNext = 100

	// XPGrowthFactor is the per-level threshold multiplier:
	// threshold(level) = floor(100 * 1.2^(level-1)).
	XPGrowthFactor = 1.2

	dayLayout = "2006-01-02"
)

// XPToNextLevel returns the experience threshold for advancing past level.
func XPToNextLevel(level int) int {
	return int(BaseXPToNext * math.Pow(XPGrowthFactor, float64(level-1)))
}

// Progression owns the profile record and the leveling rules. Every call is
// a full read-modify-write of the profile file; there is no in-memory state.
type Progression struct {
	store *storage.Store
	cfg   config.AppConfig
}

// NewProgression creates a progression engine over the given store.
func NewProgression(store *storage.Store, cfg config.AppConfig) *Progression {
	return &Progression{store: store, cfg: cfg}
}

// EnsureProfile loads the profile, creating and persisting the default one
// when none exists (or when the stored record is unusable).
func (p *Progression) EnsureProfile() (models.Profile, error) {
	profile, status := p.store.LoadProfile()
	usable := status == storage.LoadedOK || status == storage.LoadedRecovered
	if usable && profile.Level >= 1 {
		return profile, nil
	}

	profile = models.DefaultProfile()
	if err := p.store.SaveProfile(profile); err != nil {
		return profile, fmt.Errorf("bootstrap profile: %w", err)
	}
	return profile, nil
}

// AwardXP adds experience and resolves level-ups. The loop handles a single
// award spanning multiple levels; afterwards xp is always strictly below the
// threshold. Each level gained grants the configured coin bonus.
func (p *Progression) AwardXP(amount int) (newLevel int, leveledUp bool, err error) {
	profile, err := p.EnsureProfile()
	if err != nil {
		return 0, false, err
	}

	profile.XP += amount
	for profile.XP >= profile.XPToNext {
		profile.XP -= profile.XPToNext
		profile.Level++
		profile.XPToNext = XPToNextLevel(profile.Level)
		profile.Coins += p.cfg.LevelUpCoins
		leveledUp = true
	}

	if err := p.store.SaveProfile(profile); err != nil {
		return 0, false, fmt.Errorf("save profile: %w", err)
	}
	return profile.Level, leveledUp, nil
}

// AwardCoins adds currency. There is no upper bound.
func (p *Progression) AwardCoins(amount int) error {
	profile, err := p.EnsureProfile()
	if err != nil {
		return err
	}
	profile.Coins += amount
	if err := p.store.SaveProfile(profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// MarkCompletion records now's date as a completed day and updates the
// consecutive-day streak: a completion the day after the previous one extends
// the streak, anything else restarts it at 1. Marking the same day twice is a
// no-op.
func (p *Progression) MarkCompletion(now time.Time) (streak int, err error) {
	profile, err := p.EnsureProfile()
	if err != nil {
		return 0, err
	}

	today := now.Format(dayLayout)
	if profile.HasCompletedDay(today) {
		return profile.Streak, nil
	}

	yesterday := now.AddDate(0, 0, -1).Format(dayLayout)
	if profile.HasCompletedDay(yesterday) {
		profile.Streak++
	} else {
		profile.Streak = 1
	}
	profile.CompletedDays = append(profile.CompletedDays, today)

	if err := p.store.SaveProfile(profile); err != nil {
		return 0, fmt.Errorf("save profile: %w", err)
	}
	return profile.Streak, nil
}

// ResetProgress resets level, experience and coins to their defaults. Tags,
// inventory, theme, missions and history are untouched.
func (p *Progression) ResetProgress() error {
	profile, err := p.EnsureProfile()
	if err != nil {
		return err
	}
	profile.Level = 1
	profile.XP = 0
	profile.XPToNext = BaseXPToNext
	profile.Coins = 0
	if err := p.store.SaveProfile(profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
