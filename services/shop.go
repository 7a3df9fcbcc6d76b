package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/furylabs/furycell/config"
	"github.com/furylabs/furycell/storage"
)

// Domain-rule failures. Each leaves the profile untouched.
var (
	ErrItemNotFound      = errors.New("item not found")
	ErrAlreadyOwned      = errors.New("item already owned")
	ErrInsufficientCoins = errors.New("insufficient coins")
	ErrNotOwned          = errors.New("item not owned")
	ErrNotEquippable     = errors.New("item cannot be equipped")
)

// mysteryOutcome is one entry of the mystery-box discrete distribution.
type mysteryOutcome struct {
	coins  int
	weight int
}

// ShopService validates purchases against the static catalog and applies
// item effects to the profile.
type ShopService struct {
	store       *storage.Store
	progression *Progression
	cfg         config.AppConfig
	rng         *rand.Rand

	// 3:2 zero-to-prize weighting, a 40% chance of the prize.
	mysteryOutcomes []mysteryOutcome
}

// NewShopService creates a shop engine. rng may be nil, in which case a
// time-seeded source is used; tests inject a deterministic one.
func NewShopService(store *storage.Store, progression *Progression, cfg config.AppConfig, rng *rand.Rand) *ShopService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ShopService{
		store:       store,
		progression: progression,
		cfg:         cfg,
		rng:         rng,
		mysteryOutcomes: []mysteryOutcome{
			{coins: 0, weight: 3},
			{coins: cfg.MysteryBoxPrize, weight: 2},
		},
	}
}

// Purchase validates eligibility, deducts the price and applies the item's
// effect. The returned message is user-facing.
func (s *ShopService) Purchase(itemID string) (string, error) {
	item, ok := config.FindShopItem(itemID)
	if !ok {
		return "", ErrItemNotFound
	}

	profile, err := s.progression.EnsureProfile()
	if err != nil {
		return "", err
	}

	if profile.Owns(itemID) {
		return "", ErrAlreadyOwned
	}
	if profile.Coins < item.Price {
		return "", ErrInsufficientCoins
	}

	profile.Coins -= item.Price

	switch itemID {
	case config.ItemMysteryBox:
		// Single-use: resolved immediately, never inventoried.
		prize := s.drawMysteryPrize()
		profile.Coins += prize
		if err := s.store.SaveProfile(profile); err != nil {
			return "", fmt.Errorf("save profile: %w", err)
		}
		if prize > 0 {
			return fmt.Sprintf("Mystery Box! You won %d coins!", prize), nil
		}
		return "Empty box... better luck next time!", nil

	case config.ItemFocusPotion:
		// Persist the deduction first; the XP award re-reads the profile and
		// runs through the one and only leveling path.
		if err := s.store.SaveProfile(profile); err != nil {
			return "", fmt.Errorf("save profile: %w", err)
		}
		level, leveledUp, err := s.progression.AwardXP(s.cfg.FocusPotionXP)
		if err != nil {
			return "", err
		}
		msg := fmt.Sprintf("Potion consumed! +%d XP!", s.cfg.FocusPotionXP)
		if leveledUp {
			msg += fmt.Sprintf(" LEVEL UP! Level %d!", level)
		}
		return msg, nil

	default:
		if !profile.Owns(itemID) {
			profile.Inventory = append(profile.Inventory, itemID)
		}
		if err := s.store.SaveProfile(profile); err != nil {
			return "", fmt.Errorf("save profile: %w", err)
		}
		return fmt.Sprintf("%s purchased!", item.Name), nil
	}
}

// Equip activates an owned theme. The default theme identifier always
// succeeds and clears the active theme.
func (s *ShopService) Equip(itemID string) (string, error) {
	profile, err := s.progression.EnsureProfile()
	if err != nil {
		return "", err
	}

	if itemID == config.ItemThemeDefault {
		profile.ActiveTheme = ""
		if err := s.store.SaveProfile(profile); err != nil {
			return "", fmt.Errorf("save profile: %w", err)
		}
		return "Default theme restored!", nil
	}

	if !profile.Owns(itemID) {
		return "", ErrNotOwned
	}
	if !strings.HasPrefix(itemID, config.ThemeIDPrefix) {
		return "", ErrNotEquippable
	}

	profile.ActiveTheme = itemID
	if err := s.store.SaveProfile(profile); err != nil {
		return "", fmt.Errorf("save profile: %w", err)
	}
	return "Theme equipped!", nil
}

// drawMysteryPrize draws from the weighted outcome distribution.
func (s *ShopService) drawMysteryPrize() int {
	total := 0
	for _, o := range s.mysteryOutcomes {
		total += o.weight
	}
	n := s.rng.Intn(total)
	for _, o := range s.mysteryOutcomes {
		if n < o.weight {
			return o.coins
		}
		n -= o.weight
	}
	return 0
}
