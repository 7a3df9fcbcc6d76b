package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/furylabs/furycell/config"
	"github.com/furylabs/furycell/models"
)

const missionTimeLayout = "2006-01-02 15:04:05"

// titleEscaper neutralizes the two markup metacharacters. This is
// deliberately narrower than a full HTML escape: the rendering layer relies
// on exactly this substitution, nothing more.
var titleEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// MissionService validates titles and builds new mission records.
type MissionService struct {
	minTitle int
	maxTitle int
}

// NewMissionService creates a MissionService with the configured title bounds.
func NewMissionService(cfg config.AppConfig) *MissionService {
	return &MissionService{
		minTitle: cfg.TitleMinLength,
		maxTitle: cfg.TitleMaxLength,
	}
}

// ValidateTitle trims, bounds-checks and sanitizes a raw title. The returned
// string is only meaningful when err is nil.
func (m *MissionService) ValidateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", fmt.Errorf("title cannot be empty")
	}
	if n := utf8.RuneCountInString(title); n < m.minTitle {
		return "", fmt.Errorf("title must be at least %d characters", m.minTitle)
	} else if n > m.maxTitle {
		return "", fmt.Errorf("title must be at most %d characters", m.maxTitle)
	}
	return titleEscaper.Replace(title), nil
}

// Create builds a new open mission from a raw title and an optional tag. The
// tag is attached verbatim; checking it against the profile's tag set is the
// caller's responsibility.
func (m *MissionService) Create(rawTitle string, tag *models.Tag) (models.Mission, error) {
	title, err := m.ValidateTitle(rawTitle)
	if err != nil {
		return models.Mission{}, err
	}
	return models.Mission{
		ID:        uuid.NewString(),
		Title:     title,
		Status:    models.StatusOpen,
		CreatedAt: time.Now().Format(missionTimeLayout),
		Tag:       tag,
	}, nil
}
