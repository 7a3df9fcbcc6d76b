package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/furylabs/furycell/models"
)

const (
	bakSuffix = ".bak"
	tmpSuffix = ".tmp"
)

// LoadStatus tells callers how a load resolved. Loads never fail hard: a
// missing or unrecoverable file degrades to an empty collection.
type LoadStatus int

const (
	// LoadedOK means the primary file parsed cleanly.
	LoadedOK LoadStatus = iota
	// LoadedEmpty means no file existed yet.
	LoadedEmpty
	// LoadedRecovered means the primary file was corrupt and the data came
	// from the .bak sibling, which was copied back over the primary.
	LoadedRecovered
	// LoadedCorrupt means neither the primary nor the backup parsed; the
	// caller got an empty collection.
	LoadedCorrupt
)

// Store persists the three flat collections. Every save backs the existing
// file up to a .bak sibling, writes a .tmp file and renames it over the
// destination, so an interrupted write never leaves a half-written file.
type Store struct {
	missionsFile string
	historyFile  string
	profileFile  string
	log          *zap.SugaredLogger
}

// NewStore creates a store over the given file locations.
func NewStore(missionsFile, historyFile, profileFile string, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Store{
		missionsFile: missionsFile,
		historyFile:  historyFile,
		profileFile:  profileFile,
		log:          log,
	}
}

// LoadMissions returns the mission collection in stored order.
func (s *Store) LoadMissions() ([]models.Mission, LoadStatus) {
	missions := []models.Mission{}
	st := s.loadJSON(s.missionsFile, &missions)
	if st == LoadedCorrupt || st == LoadedEmpty {
		missions = []models.Mission{}
	}
	return missions, st
}

// SaveMissions writes the mission collection.
func (s *Store) SaveMissions(missions []models.Mission) error {
	return s.saveJSON(s.missionsFile, missions)
}

// LoadHistory returns the activity log, newest first.
func (s *Store) LoadHistory() ([]models.LogEntry, LoadStatus) {
	entries := []models.LogEntry{}
	st := s.loadJSON(s.historyFile, &entries)
	if st == LoadedCorrupt || st == LoadedEmpty {
		entries = []models.LogEntry{}
	}
	return entries, st
}

// SaveHistory writes the activity log.
func (s *Store) SaveHistory(entries []models.LogEntry) error {
	return s.saveJSON(s.historyFile, entries)
}

// LoadProfile returns the persisted profile. On LoadedEmpty or LoadedCorrupt
// the zero profile is returned; bootstrapping defaults is the progression
// service's job.
func (s *Store) LoadProfile() (models.Profile, LoadStatus) {
	var profile models.Profile
	st := s.loadJSON(s.profileFile, &profile)
	if st == LoadedCorrupt || st == LoadedEmpty {
		profile = models.Profile{}
	}
	return profile, st
}

// SaveProfile writes the profile record.
func (s *Store) SaveProfile(profile models.Profile) error {
	return s.saveJSON(s.profileFile, profile)
}

// DeleteProfile removes the profile file so the next access re-bootstraps it.
func (s *Store) DeleteProfile() error {
	if err := os.Remove(s.profileFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", s.profileFile, err)
	}
	return nil
}

func (s *Store) loadJSON(path string, dst any) LoadStatus {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return LoadedEmpty
	}
	if err != nil {
		s.log.Errorw("read data file failed", "path", path, "error", err)
		return LoadedCorrupt
	}

	if err := json.Unmarshal(data, dst); err == nil {
		return LoadedOK
	}

	// Primary is corrupt; fall back to the backup sibling.
	bak, err := os.ReadFile(path + bakSuffix)
	if err == nil && json.Unmarshal(bak, dst) == nil {
		s.log.Warnw("restored data file from backup", "path", path)
		// Copy the backup over the primary so the next load is clean.
		if err := os.WriteFile(path, bak, 0o644); err != nil {
			s.log.Errorw("write restored file failed", "path", path, "error", err)
		}
		return LoadedRecovered
	}

	s.log.Errorw("data file corrupt and no usable backup", "path", path)
	return LoadedCorrupt
}

func (s *Store) saveJSON(path string, v any) error {
	if _, err := os.Stat(path); err == nil {
		if err := copyFile(path, path+bakSuffix); err != nil {
			return fmt.Errorf("backup %s: %w", path, err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	tmp := path + tmpSuffix
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
