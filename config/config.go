package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig holds process-wide configuration. Everything is fixed at start;
// there is no hot reload.
type AppConfig struct {
	AppPort string

	// Gin framework configuration
	GinMode string
	GinPath string

	// Data file locations
	DataDir      string
	MissionsFile string
	HistoryFile  string
	ProfileFile  string

	// Validation bounds
	TitleMinLength    int
	TitleMaxLength    int
	MaxHistoryEntries int

	// Reward amounts
	CreateXP        int
	ProgressXP      int
	CompleteXP      int
	CompleteCoins   int
	LevelUpCoins    int
	FocusPotionXP   int
	MysteryBoxPrize int

	RateLimitPerMinute int
	AllowedOrigins     []string

	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load reads configuration once during boot.
// Precedence: config/config.json -> defaults -> environment variable overrides.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	cfg.MissionsFile = filepath.Join(cfg.DataDir, "missions.json")
	cfg.HistoryFile = filepath.Join(cfg.DataDir, "history.json")
	cfg.ProfileFile = filepath.Join(cfg.DataDir, "profile.json")

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// loadJSONConfig reads a JSON file into cfg if present. Returns error only for invalid JSON.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil // silently ignore missing file
	}
	defer f.Close()

	var raw map[string]any
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return err
	}

	getString := func(key string, dst *string) {
		if v, ok := raw[key]; ok && *dst == "" {
			if s, ok := v.(string); ok {
				*dst = s
			}
		}
	}
	getInt := func(key string, dst *int) {
		if v, ok := raw[key]; ok && *dst == 0 {
			if f, ok := v.(float64); ok {
				*dst = int(f)
			}
		}
	}

	getString("AppPort", &out.AppPort)
	getString("GinMode", &out.GinMode)
	getString("GinPath", &out.GinPath)
	getString("DataDir", &out.DataDir)
	getInt("TitleMinLength", &out.TitleMinLength)
	getInt("TitleMaxLength", &out.TitleMaxLength)
	getInt("MaxHistoryEntries", &out.MaxHistoryEntries)
	getInt("CreateXP", &out.CreateXP)
	getInt("ProgressXP", &out.ProgressXP)
	getInt("CompleteXP", &out.CompleteXP)
	getInt("CompleteCoins", &out.CompleteCoins)
	getInt("LevelUpCoins", &out.LevelUpCoins)
	getInt("FocusPotionXP", &out.FocusPotionXP)
	getInt("MysteryBoxPrize", &out.MysteryBoxPrize)
	getInt("RateLimitPerMinute", &out.RateLimitPerMinute)

	if v, ok := raw["AllowedOrigins"]; ok && len(out.AllowedOrigins) == 0 {
		if arr, ok := v.([]any); ok {
			for _, it := range arr {
				if s, ok := it.(string); ok {
					out.AllowedOrigins = append(out.AllowedOrigins, s)
				}
			}
		}
	}

	getString("LogLevel", &out.LogLevel)
	getString("LogPath", &out.LogPath)
	getInt("LogMaxSizeMB", &out.LogMaxSizeMB)
	getInt("LogMaxBackups", &out.LogMaxBackups)
	getInt("LogMaxAgeDays", &out.LogMaxAgeDays)
	if v, ok := raw["LogCompress"]; ok {
		if b, ok := v.(bool); ok {
			out.LogCompress = b
		}
	}

	return nil
}

// applyDefaults sets sane defaults for zero-value fields.
func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = "logs/go_gin.log"
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.TitleMinLength == 0 {
		c.TitleMinLength = 3
	}
	if c.TitleMaxLength == 0 {
		c.TitleMaxLength = 255
	}
	if c.MaxHistoryEntries == 0 {
		c.MaxHistoryEntries = 1000
	}
	if c.CreateXP == 0 {
		c.CreateXP = 10
	}
	if c.ProgressXP == 0 {
		c.ProgressXP = 5
	}
	if c.CompleteXP == 0 {
		c.CompleteXP = 50
	}
	if c.CompleteCoins == 0 {
		c.CompleteCoins = 5
	}
	if c.LevelUpCoins == 0 {
		c.LevelUpCoins = 10
	}
	if c.FocusPotionXP == 0 {
		c.FocusPotionXP = 100
	}
	if c.MysteryBoxPrize == 0 {
		c.MysteryBoxPrize = 200
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 60
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
}

// applyEnvOverrides maps known environment variables onto config values when present.
func applyEnvOverrides(c *AppConfig) {
	if v := getEnv("APP_PORT", ""); v != "" {
		c.AppPort = v
	}
	if v := getEnv("GIN_MODE", ""); v != "" {
		c.GinMode = v
	}
	if v := getEnv("GIN_PATH", ""); v != "" {
		c.GinPath = v
	}
	if v := getEnv("DATA_DIR", ""); v != "" {
		c.DataDir = v
	}
	if v := getEnv("TITLE_MIN_LENGTH", ""); v != "" {
		c.TitleMinLength = mustParseInt(v)
	}
	if v := getEnv("TITLE_MAX_LENGTH", ""); v != "" {
		c.TitleMaxLength = mustParseInt(v)
	}
	if v := getEnv("MAX_HISTORY_ENTRIES", ""); v != "" {
		c.MaxHistoryEntries = mustParseInt(v)
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		c.RateLimitPerMinute = mustParseInt(v)
	}
	if v := getEnv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		c.AllowedOrigins = splitAndTrim(v)
	}
	if v := getEnv("LOG_LEVEL", ""); v != "" {
		c.LogLevel = v
	}
	if v := getEnv("LOG_PATH", ""); v != "" {
		c.LogPath = v
	}
	if v := getEnv("LOG_MAX_SIZE_MB", ""); v != "" {
		c.LogMaxSizeMB = mustParseInt(v)
	}
	if v := getEnv("LOG_MAX_BACKUPS", ""); v != "" {
		c.LogMaxBackups = mustParseInt(v)
	}
	if v := getEnv("LOG_MAX_AGE_DAYS", ""); v != "" {
		c.LogMaxAgeDays = mustParseInt(v)
	}
	if v := getEnv("LOG_COMPRESS", ""); v != "" {
		c.LogCompress = v == "true"
	}
}

func mustParseInt(val string) int {
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("invalid integer value %s: %v", val, err)
	}
	return i
}

func splitAndTrim(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
