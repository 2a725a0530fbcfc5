package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// SessionRule opens sessions on the dates its recurrence rule generates.
// A centre uses these to express things like "night dives run Fridays only".
type SessionRule struct {
	RRule    string   `yaml:"rrule" validate:"required"`
	Sessions []string `yaml:"sessions" validate:"required,min=1,dive,oneof=morning midday afternoon night"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// ShoreSiteName designates the shore-accessible dive site, matched
	// against site names (e.g. "Mole")
	ShoreSiteName string `yaml:"shoreSiteName" validate:"required"`

	RecencyWindowDays int `yaml:"recencyWindowDays,omitempty" validate:"omitempty,min=1"`
	SuggestionLimit   int `yaml:"suggestionLimit,omitempty" validate:"omitempty,min=1"`
	StaffBaseline     int `yaml:"staffBaseline,omitempty" validate:"omitempty,min=1"`

	// SessionSchedule restricts which sessions are plannable per date.
	// With no rules, every session is open every day.
	SessionSchedule []SessionRule `yaml:"sessionSchedule,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from dive_center_config.yaml.
// It looks in the current directory first, then in the user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, rule := range cfg.SessionSchedule {
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in sessionSchedule[%d]: %w", i, err)
		}
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.RecencyWindowDays == 0 {
		c.RecencyWindowDays = 3
	}
	if c.SuggestionLimit == 0 {
		c.SuggestionLimit = 5
	}
	if c.StaffBaseline == 0 {
		c.StaffBaseline = 2
	}
}

// scheduleEpoch anchors recurrence rules that carry no DTSTART of their own
var scheduleEpoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// SessionsOnDate returns the session tags open on the given date according
// to the session schedule. With no schedule configured, every session is
// open.
func (c *Config) SessionsOnDate(date time.Time) ([]string, error) {
	if len(c.SessionSchedule) == 0 {
		return []string{"morning", "midday", "afternoon", "night"}, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	seen := make(map[string]bool)
	var sessions []string
	for i, rule := range c.SessionSchedule {
		r, err := rrule.StrToRRule(rule.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in sessionSchedule[%d]: %w", i, err)
		}
		r.DTStart(scheduleEpoch)
		if len(r.Between(dayStart, dayEnd, true)) == 0 {
			continue
		}
		for _, s := range rule.Sessions {
			if !seen[s] {
				seen[s] = true
				sessions = append(sessions, s)
			}
		}
	}
	return sessions, nil
}

// findConfigFile searches for dive_center_config.yaml in the current
// directory and the home directory
func findConfigFile() (string, error) {
	configFileName := "dive_center_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
