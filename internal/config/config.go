// Package config loads the board configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/memoryboard/internal/badge"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
	DriverLungo  = "lungo"
)

// ValidDrivers lists all supported storage drivers.
var ValidDrivers = []string{DriverSQLite, DriverMongo, DriverLungo}

// Config holds all configuration for the board server.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Auth    AuthConfig    `yaml:"auth"`
	Badges  BadgesConfig  `yaml:"badges"`
	Listing ListingConfig `yaml:"listing"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// StorageConfig selects and configures the entity store.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	// SQLitePath is used by the sqlite driver.
	SQLitePath string `yaml:"sqlite_path"`
	// MongoURI is used by the mongo driver.
	MongoURI string `yaml:"mongo_uri"`
	// Database names the mongo or lungo database.
	Database string `yaml:"database"`
	// LungoFile is the lungo file store. Empty keeps data in memory.
	LungoFile string `yaml:"lungo_file"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// AuthConfig configures secret hashing and access passes.
type AuthConfig struct {
	BcryptCost int    `yaml:"bcrypt_cost"`
	PassSecret string `yaml:"pass_secret"`
	PassTTL    string `yaml:"pass_ttl"`
}

// BadgesConfig configures badge thresholds and the streak time zone.
type BadgesConfig struct {
	TimeZone          string `yaml:"time_zone"`
	HighVolumePosts   int    `yaml:"high_volume_posts"`
	AnniversaryDays   int    `yaml:"anniversary_days"`
	PopularGroupLikes int64  `yaml:"popular_group_likes"`
	StreakDays        int    `yaml:"streak_days"`
	LikedPostLikes    int64  `yaml:"liked_post_likes"`
}

// ListingConfig configures page sizes.
type ListingConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	rules := badge.DefaultRules()
	return &Config{
		Server: ServerConfig{
			Address:        ":8080",
			AllowedOrigins: []string{"*"},
		},
		Storage: StorageConfig{
			Driver:     DriverSQLite,
			SQLitePath: "./data/memoryboard.db",
			MongoURI:   "mongodb://localhost:27017",
			Database:   "memoryboard",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Auth: AuthConfig{
			BcryptCost: 10,
			PassTTL:    "1h",
		},
		Badges: BadgesConfig{
			TimeZone:          "UTC",
			HighVolumePosts:   rules.HighVolumePosts,
			AnniversaryDays:   rules.AnniversaryDays,
			PopularGroupLikes: rules.PopularGroupLikes,
			StreakDays:        rules.StreakDays,
			LikedPostLikes:    rules.LikedPostLikes,
		},
		Listing: ListingConfig{
			DefaultPageSize: 10,
			MaxPageSize:     100,
		},
	}
}

// Load loads configuration from a YAML file and applies environment
// overrides. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("BOARD_ADDR"); addr != "" {
		c.Server.Address = addr
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Storage.Driver = strings.ToLower(driver)
	}
	if path := os.Getenv("DB_PATH"); path != "" {
		c.Storage.SQLitePath = path
	}
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		c.Storage.MongoURI = uri
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if secret := os.Getenv("PASS_SECRET"); secret != "" {
		c.Auth.PassSecret = secret
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !slices.Contains(ValidDrivers, c.Storage.Driver) {
		return fmt.Errorf("invalid storage driver: %s (valid: %v)", c.Storage.Driver, ValidDrivers)
	}
	if c.Storage.Driver == DriverSQLite && c.Storage.SQLitePath == "" {
		return errors.New("sqlite_path is required for the sqlite driver")
	}
	if c.Storage.Driver == DriverMongo && c.Storage.MongoURI == "" {
		return errors.New("mongo_uri is required for the mongo driver")
	}
	if c.Auth.PassSecret == "" {
		return errors.New("pass secret not configured (set PASS_SECRET)")
	}
	if _, err := time.ParseDuration(c.Auth.PassTTL); err != nil {
		return fmt.Errorf("invalid pass_ttl: %w", err)
	}
	if _, err := time.LoadLocation(c.Badges.TimeZone); err != nil {
		return fmt.Errorf("invalid badges time_zone: %w", err)
	}
	return nil
}

// GetPassTTL returns the access pass lifetime as a duration.
func (c *Config) GetPassTTL() time.Duration {
	d, err := time.ParseDuration(c.Auth.PassTTL)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// BadgeRules returns the badge thresholds. An unknown time zone falls back to UTC.
func (c *Config) BadgeRules() badge.Rules {
	loc, err := time.LoadLocation(c.Badges.TimeZone)
	if err != nil {
		loc = time.UTC
	}
	return badge.Rules{
		HighVolumePosts:   c.Badges.HighVolumePosts,
		AnniversaryDays:   c.Badges.AnniversaryDays,
		PopularGroupLikes: c.Badges.PopularGroupLikes,
		StreakDays:        c.Badges.StreakDays,
		LikedPostLikes:    c.Badges.LikedPostLikes,
		Location:          loc,
	}
}
