package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	EnvAPIURL   = "FITNUTRITION_API_URL"
	EnvAPIToken = "FITNUTRITION_API_TOKEN"
	EnvLogLevel = "FITNUTRITION_LOG_LEVEL"

	DefaultBaseURL  = "http://localhost:8000/api"
	DefaultTimeout  = 12 * time.Second
	DefaultCacheMB  = 64
	DefaultCacheTTL = 60
	DefaultDebounce = 500 * time.Millisecond
	DefaultLogLevel = "warn"
)

type API struct {
	BaseURL string        `toml:"base_url"`
	Token   string        `toml:"token"`
	Timeout time.Duration `toml:"timeout"`
}

type Cache struct {
	SizeMB     int `toml:"size_mb"`
	TTLSeconds int `toml:"ttl_seconds"`
}

type Search struct {
	Debounce time.Duration `toml:"debounce"`
}

type Log struct {
	Level    string `toml:"level"`
	Path     string `toml:"path"`
	ToStderr bool   `toml:"to_stderr"`
	JSON     bool   `toml:"json"`
}

// Profile feeds the local BMR/TDEE fallback when the backend has none.
type Profile struct {
	Age           int     `toml:"age"`
	Gender        string  `toml:"gender"`
	HeightCm      float64 `toml:"height_cm"`
	ActivityLevel string  `toml:"activity_level"`
}

type Config struct {
	API     API     `toml:"api"`
	Cache   Cache   `toml:"cache"`
	Search  Search  `toml:"search"`
	Log     Log     `toml:"log"`
	Profile Profile `toml:"profile"`
}

func Default() Config {
	return Config{
		API:    API{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout},
		Cache:  Cache{SizeMB: DefaultCacheMB, TTLSeconds: DefaultCacheTTL},
		Search: Search{Debounce: DefaultDebounce},
		Log:    Log{Level: DefaultLogLevel, ToStderr: true},
	}
}

// Load reads the TOML file at path (a missing file keeps the defaults), then
// envFile when it exists, then environment variables.
func Load(path, envFile string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Debugf("no config file at %s, using defaults", path)
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				log.Warnf("unknown config keys in %s: %v", path, undecoded)
			}
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIToken)); v != "" {
		c.API.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be > 0")
	}
	if c.Cache.SizeMB < 0 || c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.size_mb and cache.ttl_seconds must be >= 0")
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce must be >= 0")
	}
	return nil
}

// Entries lists the effective settings in a stable order with the token
// masked.
func (c Config) Entries() [][2]string {
	token := ""
	if c.API.Token != "" {
		token = "********"
	}
	return [][2]string{
		{"api.base_url", c.API.BaseURL},
		{"api.token", token},
		{"api.timeout", c.API.Timeout.String()},
		{"cache.size_mb", strconv.Itoa(c.Cache.SizeMB)},
		{"cache.ttl_seconds", strconv.Itoa(c.Cache.TTLSeconds)},
		{"search.debounce", c.Search.Debounce.String()},
		{"log.level", c.Log.Level},
		{"log.path", c.Log.Path},
		{"log.to_stderr", strconv.FormatBool(c.Log.ToStderr)},
		{"log.json", strconv.FormatBool(c.Log.JSON)},
		{"profile.age", strconv.Itoa(c.Profile.Age)},
		{"profile.gender", c.Profile.Gender},
		{"profile.height_cm", strconv.FormatFloat(c.Profile.HeightCm, 'f', -1, 64)},
		{"profile.activity_level", c.Profile.ActivityLevel},
	}
}

// Write stores cfg as TOML at path, used by init to seed a config file.
func Write(path string, cfg Config) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("create config %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
