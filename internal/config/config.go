package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// PublicURL is the externally visible base URL used when building
	// screenshot links (e.g. http://localhost:3001). Falls back to
	// host:port when empty.
	PublicURL string `yaml:"publicURL"`
}

type BrowserConfig struct {
	Enabled bool `yaml:"enabled"`
	// ControlURL points at a remote browser's devtools endpoint. When
	// empty, rod launches a local headless browser.
	ControlURL string `yaml:"controlURL"`
	TimeoutMs  int    `yaml:"timeoutMs"`
	UserAgent  string `yaml:"userAgent"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

// CacheConfig controls the optional URL-keyed scrape-result cache.
// Disabled by default: a cache hit skips the page load entirely, which
// is only acceptable when the operator opts in.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	TTLMinutes int  `yaml:"ttlMinutes"`
}

type UploadsConfig struct {
	Dir string `yaml:"dir"`
}

type ExtractConfig struct {
	// PhoneRegion is the default region used when normalizing phone
	// matches for dedup (ISO 3166-1 alpha-2).
	PhoneRegion string `yaml:"phoneRegion"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Browser  BrowserConfig  `yaml:"browser"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Cache    CacheConfig    `yaml:"cache"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	Extract  ExtractConfig  `yaml:"extract"`
}

func Load(path string) *Config {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open config file: %v", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		log.Fatalf("failed to decode config: %v", err)
	}

	if cfg.Uploads.Dir == "" {
		cfg.Uploads.Dir = "uploads"
	}
	if cfg.Browser.TimeoutMs <= 0 {
		cfg.Browser.TimeoutMs = 60000
	}
	if cfg.Extract.PhoneRegion == "" {
		cfg.Extract.PhoneRegion = "US"
	}

	return &cfg
}
