package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

const (
	DefaultSiteURL         = "https://batarikh.xyz"
	DefaultMediaHost       = "media.batarikh.xyz"
	DefaultTelegramChannel = "batarikh"
)

// AppConfig is built once at process start and handed to every component.
// Nothing else in the module reads the environment.
type AppConfig struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
	Site      SiteConfig      `yaml:"site"`
	Feed      FeedConfig      `yaml:"feed"`
	Store     StoreConfig     `yaml:"store"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Download  DownloadConfig  `yaml:"download"`
	Sitemap   SitemapConfig   `yaml:"sitemap"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info notice warn error fatal"`
}

type ServerConfig struct {
	ListenAddr      string        `yaml:"listen_addr" validate:"required"`
	Mode            string        `yaml:"mode" validate:"omitempty,oneof=debug release test"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string      `yaml:"cors_origins"`
}

// SiteConfig holds the public identity of the mirror.
type SiteConfig struct {
	URL             string `yaml:"url" validate:"required,url"`
	MediaHost       string `yaml:"media_host" validate:"required,hostname"`
	TelegramChannel string `yaml:"telegram_channel" validate:"required"`
	Title           string `yaml:"title"`
	Description     string `yaml:"description"`
}

type FeedConfig struct {
	PageSize        int           `yaml:"page_size" validate:"min=1,max=100"`
	PaginationRange int           `yaml:"pagination_range" validate:"min=0"`
	Revalidate      time.Duration `yaml:"revalidate"`
}

// StoreConfig selects the post store backend.
// An empty driver resolves to supabase; missing credentials leave the feed empty.
type StoreConfig struct {
	Driver   string         `yaml:"driver" validate:"omitempty,oneof=supabase postgres mongo sqlite"`
	Timeout  time.Duration  `yaml:"timeout"`
	Supabase SupabaseConfig `yaml:"supabase"`
	Postgres PostgresConfig `yaml:"postgres"`
	Mongo    MongoConfig    `yaml:"mongo"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
}

type SupabaseConfig struct {
	URL     string `yaml:"url" validate:"omitempty,url"`
	AnonKey string `yaml:"anon_key"`
	Table   string `yaml:"table"`
}

type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"max_conns"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type RateLimitConfig struct {
	Backend         string        `yaml:"backend" validate:"omitempty,oneof=memory redis"`
	MaxRequests     int           `yaml:"max_requests" validate:"min=1"`
	Window          time.Duration `yaml:"window" validate:"gt=0"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
	Redis           RedisConfig   `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type DownloadConfig struct {
	DefaultName           string        `yaml:"default_name"`
	ResponseHeaderTimeout time.Duration `yaml:"response_header_timeout"`
	CacheMaxAge           time.Duration `yaml:"cache_max_age"`
}

type SitemapConfig struct {
	MaxPages int `yaml:"max_pages" validate:"min=1"`
}

// Default returns the configuration used when neither config.yaml nor the environment
// says otherwise.
func Default() AppConfig {
	return AppConfig{
		Logging: LoggingConfig{Level: "info"},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			Mode:            "release",
			ShutdownTimeout: 10 * time.Second,
		},
		Site: SiteConfig{
			URL:             DefaultSiteURL,
			MediaHost:       DefaultMediaHost,
			TelegramChannel: DefaultTelegramChannel,
			Title:           "با تاریخ",
			Description:     "آرشیو کانال تلگرام «با تاریخ»",
		},
		Feed: FeedConfig{
			PageSize:        18,
			PaginationRange: 2,
			Revalidate:      30 * time.Second,
		},
		Store: StoreConfig{
			Driver:   "supabase",
			Timeout:  10 * time.Second,
			Supabase: SupabaseConfig{Table: "posts"},
			Postgres: PostgresConfig{MaxConns: 10},
			Mongo:    MongoConfig{Database: "batarikh"},
			SQLite:   SQLiteConfig{Path: "./data/posts.db"},
		},
		RateLimit: RateLimitConfig{
			Backend:         "memory",
			MaxRequests:     10,
			Window:          time.Minute,
			CleanupInterval: 5 * time.Minute,
			Redis:           RedisConfig{Prefix: "ratelimit:download"},
		},
		Download: DownloadConfig{
			DefaultName:           "file.pdf",
			ResponseHeaderTimeout: 30 * time.Second,
			CacheMaxAge:           24 * time.Hour,
		},
		Sitemap: SitemapConfig{MaxPages: 10},
	}
}

// Load builds the application configuration.
// path may point at a config.yaml; when empty the file is searched from the working
// directory upwards and is optional. The .env file next to it is loaded first so its
// values take part in the environment overrides.
func Load(path string) (AppConfig, error) {
	base := GetBasePath()
	if path != "" {
		base = filepath.Dir(path)
	}
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load(filepath.Join(base, ENV_FILE))

	c := Default()

	cfgPath := path
	if cfgPath == "" && base != "" {
		cfgPath = filepath.Join(base, CONFIG_FILE)
	}
	if cfgPath != "" {
		data, err := os.ReadFile(cfgPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &c); err != nil {
				return AppConfig{}, fmt.Errorf("parse %s: %w", cfgPath, err)
			}
		case errors.Is(err, os.ErrNotExist) && path == "":
		default:
			return AppConfig{}, fmt.Errorf("read %s: %w", cfgPath, err)
		}
	}

	if err := applyEnv(&c); err != nil {
		return AppConfig{}, err
	}
	c.normalize()

	if err := c.Validate(); err != nil {
		return AppConfig{}, err
	}
	return c, nil
}

func applyEnv(c *AppConfig) error {
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Server.ListenAddr, "LISTEN_ADDR")
	setString(&c.Server.Mode, "GIN_MODE")

	setString(&c.Site.URL, "SITE_URL", "NEXT_PUBLIC_SITE_URL")
	setString(&c.Site.MediaHost, "MEDIA_HOST", "NEXT_PUBLIC_MEDIA_HOST")
	setString(&c.Site.TelegramChannel, "TELEGRAM_CHANNEL", "NEXT_PUBLIC_TELEGRAM_CHANNEL")

	setString(&c.Store.Driver, "STORE_DRIVER")
	setString(&c.Store.Supabase.URL, "SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL")
	setString(&c.Store.Supabase.AnonKey, "SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY")
	setString(&c.Store.Postgres.DSN, "POSTGRES_DSN", "DATABASE_URL")
	setString(&c.Store.Mongo.URI, "MONGO_URI")
	setString(&c.Store.Mongo.Database, "MONGO_DB")
	setString(&c.Store.SQLite.Path, "SQLITE_PATH")

	setString(&c.RateLimit.Backend, "RATE_LIMIT_BACKEND")
	setString(&c.RateLimit.Redis.Addr, "REDIS_ADDR")
	setString(&c.RateLimit.Redis.Password, "REDIS_PASSWORD")
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		c.RateLimit.Redis.DB = db
	}
	return nil
}

// setString assigns the first non-empty environment variable among keys.
func setString(dst *string, keys ...string) {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			*dst = v
			return
		}
	}
}

func (c *AppConfig) normalize() {
	c.Site.URL = strings.TrimRight(c.Site.URL, "/")
	c.Site.MediaHost = strings.ToLower(strings.TrimSpace(c.Site.MediaHost))
	c.Site.TelegramChannel = strings.TrimPrefix(c.Site.TelegramChannel, "@")
	c.Store.Driver = strings.ToLower(c.Store.Driver)
	c.RateLimit.Backend = strings.ToLower(c.RateLimit.Backend)
	if c.Store.Driver == "" {
		c.Store.Driver = "supabase"
	}
	if c.RateLimit.Backend == "" {
		c.RateLimit.Backend = "memory"
	}
	if c.Download.DefaultName == "" {
		c.Download.DefaultName = "file.pdf"
	}
	if c.Store.Supabase.Table == "" {
		c.Store.Supabase.Table = "posts"
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
}

// TelegramURL returns the public link of the mirrored channel.
func (c AppConfig) TelegramURL() string {
	return "https://t.me/" + c.Site.TelegramChannel
}

// GetBasePath finds the nearest directory, from the working directory upwards, that
// contains config.yaml. It falls back to the working directory.
func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return cwd
}
