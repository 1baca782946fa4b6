package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App struct {
		Name string `koanf:"name"`
		Env  string `koanf:"env"`
		Port string `koanf:"port"`
	} `koanf:"app"`

	DB struct {
		URL      string `koanf:"url"`
		Host     string `koanf:"host"`
		Port     string `koanf:"port"`
		User     string `koanf:"user"`
		Password string `koanf:"password"`
		Name     string `koanf:"name"`
		SSLMode  string `koanf:"sslmode"`
		MaxConns int32  `koanf:"maxconns"`
		MinConns int32  `koanf:"minconns"`
	} `koanf:"db"`

	Migrations struct {
		Dir string `koanf:"dir"`
	} `koanf:"migrations"`

	Redis struct {
		URL      string `koanf:"url"`
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
	} `koanf:"redis"`

	Cache struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"cache"`

	JWT struct {
		Secret string        `koanf:"secret"`
		Expiry time.Duration `koanf:"expiry"`
	} `koanf:"jwt"`

	Catalog struct {
		BaseURL string        `koanf:"base_url"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"catalog"`

	SMTP struct {
		Host string `koanf:"host"`
		Port int    `koanf:"port"`
		User string `koanf:"user"`
		Pass string `koanf:"pass"`
		From string `koanf:"from"`
	} `koanf:"smtp"`

	Cloudinary struct {
		URL       string `koanf:"url"`
		CloudName string `koanf:"cloud_name"`
		APIKey    string `koanf:"api_key"`
		APISecret string `koanf:"api_secret"`
		Folder    string `koanf:"folder"`
	} `koanf:"cloudinary"`

	Log struct {
		Level string `koanf:"level"`
		File  string `koanf:"file"`
	} `koanf:"log"`

	CORS struct {
		Origins []string `koanf:"origins"`
	} `koanf:"cors"`
}

var defaultPorts = map[string]string{
	"auth-service":    "8081",
	"product-service": "8082",
	"order-service":   "8083",
}

var defaultDatabases = map[string]string{
	"auth-service":    "auth_db",
	"product-service": "product_db",
	"order-service":   "order_db",
}

// envSections lists the env prefixes that are read into the config tree.
var envSections = []string{"APP", "DB", "MIGRATIONS", "REDIS", "CACHE", "JWT", "CATALOG", "SMTP", "CLOUDINARY", "LOG", "CORS"}

func defaults(service string) Config {
	var cfg Config
	cfg.App.Name = service
	cfg.App.Env = "development"
	cfg.App.Port = defaultPorts[service]
	cfg.DB.Host = "localhost"
	cfg.DB.Port = "5432"
	cfg.DB.User = "postgres"
	cfg.DB.Password = "postgres"
	cfg.DB.Name = defaultDatabases[service]
	cfg.DB.SSLMode = "disable"
	cfg.DB.MaxConns = 25
	cfg.DB.MinConns = 5
	cfg.Migrations.Dir = "db/migrations/" + strings.TrimSuffix(service, "-service")
	cfg.Redis.Addr = "localhost:6379"
	cfg.JWT.Secret = "secret"
	cfg.JWT.Expiry = 24 * time.Hour
	cfg.Catalog.BaseURL = "http://localhost:8082"
	cfg.Catalog.Timeout = 5 * time.Second
	cfg.SMTP.Port = 587
	cfg.Cloudinary.Folder = "products"
	cfg.Log.Level = "info"
	cfg.Log.File = "./logs/" + service + ".log"
	cfg.CORS.Origins = []string{"http://localhost:5173"}
	return cfg
}

// Load builds the config for service from defaults, .env, an optional YAML
// file named by CONFIG_FILE, and finally the process environment.
func Load(service string) (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := defaults(service)
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps DB_HOST to db.host and CATALOG_BASE_URL to catalog.base_url.
// Variables outside the known sections are skipped.
func envKey(s string) string {
	section, rest, ok := strings.Cut(s, "_")
	if !ok {
		return ""
	}
	for _, known := range envSections {
		if section == known {
			return strings.ToLower(section) + "." + strings.ToLower(rest)
		}
	}
	return ""
}

func (c *Config) Validate() error {
	if c.App.Port == "" {
		return errors.New("app.port required")
	}
	if c.DB.URL == "" && (c.DB.Host == "" || c.DB.Name == "") {
		return errors.New("db.url or db.host and db.name required")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret required")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *Config) DSN() string {
	if c.DB.URL != "" {
		return c.DB.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode,
	)
}
