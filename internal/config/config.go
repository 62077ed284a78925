package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/vadimbarashkov/trimmer/internal/shortcode"
	"gopkg.in/yaml.v3"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	Env        string `yaml:"env"`
	BaseURL    string `yaml:"base_url"`
	HTTPServer `yaml:"http_server"`
	Storage    `yaml:"storage"`
	Postgres   `yaml:"postgres"`
	SQLite     `yaml:"sqlite"`
	ShortCode  `yaml:"short_code"`
	Alias      `yaml:"alias"`
	Analytics  `yaml:"analytics"`
}

type HTTPServer struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxHeaderBytes int           `yaml:"max_header_bytes"`
	CertFile       string        `yaml:"cert_file"`
	KeyFile        string        `yaml:"key_file"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

var defaultHTTPServer = HTTPServer{
	Port:           8080,
	ReadTimeout:    5 * time.Second,
	WriteTimeout:   10 * time.Second,
	IdleTimeout:    time.Minute,
	MaxHeaderBytes: 1 << 20,
	AllowedOrigins: []string{"https://*"},
}

func (s *HTTPServer) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Storage selects the link store backend.
type Storage struct {
	Driver string `yaml:"driver"`
}

type Postgres struct {
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	DB              string        `yaml:"db"`
	SSLMode         string        `yaml:"sslmode"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
}

var defaultPostgres = Postgres{
	Host:            "localhost",
	Port:            5432,
	SSLMode:         "disable",
	ConnMaxIdleTime: 5 * time.Minute,
	ConnMaxLifetime: 30 * time.Minute,
	MaxIdleConns:    5,
	MaxOpenConns:    25,
	ConnectTimeout:  15 * time.Second,
}

func (p *Postgres) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     p.DB,
		RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
	}
	return u.String()
}

type SQLite struct {
	Path        string        `yaml:"path"`
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

var defaultSQLite = SQLite{
	Path:        "data/trimmer.db",
	BusyTimeout: 10 * time.Second,
}

type ShortCode struct {
	Length      int `yaml:"length"`
	MaxAttempts int `yaml:"max_attempts"`
}

var defaultShortCode = ShortCode{
	Length:      7,
	MaxAttempts: 5,
}

// Alias holds the custom alias rules. Reserved words extend the built-in list.
type Alias struct {
	MinLength int      `yaml:"min_length"`
	MaxLength int      `yaml:"max_length"`
	Reserved  []string `yaml:"reserved"`
}

var defaultAlias = Alias{
	MinLength: shortcode.MinAliasLength,
	MaxLength: shortcode.MaxAliasLength,
}

type Analytics struct {
	BufferSize    int           `yaml:"buffer_size"`
	Workers       int           `yaml:"workers"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	MaxRetries    uint64        `yaml:"max_retries"`
	RetryInterval time.Duration `yaml:"retry_interval"`
	DrainTimeout  time.Duration `yaml:"drain_timeout"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	RecentEvents  int           `yaml:"recent_events"`
}

var defaultAnalytics = Analytics{
	BufferSize:    1024,
	Workers:       4,
	WriteTimeout:  2 * time.Second,
	MaxRetries:    3,
	RetryInterval: 50 * time.Millisecond,
	DrainTimeout:  5 * time.Second,
	FlushInterval: 100 * time.Millisecond,
	RecentEvents:  20,
}

func Load(path string) (*Config, error) {
	const op = "config.Load"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open config file: %w", op, err)
	}
	defer f.Close()

	var cfg Config
	setDefaults(&cfg)

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to decode config file: %w", op, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: invalid config: %w", op, err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

func setDefaults(cfg *Config) {
	cfg.Env = EnvDev
	cfg.BaseURL = "http://localhost:8080"
	cfg.HTTPServer = defaultHTTPServer
	cfg.Storage = Storage{Driver: DriverPostgres}
	cfg.Postgres = defaultPostgres
	cfg.SQLite = defaultSQLite
	cfg.ShortCode = defaultShortCode
	cfg.Alias = defaultAlias
	cfg.Analytics = defaultAnalytics
}

// Validate reports every out-of-range setting at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Env {
	case EnvDev, EnvStage, EnvProd:
	default:
		errs = append(errs, fmt.Errorf("env: unknown value %q", c.Env))
	}

	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("base_url: %q is not an absolute url", c.BaseURL))
	}

	switch c.Storage.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.driver: unknown value %q", c.Storage.Driver))
	}

	if c.Storage.Driver == DriverSQLite && c.SQLite.Path == "" {
		errs = append(errs, errors.New("sqlite.path: must not be empty"))
	}

	if c.ShortCode.Length < shortcode.MinLength || c.ShortCode.Length > shortcode.MaxLength {
		errs = append(errs, fmt.Errorf("short_code.length: must be between %d and %d", shortcode.MinLength, shortcode.MaxLength))
	}
	if c.ShortCode.MaxAttempts < 1 {
		errs = append(errs, errors.New("short_code.max_attempts: must be positive"))
	}

	if c.Alias.MinLength < 1 || c.Alias.MaxLength < c.Alias.MinLength {
		errs = append(errs, errors.New("alias: min_length must be positive and not above max_length"))
	}
	if c.Alias.MaxLength > shortcode.MaxKeyLength {
		errs = append(errs, fmt.Errorf("alias.max_length: must not exceed %d", shortcode.MaxKeyLength))
	}

	if c.Analytics.BufferSize < 1 {
		errs = append(errs, errors.New("analytics.buffer_size: must be positive"))
	}
	if c.Analytics.Workers < 1 {
		errs = append(errs, errors.New("analytics.workers: must be positive"))
	}
	if c.Analytics.RecentEvents < 0 {
		errs = append(errs, errors.New("analytics.recent_events: must not be negative"))
	}

	return errors.Join(errs...)
}
