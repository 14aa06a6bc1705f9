package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string     `koanf:"host"`
	Port            int        `koanf:"port"`
	Mode            string     `koanf:"mode"`
	ShutdownTimeout string     `koanf:"shutdown_timeout"`
	CORS            CORSConfig `koanf:"cors"`
}

// CORSConfig holds CORS middleware settings. Empty lists keep the middleware defaults.
type CORSConfig struct {
	AllowOrigins     []string `koanf:"allow_origins"`
	AllowMethods     []string `koanf:"allow_methods"`
	AllowHeaders     []string `koanf:"allow_headers"`
	ExposeHeaders    []string `koanf:"expose_headers"`
	AllowCredentials *bool    `koanf:"allow_credentials"`
	MaxAge           string   `koanf:"max_age"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver   string         `koanf:"driver"`
	SQLite   SQLiteConfig   `koanf:"sqlite"`
	Postgres PostgresConfig `koanf:"postgres"`
	MySQL    MySQLConfig    `koanf:"mysql"`
	Pool     PoolConfig     `koanf:"pool"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"dbname"`
	SSLMode  string `koanf:"sslmode"`
}

// MySQLConfig holds MySQL-specific settings.
type MySQLConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"dbname"`
	Charset  string `koanf:"charset"`
	TLS      string `koanf:"tls"`
}

// PoolConfig holds database connection pool settings.
type PoolConfig struct {
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	ConnMaxLifetime string `koanf:"conn_max_lifetime"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level           string `koanf:"level"`
	Format          string `koanf:"format"`
	Color           *bool  `koanf:"color"`
	FilePath        string `koanf:"file_path"`
	MaxSizeMB       int    `koanf:"max_size_mb"`
	RetentionDays   int    `koanf:"retention_days"`
	MaxBackups      int    `koanf:"max_backups"`
	CompressRotated *bool  `koanf:"compress_rotated"`
}

// Load reads configuration from a YAML file and overlays environment variables.
// Environment variables use the prefix "APP__" and double-underscore as the
// hierarchy separator. Single underscores are preserved as part of the key name,
// so APP__DATABASE__POOL__MAX_IDLE_CONNS=20 overrides database.pool.max_idle_conns.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	if err := k.Load(env.Provider("APP__", ".", func(s string) string {
		key := strings.TrimPrefix(s, "APP__")
		key = strings.ToLower(key)
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field constraints and supported values.
// String fields are trimmed in place.
func (c *Config) Validate() error {
	if err := c.Server.validate(); err != nil {
		return err
	}
	if err := c.Database.validate(c.Server.Mode); err != nil {
		return err
	}
	return c.Log.validate()
}

func (s *ServerConfig) validate() error {
	mode := strings.TrimSpace(s.Mode)
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		s.Mode = mode
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", s.Mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}

	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", s.Port)
	}

	host := strings.TrimSpace(s.Host)
	if host == "" {
		return fmt.Errorf("server.host is required")
	}
	s.Host = host

	s.ShutdownTimeout = strings.TrimSpace(s.ShutdownTimeout)
	if err := validatePositiveDuration("server.shutdown_timeout", s.ShutdownTimeout); err != nil {
		return err
	}

	s.CORS.MaxAge = strings.TrimSpace(s.CORS.MaxAge)
	if err := validatePositiveDuration("server.cors.max_age", s.CORS.MaxAge); err != nil {
		return err
	}

	for i, o := range s.CORS.AllowOrigins {
		o = strings.TrimSpace(o)
		if o == "" {
			return fmt.Errorf("server.cors.allow_origins[%d] cannot be empty", i)
		}
		s.CORS.AllowOrigins[i] = o
	}
	return nil
}

func (d *DatabaseConfig) validate(mode string) error {
	d.Driver = strings.ToLower(strings.TrimSpace(d.Driver))

	switch d.Driver {
	case "sqlite":
		path := strings.TrimSpace(d.SQLite.Path)
		if path == "" {
			return fmt.Errorf("database.sqlite.path is required when driver is sqlite")
		}
		d.SQLite.Path = path
	case "postgres":
		if err := d.Postgres.validate(mode); err != nil {
			return err
		}
	case "mysql":
		if err := d.MySQL.validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid database.driver %q: must be one of %q, %q, %q", d.Driver, "sqlite", "postgres", "mysql")
	}

	if d.Pool.MaxIdleConns < 0 {
		return fmt.Errorf("invalid database.pool.max_idle_conns %d: must not be negative", d.Pool.MaxIdleConns)
	}
	if d.Pool.MaxOpenConns < 0 {
		return fmt.Errorf("invalid database.pool.max_open_conns %d: must not be negative", d.Pool.MaxOpenConns)
	}
	d.Pool.ConnMaxLifetime = strings.TrimSpace(d.Pool.ConnMaxLifetime)
	return validatePositiveDuration("database.pool.conn_max_lifetime", d.Pool.ConnMaxLifetime)
}

func (p *PostgresConfig) validate(mode string) error {
	p.Host = strings.TrimSpace(p.Host)
	if p.Host == "" {
		return fmt.Errorf("database.postgres.host is required when driver is postgres")
	}
	if p.Port < 1 || p.Port > 65535 {
		return fmt.Errorf("invalid database.postgres.port %d: must be between 1 and 65535", p.Port)
	}
	p.User = strings.TrimSpace(p.User)
	if p.User == "" {
		return fmt.Errorf("database.postgres.user is required when driver is postgres")
	}
	p.DBName = strings.TrimSpace(p.DBName)
	if p.DBName == "" {
		return fmt.Errorf("database.postgres.dbname is required when driver is postgres")
	}

	sslMode := strings.TrimSpace(p.SSLMode)
	switch sslMode {
	case "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
	default:
		return fmt.Errorf("invalid database.postgres.sslmode %q: must be one of %q, %q, %q, %q, %q, %q", p.SSLMode, "disable", "allow", "prefer", "require", "verify-ca", "verify-full")
	}
	if mode == gin.ReleaseMode {
		switch sslMode {
		case "require", "verify-ca", "verify-full":
		default:
			return fmt.Errorf("invalid database.postgres.sslmode %q for server.mode %q: must be one of %q, %q, %q", p.SSLMode, gin.ReleaseMode, "require", "verify-ca", "verify-full")
		}
	}
	p.SSLMode = sslMode
	return nil
}

func (m *MySQLConfig) validate() error {
	m.Host = strings.TrimSpace(m.Host)
	if m.Host == "" {
		return fmt.Errorf("database.mysql.host is required when driver is mysql")
	}
	if m.Port < 1 || m.Port > 65535 {
		return fmt.Errorf("invalid database.mysql.port %d: must be between 1 and 65535", m.Port)
	}
	m.User = strings.TrimSpace(m.User)
	if m.User == "" {
		return fmt.Errorf("database.mysql.user is required when driver is mysql")
	}
	m.DBName = strings.TrimSpace(m.DBName)
	if m.DBName == "" {
		return fmt.Errorf("database.mysql.dbname is required when driver is mysql")
	}
	m.Charset = strings.TrimSpace(m.Charset)
	if m.Charset == "" {
		m.Charset = "utf8mb4"
	}

	tls := strings.ToLower(strings.TrimSpace(m.TLS))
	switch tls {
	case "", "false", "true", "skip-verify", "preferred":
		m.TLS = tls
	default:
		return fmt.Errorf("invalid database.mysql.tls %q: must be one of %q, %q, %q, %q", m.TLS, "false", "true", "skip-verify", "preferred")
	}
	return nil
}

func (l *LogConfig) validate() error {
	level := strings.ToLower(strings.TrimSpace(l.Level))
	switch level {
	case "debug", "info", "warn", "error":
		l.Level = level
	default:
		return fmt.Errorf("invalid log.level %q: must be one of %q, %q, %q, %q", l.Level, "debug", "info", "warn", "error")
	}

	format := strings.ToLower(strings.TrimSpace(l.Format))
	switch format {
	case "text", "json":
		l.Format = format
	default:
		return fmt.Errorf("invalid log.format %q: must be one of %q, %q", l.Format, "text", "json")
	}
	return nil
}

// validatePositiveDuration accepts an empty value (unset) or a Go duration > 0.
func validatePositiveDuration(name, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: must be a valid duration (e.g. \"5s\", \"1h\"): %w", name, value, err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid %s %q: must be greater than 0", name, value)
	}
	return nil
}
