package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// HTTPConfig is the HTTP configuration for the server.
type HTTPConfig struct {
	// ListenAddr is the address on which the HTTP server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`

	// TLSKeyPath is the path to the TLS private key.
	TLSKeyPath string `env:"TLS_KEY_PATH" yaml:"tls_key_path"`

	// TLSCertPath is the path to the TLS certificate.
	TLSCertPath string `env:"TLS_CERT_PATH" yaml:"tls_cert_path"`

	// PublicURL is the public URL of the HTTP server.
	// It is used as the issuer of access tokens.
	PublicURL string `env:"PUBLIC_URL" yaml:"public_url"`

	// CORS is the cross-origin configuration of the API.
	CORS CORSConfig `envPrefix:"CORS_" yaml:"cors"`
}

// CORSConfig is the CORS configuration for the HTTP server.
type CORSConfig struct {
	AllowedHeaders []string `env:"ALLOWED_HEADERS" yaml:"allowed_headers"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	AllowedMethods []string `env:"ALLOWED_METHODS" yaml:"allowed_methods"`
}

// StatsConfig is the configuration for the stats server.
type StatsConfig struct {
	// Enabled toggles the stats server.
	Enabled bool `env:"ENABLED" yaml:"enabled"`

	// ListenAddr is the address on which the stats server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`
}

// LogConfig is the logger configuration.
type LogConfig struct {
	// Format is the format of the logs.
	// Valid values are "json", "logfmt", and "text".
	Format string `env:"FORMAT" yaml:"format"`

	// Time format for the log `ts` field.
	// Format must be described in Golang's time format.
	TimeFormat string `env:"TIME_FORMAT" yaml:"time_format"`

	// Path to a file to write logs to.
	// If not set, logs will be written to stderr.
	Path string `env:"PATH" yaml:"path"`
}

// DBConfig is the database connection configuration.
type DBConfig struct {
	// Driver is the driver for the database.
	Driver string `env:"DRIVER" yaml:"driver"`

	// DataSource is the database data source name.
	DataSource string `env:"DATA_SOURCE" yaml:"data_source"`
}

// AuthConfig is the configuration for bearer token authentication.
type AuthConfig struct {
	// KeyPath is the path to the Ed25519 key used to sign access tokens.
	KeyPath string `env:"KEY_PATH" yaml:"key_path"`

	// TokenExpiry is the default lifetime of issued access tokens.
	TokenExpiry time.Duration `env:"TOKEN_EXPIRY" yaml:"token_expiry"`
}

// JobsConfig is the configuration for cron jobs.
type JobsConfig struct {
	// Stats is the schedule of the gauge refresh job.
	Stats string `env:"STATS" yaml:"stats"`
}

// Config is the configuration for Punch.
type Config struct {
	// Name is the name of the server. It is the audience of access tokens.
	Name string `env:"NAME" yaml:"name"`

	// HTTP is the configuration for the HTTP server.
	HTTP HTTPConfig `envPrefix:"HTTP_" yaml:"http"`

	// Stats is the configuration for the stats server.
	Stats StatsConfig `envPrefix:"STATS_" yaml:"stats"`

	// Log is the logger configuration.
	Log LogConfig `envPrefix:"LOG_" yaml:"log"`

	// DB is the database configuration.
	DB DBConfig `envPrefix:"DB_" yaml:"db"`

	// Auth is the access token configuration.
	Auth AuthConfig `envPrefix:"AUTH_" yaml:"auth"`

	// Jobs is the configuration for cron jobs.
	Jobs JobsConfig `envPrefix:"JOBS_" yaml:"jobs"`

	// Superadmins is a list of emails that bypass team membership checks.
	Superadmins []string `env:"SUPERADMINS" envSeparator:"," yaml:"superadmins"`

	// DataPath is the path to the directory where Punch will store its data.
	DataPath string `env:"DATA_PATH" yaml:"-"`
}

// Environ returns the config as a list of environment variables.
func (c *Config) Environ() []string {
	envs := []string{}
	if c == nil {
		return envs
	}

	envs = append(envs, []string{
		fmt.Sprintf("PUNCH_DATA_PATH=%s", c.DataPath),
		fmt.Sprintf("PUNCH_NAME=%s", c.Name),
		fmt.Sprintf("PUNCH_SUPERADMINS=%s", strings.Join(c.Superadmins, ",")),
		fmt.Sprintf("PUNCH_HTTP_LISTEN_ADDR=%s", c.HTTP.ListenAddr),
		fmt.Sprintf("PUNCH_HTTP_TLS_KEY_PATH=%s", c.HTTP.TLSKeyPath),
		fmt.Sprintf("PUNCH_HTTP_TLS_CERT_PATH=%s", c.HTTP.TLSCertPath),
		fmt.Sprintf("PUNCH_HTTP_PUBLIC_URL=%s", c.HTTP.PublicURL),
		fmt.Sprintf("PUNCH_HTTP_CORS_ALLOWED_HEADERS=%s", strings.Join(c.HTTP.CORS.AllowedHeaders, ",")),
		fmt.Sprintf("PUNCH_HTTP_CORS_ALLOWED_ORIGINS=%s", strings.Join(c.HTTP.CORS.AllowedOrigins, ",")),
		fmt.Sprintf("PUNCH_HTTP_CORS_ALLOWED_METHODS=%s", strings.Join(c.HTTP.CORS.AllowedMethods, ",")),
		fmt.Sprintf("PUNCH_STATS_ENABLED=%t", c.Stats.Enabled),
		fmt.Sprintf("PUNCH_STATS_LISTEN_ADDR=%s", c.Stats.ListenAddr),
		fmt.Sprintf("PUNCH_LOG_FORMAT=%s", c.Log.Format),
		fmt.Sprintf("PUNCH_LOG_TIME_FORMAT=%s", c.Log.TimeFormat),
		fmt.Sprintf("PUNCH_DB_DRIVER=%s", c.DB.Driver),
		fmt.Sprintf("PUNCH_DB_DATA_SOURCE=%s", c.DB.DataSource),
		fmt.Sprintf("PUNCH_AUTH_KEY_PATH=%s", c.Auth.KeyPath),
		fmt.Sprintf("PUNCH_AUTH_TOKEN_EXPIRY=%s", c.Auth.TokenExpiry),
		fmt.Sprintf("PUNCH_JOBS_STATS=%s", c.Jobs.Stats),
	}...)

	return envs
}

// IsDebug returns true if the server is running in debug mode.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("PUNCH_DEBUG"))
	return debug
}

// IsVerbose returns true if the server is running in verbose mode.
// Verbose mode is only enabled if debug mode is enabled.
func IsVerbose() bool {
	verbose, _ := strconv.ParseBool(os.Getenv("PUNCH_VERBOSE"))
	return IsDebug() && verbose
}

// parseFile parses the given file as a configuration file.
// The file must be in YAML format.
func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close() // nolint: errcheck
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return cfg.Validate()
}

// ParseFile parses the config from the default file path.
// This also calls Validate() on the config.
func (c *Config) ParseFile() error {
	return parseFile(c, c.ConfigPath())
}

// parseEnv parses the environment variables as a configuration file.
func parseEnv(cfg *Config) error {
	// Merge superadmins from both config file and environment variables.
	superadmins := append([]string{}, cfg.Superadmins...)

	// Override with environment variables
	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix: "PUNCH_",
	}); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	if os.Getenv("PUNCH_SUPERADMINS") != "" {
		cfg.Superadmins = append(cfg.Superadmins, superadmins...)
	}

	return cfg.Validate()
}

// ParseEnv parses the config from the environment variables.
// This also calls Validate() on the config.
func (c *Config) ParseEnv() error {
	return parseEnv(c)
}

// Parse parses the config from the default file path and environment variables.
// This also calls Validate() on the config.
func (c *Config) Parse() error {
	if err := c.ParseFile(); err != nil {
		return err
	}

	return c.ParseEnv()
}

// writeConfig writes the configuration to the given file.
func writeConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(newConfigFile(cfg)), 0o644) // nolint: errcheck, gosec
}

// WriteConfig writes the configuration to the default file.
func (c *Config) WriteConfig() error {
	return writeConfig(c, c.ConfigPath())
}

// DefaultDataPath returns the path to the data directory.
// It uses the PUNCH_DATA_PATH environment variable if set, otherwise it
// uses "data".
func DefaultDataPath() string {
	dp := os.Getenv("PUNCH_DATA_PATH")
	if dp == "" {
		dp = "data"
	}

	return dp
}

// ConfigPath returns the path to the config file.
// PUNCH_CONFIG_LOCATION takes precedence over the data directory.
func (c *Config) ConfigPath() string { // nolint:revive
	if path := os.Getenv("PUNCH_CONFIG_LOCATION"); exist(path) {
		return path
	}

	return filepath.Join(c.DataPath, "config.yaml")
}

func exist(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Exist returns true if the config file exists.
func (c *Config) Exist() bool {
	return exist(c.ConfigPath())
}

// DefaultConfig returns the default Config. All the path values are relative
// to the data directory.
// Use Validate() to validate the config and ensure absolute paths.
func DefaultConfig() *Config {
	return &Config{
		Name:     "Punch",
		DataPath: DefaultDataPath(),
		HTTP: HTTPConfig{
			ListenAddr: ":8080",
			PublicURL:  "http://localhost:8080",
		},
		Stats: StatsConfig{
			Enabled:    true,
			ListenAddr: "localhost:8081",
		},
		Log: LogConfig{
			Format:     "text",
			TimeFormat: time.DateTime,
		},
		DB: DBConfig{
			Driver: "sqlite",
			DataSource: "punch.db" +
				"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
		},
		Auth: AuthConfig{
			KeyPath:     filepath.Join("keys", "punch_token_ed25519"),
			TokenExpiry: 24 * time.Hour,
		},
		Jobs: JobsConfig{
			Stats: "@every 1m",
		},
	}
}

// Validate validates the configuration.
// It updates the configuration with absolute paths.
func (c *Config) Validate() error {
	// Use absolute paths
	if !filepath.IsAbs(c.DataPath) {
		dp, err := filepath.Abs(c.DataPath)
		if err != nil {
			return err
		}
		c.DataPath = dp
	}

	c.HTTP.PublicURL = strings.TrimSuffix(c.HTTP.PublicURL, "/")

	if c.HTTP.TLSKeyPath != "" && !filepath.IsAbs(c.HTTP.TLSKeyPath) {
		c.HTTP.TLSKeyPath = filepath.Join(c.DataPath, c.HTTP.TLSKeyPath)
	}

	if c.HTTP.TLSCertPath != "" && !filepath.IsAbs(c.HTTP.TLSCertPath) {
		c.HTTP.TLSCertPath = filepath.Join(c.DataPath, c.HTTP.TLSCertPath)
	}

	if c.Auth.KeyPath != "" && !filepath.IsAbs(c.Auth.KeyPath) {
		c.Auth.KeyPath = filepath.Join(c.DataPath, c.Auth.KeyPath)
	}

	if c.Auth.TokenExpiry < 0 {
		return fmt.Errorf("invalid token expiry: %s", c.Auth.TokenExpiry)
	}

	if strings.HasPrefix(c.DB.Driver, "sqlite") && !filepath.IsAbs(c.DB.DataSource) {
		c.DB.DataSource = filepath.Join(c.DataPath, c.DB.DataSource)
	}

	c.Superadmins = normalizeEmails(c.Superadmins)

	return nil
}

// normalizeEmails lowercases, trims, and deduplicates a list of emails.
func normalizeEmails(emails []string) []string {
	exist := make(map[string]struct{}, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if _, ok := exist[e]; ok {
			continue
		}
		exist[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// IsSuperadmin reports whether the given email is on the superadmin
// allow-list.
func (c *Config) IsSuperadmin(email string) bool {
	if c == nil {
		return false
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range c.Superadmins {
		if e == email {
			return true
		}
	}
	return false
}
