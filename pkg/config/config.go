package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/morning-briefings/briefctl/pkg/utils"
	"gopkg.in/yaml.v3"
)

// Supported database drivers.
const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DefaultSchema is the namespace holding the briefing tables.
const DefaultSchema = "pu_morning_briefings"

var (
	// ErrNilConfig is returned when a nil config is used.
	ErrNilConfig = errors.New("nil config")

	// ErrUnsupportedDriver is returned for an unknown database driver.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// DBConfig is the database connection configuration.
type DBConfig struct {
	// Driver is the database driver. Valid values are "pgx", "postgres" and
	// "sqlite".
	Driver string `env:"DRIVER" yaml:"driver"`

	// DataSource is a full data source name. When set, it takes precedence
	// over the discrete connection fields below.
	DataSource string `env:"DATA_SOURCE" yaml:"data_source"`

	// Host is the database server host.
	Host string `env:"HOST" yaml:"host"`

	// Port is the database server port.
	Port string `env:"PORT" yaml:"port"`

	// Name is the database name.
	Name string `env:"DB" yaml:"name"`

	// User is the database role to connect as.
	User string `env:"USER" yaml:"user"`

	// Password is the database role password.
	Password string `env:"PASSWORD" yaml:"password"`

	// SSLMode is the libpq sslmode. Defaults to "require".
	SSLMode string `env:"SSLMODE" yaml:"sslmode"`

	// Schema is the namespace the users and entries tables live in.
	// Ignored for SQLite.
	Schema string `env:"SCHEMA" yaml:"schema"`
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

// Config is the configuration for briefctl.
type Config struct {
	// DB is the database configuration.
	DB DBConfig `envPrefix:"AZURE_POSTGRES_" yaml:"db"`

	// Log is the logger configuration.
	Log LogConfig `envPrefix:"BRIEFCTL_LOG_" yaml:"log"`
}

// IsDebug returns true if debug logging is enabled.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("BRIEFCTL_DEBUG"))
	return debug
}

// IsVerbose returns true if verbose mode is enabled. Verbose mode traces
// every SQL statement and is only enabled together with debug mode.
func IsVerbose() bool {
	verbose, _ := strconv.ParseBool(os.Getenv("BRIEFCTL_VERBOSE"))
	return IsDebug() && verbose
}

// DefaultConfig returns the default Config.
func DefaultConfig() *Config {
	return &Config{
		DB: DBConfig{
			Driver:  DriverPgx,
			Port:    "5432",
			SSLMode: "require",
			Schema:  DefaultSchema,
		},
		Log: LogConfig{
			Format:     "text",
			TimeFormat: time.DateTime,
		},
	}
}

// LoadDotEnv loads environment variables from the given files. Variables
// already present in the environment are left untouched and missing files
// are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	return nil
}

// ParseFile parses the given YAML file into the config.
// This also calls Validate() on the config.
func (c *Config) ParseFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close() // nolint: errcheck
	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return c.Validate()
}

// ParseEnv overrides the config with environment variables.
// DATABASE_URL is honored for Postgres drivers when no data source is
// configured otherwise.
// This also calls Validate() on the config.
func (c *Config) ParseEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	if c.DB.DataSource == "" && driverName(c.DB.Driver) != DriverSQLite {
		if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
			c.DB.DataSource = dsn
		}
	}

	return c.Validate()
}

// driverName returns the canonical name of a driver alias.
func driverName(driver string) string {
	driver = strings.ToLower(strings.TrimSpace(driver))
	switch driver {
	case "":
		return DriverPgx
	case "sqlite3":
		return DriverSQLite
	case "postgresql":
		return DriverPostgres
	}
	return driver
}

// Validate checks the format of the configuration without changing it.
// Connection completeness is checked separately by DBConfig.Validate so
// commands that never touch the database keep working without credentials.
func (c *Config) Validate() error {
	switch driverName(c.DB.Driver) {
	case DriverPgx, DriverPostgres:
		if c.DB.Port != "" {
			if _, err := strconv.ParseUint(c.DB.Port, 10, 16); err != nil {
				return fmt.Errorf("invalid database port %q", c.DB.Port)
			}
		}
		if c.DB.Schema != "" {
			if err := utils.ValidateIdentifier(c.DB.Schema); err != nil {
				return fmt.Errorf("invalid schema name %q: %w", c.DB.Schema, err)
			}
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.DB.Driver)
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}

	return nil
}

// Normalize fills in the values that depend on the final driver. It must run
// once every layer (defaults, file, environment) has been applied.
func (c *Config) Normalize() error {
	if err := c.Validate(); err != nil {
		return err
	}

	c.DB.Driver = driverName(c.DB.Driver)
	switch c.DB.Driver {
	case DriverPgx, DriverPostgres:
		if c.DB.Port == "" {
			c.DB.Port = "5432"
		}
		if c.DB.SSLMode == "" {
			c.DB.SSLMode = "require"
		}
	case DriverSQLite:
		// SQLite has no schema namespaces.
		c.DB.Schema = ""
		if c.DB.DataSource == "" {
			c.DB.DataSource = "briefing.db?_pragma=foreign_keys(1)&_time_format=sqlite"
		}
	}

	return nil
}

// Validate returns an error if the connection parameters are incomplete.
func (d DBConfig) Validate() error {
	if d.DataSource != "" {
		return nil
	}

	var missing []string
	if d.Host == "" {
		missing = append(missing, "AZURE_POSTGRES_HOST")
	}
	if d.Name == "" {
		missing = append(missing, "AZURE_POSTGRES_DB")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing database configuration: %s", strings.Join(missing, ", "))
	}

	return nil
}

// DSN returns the data source name used to open the database.
func (d DBConfig) DSN() string {
	if d.DataSource != "" {
		return d.DataSource
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	if d.User != "" {
		u.User = url.UserPassword(d.User, d.Password)
	}

	return u.String()
}

// RedactedDSN returns the data source name with the password masked.
func (d DBConfig) RedactedDSN() string {
	dsn := d.DSN()
	if d.Driver == DriverSQLite {
		return dsn
	}

	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		// key=value DSNs are not parsed, never echo them.
		return "(redacted)"
	}

	return u.Redacted()
}
