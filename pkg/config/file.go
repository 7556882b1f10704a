package config

import (
	"bytes"
	"text/template"
)

var configFileTmpl = template.Must(template.New("config").Parse(`# briefctl configuration
# Every value can be overridden with the environment variable named next to it.

# Database configuration.
db:
  # Database driver. Valid values are "pgx", "postgres", and "sqlite".
  # AZURE_POSTGRES_DRIVER
  driver: "{{ .DB.Driver }}"
  # Full data source name. Takes precedence over the fields below.
  # AZURE_POSTGRES_DATA_SOURCE or DATABASE_URL
  #data_source: "{{ if .DB.DataSource }}{{ .DB.RedactedDSN }}{{ end }}"
  # AZURE_POSTGRES_HOST
  host: "{{ .DB.Host }}"
  # AZURE_POSTGRES_PORT
  port: "{{ .DB.Port }}"
  # AZURE_POSTGRES_DB
  name: "{{ .DB.Name }}"
  # AZURE_POSTGRES_USER
  user: "{{ .DB.User }}"
  # AZURE_POSTGRES_PASSWORD
  password: "{{ if .DB.Password }}********{{ end }}"
  # AZURE_POSTGRES_SSLMODE
  sslmode: "{{ .DB.SSLMode }}"
  # Schema holding the users and entries tables (ignored for SQLite).
  # AZURE_POSTGRES_SCHEMA
  schema: "{{ .DB.Schema }}"

# Logging configuration.
log:
  # Log format to use. Valid values are "json", "logfmt", and "text".
  # BRIEFCTL_LOG_FORMAT
  format: "{{ .Log.Format }}"
  # Time format for the log "timestamp" field.
  # BRIEFCTL_LOG_TIME_FORMAT
  time_format: "{{ .Log.TimeFormat }}"
  # Path to the log file. Leave empty to write to stderr.
  # BRIEFCTL_LOG_PATH
  #path: "{{ .Log.Path }}"
`))

func newConfigFile(cfg *Config) string {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	var b bytes.Buffer
	configFileTmpl.Execute(&b, cfg) // nolint: errcheck
	return b.String()
}

// String renders the configuration as a commented YAML file with the
// password masked.
func (c *Config) String() string {
	return newConfigFile(c)
}
