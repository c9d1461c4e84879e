package config

import (
	"bytes"
	"text/template"
)

var configFileTmpl = template.Must(template.New("config").Parse(`# Punch Server configurations

# The name of the server.
# This is the audience of the access tokens issued by this server.
name: "{{ .Name }}"

# Logging configuration.
log:
  # Log format to use. Valid values are "json", "logfmt", and "text".
  format: "{{ .Log.Format }}"
  # Time format for the log "timestamp" field.
  # Should be described in Golang's time format.
  time_format: "{{ .Log.TimeFormat }}"
  # Path to the log file. Leave empty to write to stderr.
  #path: "{{ .Log.Path }}"

# The HTTP server configuration.
http:
  # The address on which the HTTP server will listen.
  listen_addr: "{{ .HTTP.ListenAddr }}"

  # The path to the TLS private key.
  tls_key_path: "{{ .HTTP.TLSKeyPath }}"

  # The path to the TLS certificate.
  tls_cert_path: "{{ .HTTP.TLSCertPath }}"

  # The public URL of the HTTP server.
  # This is the issuer of access tokens.
  # Make sure to use https:// if you are using TLS.
  public_url: "{{ .HTTP.PublicURL }}"

  # The cross-origin request configuration.
  cors:
    # The allowed cross-origin headers
    allowed_headers:
      {{- range .HTTP.CORS.AllowedHeaders }}
      - "{{ . }}"
      {{- end }}
    # The allowed cross-origin URLs
    allowed_origins:
      {{- range .HTTP.CORS.AllowedOrigins }}
      - "{{ . }}"
      {{- end }}
    # The allowed cross-origin methods
    allowed_methods:
      {{- range .HTTP.CORS.AllowedMethods }}
      - "{{ . }}"
      {{- end }}

# The stats server configuration.
stats:
  # Whether to serve Prometheus metrics.
  enabled: {{ .Stats.Enabled }}

  # The address on which the stats server will listen.
  listen_addr: "{{ .Stats.ListenAddr }}"

# The database configuration.
db:
  # The database driver to use.
  # Valid values are "sqlite" and "postgres".
  driver: "{{ .DB.Driver }}"
  # The database data source name.
  # This is driver specific and can be a file path or connection string.
  # Make sure foreign key support is enabled when using SQLite.
  data_source: "{{ .DB.DataSource }}"

# Access token configuration.
auth:
  # The path to the Ed25519 key used to sign access tokens.
  # It is generated on first run.
  key_path: "{{ .Auth.KeyPath }}"

  # The default lifetime of issued access tokens.
  token_expiry: "{{ .Auth.TokenExpiry }}"

# Cron job configuration
jobs:
  # Refresh the open session and pending request gauges.
  stats: "{{ .Jobs.Stats }}"

# Emails that bypass team membership checks.
# These can also be set with the PUNCH_SUPERADMINS environment variable,
# separated by commas.
superadmins:
  {{- range .Superadmins }}
  - "{{ . }}"
  {{- end }}
`))

func newConfigFile(cfg *Config) string {
	var b bytes.Buffer
	configFileTmpl.Execute(&b, cfg) // nolint: errcheck
	return b.String()
}
