package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
	Catalog CatalogConfig `yaml:"catalog"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	Path            string   `yaml:"path"`
	MaxBodySize     int64    `yaml:"maxBodySize"`
	ReadTimeout     Duration `yaml:"readTimeout"`
	WriteTimeout    Duration `yaml:"writeTimeout"`
	ShutdownTimeout Duration `yaml:"shutdownTimeout"`
	FaultActor      string   `yaml:"faultActor"`
	// MetricsPath serves Prometheus metrics. Empty disables the endpoint.
	MetricsPath string `yaml:"metricsPath"`
}

// SessionConfig configures the in-memory session store.
type SessionConfig struct {
	// TTL is the idle time after which a session expires. Zero disables expiry.
	TTL           Duration `yaml:"ttl"`
	SweepInterval Duration `yaml:"sweepInterval"`
	MaxSessions   int      `yaml:"maxSessions"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File receives a JSON copy of the log when set.
	File string `yaml:"file"`
}

// CatalogConfig declares what the static engine answers.
type CatalogConfig struct {
	Rowsets    []RowsetConfig    `yaml:"rowsets"`
	Statements []StatementConfig `yaml:"statements"`
	// Commands lists command kinds acknowledged with an empty result,
	// e.g. ClearCache or BeginTransaction.
	Commands []string `yaml:"commands"`
}

// RowsetConfig is the rowset returned for one Discover RequestType.
type RowsetConfig struct {
	RequestType string         `yaml:"requestType"`
	Columns     []ColumnConfig `yaml:"columns"`
	// Required names restrictions a request must supply.
	Required []string            `yaml:"required,omitempty"`
	Rows     []map[string]string `yaml:"rows"`
}

// ColumnConfig declares a rowset column.
type ColumnConfig struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Nullable bool   `yaml:"nullable,omitempty"`
}

// StatementConfig is a canned answer to a Statement command. Exactly one of
// Match and Pattern is set.
type StatementConfig struct {
	// Match is compared with the statement text ignoring case and runs of
	// whitespace.
	Match string `yaml:"match,omitempty"`
	// Pattern is a regular expression matched against the statement text.
	Pattern string              `yaml:"pattern,omitempty"`
	Columns []ColumnConfig      `yaml:"columns,omitempty"`
	Rows    []map[string]string `yaml:"rows,omitempty"`
	Fault   *FaultConfig        `yaml:"fault,omitempty"`
	Delay   Duration            `yaml:"delay,omitempty"`
}

// FaultConfig makes a statement fail with a taxonomy fault.
type FaultConfig struct {
	Code    string `yaml:"code"`
	Message string `yaml:"message"`
}

// Duration is a time.Duration written in Go syntax in YAML.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q: %w", node.Line, s, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}
