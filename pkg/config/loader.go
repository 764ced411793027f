package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
	ErrInvalidEnv       = errors.New("invalid environment override")
)

// EnvConfig names the variable that points at the configuration file.
const EnvConfig = "XMLAD_CONFIG"

// DiscoveryOrder lists the file names looked up in the working directory.
var DiscoveryOrder = []string{
	"xmlad.yaml",
	"xmlad.yml",
}

// envVarPattern matches ${VAR_NAME} or ${VAR_NAME:-default}
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			Path:            "/xmla",
			MaxBodySize:     10 << 20,
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(60 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
			FaultActor:      "xmlad",
			MetricsPath:     "/metrics",
		},
		Session: SessionConfig{
			TTL:           Duration(30 * time.Minute),
			SweepInterval: Duration(time.Minute),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML file over the defaults. Environment references in the
// file are expanded first.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	return Parse(data)
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal([]byte(ExpandEnvVars(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return cfg, nil
}

// Discover finds a configuration file through XMLAD_CONFIG or in the working
// directory. It returns "" without error when there is none.
func Discover() (string, error) {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s points to non-existent file: %s", EnvConfig, envPath)
		}
		return envPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	for _, name := range DiscoveryOrder {
		path := filepath.Join(cwd, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// ExpandEnvVars expands ${VAR_NAME} and ${VAR_NAME:-default} in input.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		submatch := envVarPattern.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		if val := os.Getenv(submatch[1]); val != "" {
			return val
		}
		if len(submatch) >= 3 {
			return submatch[2]
		}
		return ""
	})
}

// ApplyEnv overrides cfg from XMLAD_* variables read through getenv.
//
//	XMLAD_ADDR, XMLAD_PATH, XMLAD_MAX_BODY_SIZE,
//	XMLAD_SESSION_TTL, XMLAD_MAX_SESSIONS,
//	XMLAD_LOG_LEVEL, XMLAD_LOG_FORMAT, XMLAD_LOG_FILE
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	strs := map[string]*string{
		"XMLAD_ADDR":       &cfg.Server.Addr,
		"XMLAD_PATH":       &cfg.Server.Path,
		"XMLAD_LOG_LEVEL":  &cfg.Log.Level,
		"XMLAD_LOG_FORMAT": &cfg.Log.Format,
		"XMLAD_LOG_FILE":   &cfg.Log.File,
	}
	for name, dst := range strs {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}

	if v := getenv("XMLAD_MAX_BODY_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: XMLAD_MAX_BODY_SIZE=%q", ErrInvalidEnv, v)
		}
		cfg.Server.MaxBodySize = n
	}
	if v := getenv("XMLAD_MAX_SESSIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: XMLAD_MAX_SESSIONS=%q", ErrInvalidEnv, v)
		}
		cfg.Session.MaxSessions = n
	}
	if v := getenv("XMLAD_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: XMLAD_SESSION_TTL=%q", ErrInvalidEnv, v)
		}
		cfg.Session.TTL = Duration(d)
	}
	return nil
}
