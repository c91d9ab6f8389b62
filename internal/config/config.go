// Package config loads CLI defaults from a YAML or JSONC file and the
// environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/provide-io/huffcrypt/pkg/logging"
	"github.com/provide-io/huffcrypt/pkg/operations"
	"github.com/provide-io/huffcrypt/pkg/utils/permissions"
)

// Environment overrides. Log settings share their names with pkg/logging.
const (
	EnvTransport   = "HUFFCRYPT_TRANSPORT"
	EnvCompression = "HUFFCRYPT_COMPRESSION"
)

// Config holds CLI defaults. Flags override it.
type Config struct {
	LogLevel    string `yaml:"log_level" json:"log_level"`
	JSONLog     bool   `yaml:"json_log" json:"json_log"`
	Transport   string `yaml:"transport" json:"transport"`
	Compression string `yaml:"compression" json:"compression"`
	FileMode    string `yaml:"file_mode" json:"file_mode"`

	// Source is the file the config was read from, empty when none was.
	Source string `yaml:"-" json:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:    logging.DefaultLevel,
		JSONLog:     false,
		Transport:   "base64",
		Compression: "zstd",
		FileMode:    permissions.FormatOctal(permissions.DefaultFilePerms),
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path means DefaultPath, which may be
// absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	err := cfg.loadFile(path)
	switch {
	case err == nil:
		cfg.Source = path
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", displayPath(cfg.Source), err)
	}
	return cfg, nil
}

// loadFile merges a single configuration file into c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), c); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(logging.EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if os.Getenv(logging.EnvJSONLog) != "" {
		c.JSONLog = logging.JSONFromEnv()
	}
	if v := os.Getenv(EnvTransport); v != "" {
		c.Transport = v
	}
	if v := os.Getenv(EnvCompression); v != "" {
		c.Compression = v
	}
}

// Validate checks that every name resolves to an operation of the right
// kind and that the file mode parses.
func (c *Config) Validate() error {
	if _, err := c.TransportID(); err != nil {
		return err
	}
	if _, err := c.CompressionID(); err != nil {
		return err
	}
	if _, err := c.Mode(); err != nil {
		return err
	}
	return nil
}

// TransportID resolves Transport to a transport operation ID.
func (c *Config) TransportID() (uint8, error) {
	id, err := operations.ParseOperation(c.Transport)
	if err != nil {
		return 0, fmt.Errorf("transport: %w", err)
	}
	if !operations.IsTransportOp(id) {
		return 0, fmt.Errorf("transport: %s is not a transport encoding", c.Transport)
	}
	return id, nil
}

// CompressionID resolves Compression to a compression operation ID or
// OP_NONE for "none".
func (c *Config) CompressionID() (uint8, error) {
	id, err := operations.ParseOperation(c.Compression)
	if err != nil {
		return 0, fmt.Errorf("compression: %w", err)
	}
	if id != operations.OP_NONE && !operations.IsCompressionOp(id) {
		return 0, fmt.Errorf("compression: %s is not a compression operation", c.Compression)
	}
	return id, nil
}

// Mode parses FileMode.
func (c *Config) Mode() (os.FileMode, error) {
	mode, err := permissions.FileMode(c.FileMode)
	if err != nil {
		return 0, fmt.Errorf("file_mode: %w", err)
	}
	return mode, nil
}

func displayPath(source string) string {
	if source == "" {
		return "config"
	}
	return source
}
