package purr

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Config controls how a Runtime starts a program and reports on it.
type Config struct {
	EntryPoint          string `yaml:"entry_point" json:"entry_point"`
	LogLevel            string `yaml:"log_level" json:"log_level"`
	LogFile             string `yaml:"log_file" json:"log_file"`
	MaxJSONPayloadBytes int    `yaml:"max_json_payload_bytes" json:"max_json_payload_bytes"`
	Console             bool   `yaml:"console" json:"console"`
}

const DefaultEntryPoint = "main"

const configSchema = `
entry_point?: string & !=""
log_level?: "debug" | "info" | "warn" | "error"
log_file?: string
max_json_payload_bytes?: int & >0
console?: bool
`

func (c Config) withDefaults() Config {
	if c.EntryPoint == "" {
		c.EntryPoint = DefaultEntryPoint
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.MaxJSONPayloadBytes <= 0 {
		c.MaxJSONPayloadBytes = DefaultMaxJSONPayloadBytes
	}
	return c
}

// Level parses LogLevel, defaulting to info.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: invalid log level %q", c.LogLevel)
	}
	return level, nil
}

// LoadConfig reads a YAML (.yaml, .yml) or CUE (.cue) config file.
func LoadConfig(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = parseYAMLConfig(content)
	case ".cue":
		cfg, err = parseCUEConfig(path, content)
	default:
		return Config{}, fmt.Errorf("config: unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg.withDefaults(), nil
}

func parseYAMLConfig(content []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if strings.TrimSpace(string(content)) == "" {
			return Config{}, nil
		}
		return Config{}, err
	}
	if cfg.MaxJSONPayloadBytes < 0 {
		return Config{}, fmt.Errorf("max_json_payload_bytes must be positive")
	}
	return cfg, nil
}

func parseCUEConfig(path string, content []byte) (Config, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString("close({" + configSchema + "})")
	if err := schema.Err(); err != nil {
		return Config{}, err
	}
	value := ctx.CompileBytes(content, cue.Filename(path))
	if err := value.Err(); err != nil {
		return Config{}, err
	}
	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
