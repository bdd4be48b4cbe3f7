// Package config loads offerchat settings from the environment. A .env file
// in the working directory is read first; variables already set win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvEndpoint = "OFFERCHAT_ENDPOINT"
	EnvPort     = "OFFERCHAT_PORT"
	EnvCatalog  = "OFFERCHAT_CATALOG"
	EnvLog      = "OFFERCHAT_LOG"
	EnvTimeout  = "OFFERCHAT_TIMEOUT"
	EnvMode     = "OFFERCHAT_AGENT_MODE"
	EnvModel    = "OFFERCHAT_AGENT_MODEL"
	EnvAPIKey   = "GEMINI_API_KEY"
)

// AgentMode selects how the demo agent makes its decisions.
type AgentMode string

const (
	// ModeAuto uses the model when an API key is set, rules otherwise.
	ModeAuto AgentMode = "auto"
	// ModeFake always uses the rules.
	ModeFake AgentMode = "fake"
	// ModeReal always uses the model and requires an API key.
	ModeReal AgentMode = "real"
)

// ErrUnknownMode is returned for an agent mode other than auto, fake or real.
var ErrUnknownMode = errors.New("unknown agent mode")

// ParseAgentMode accepts auto, fake or real, case-insensitively.
func ParseAgentMode(s string) (AgentMode, error) {
	switch m := AgentMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAuto, ModeFake, ModeReal:
		return m, nil
	case "":
		return ModeAuto, nil
	default:
		return "", fmt.Errorf("%w %q: use auto, fake, or real", ErrUnknownMode, s)
	}
}

const (
	DefaultPort     = 8080
	DefaultLogLevel = "error"
	DefaultModel    = "gemini-2.0-flash"
	// DefaultEndpoint is where the demo agent listens when started with
	// default settings.
	DefaultEndpoint = "http://localhost:8080/api/query"
)

// Config holds the settings shared by the commands. Command-line flags
// override these values.
type Config struct {
	Endpoint string
	Port     int
	Catalog  string
	LogLevel string
	Timeout  time.Duration

	AgentMode AgentMode
	Model     string
	APIKey    string
}

// Load reads the given .env files (".env" when none are given) and then the
// environment. A missing .env file is not an error.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	port, err := strconv.Atoi(getEnv(EnvPort, strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvPort, err)
	}

	var timeout time.Duration
	if v := getEnv(EnvTimeout, ""); v != "" {
		timeout, err = time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvTimeout, err)
		}
	}

	mode, err := ParseAgentMode(getEnv(EnvMode, string(ModeAuto)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvMode, err)
	}

	return &Config{
		Endpoint:  getEnv(EnvEndpoint, ""),
		Port:      port,
		Catalog:   getEnv(EnvCatalog, ""),
		LogLevel:  getEnv(EnvLog, DefaultLogLevel),
		Timeout:   timeout,
		AgentMode: mode,
		Model:     getEnv(EnvModel, DefaultModel),
		APIKey:    getEnv(EnvAPIKey, ""),
	}, nil
}

// UseModel reports whether the demo agent should call the model, given mode
// and the configured API key.
func UseModel(mode AgentMode, apiKey string) (bool, error) {
	switch mode {
	case ModeFake:
		return false, nil
	case ModeReal:
		if apiKey == "" {
			return false, fmt.Errorf("%s is required when %s=%s", EnvAPIKey, EnvMode, ModeReal)
		}
		return true, nil
	case ModeAuto, "":
		return apiKey != "", nil
	default:
		return false, fmt.Errorf("%w %q", ErrUnknownMode, mode)
	}
}

// EndpointOrDefault returns the configured endpoint, or DefaultEndpoint.
func (c *Config) EndpointOrDefault() string {
	if c.Endpoint == "" {
		return DefaultEndpoint
	}
	return c.Endpoint
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
