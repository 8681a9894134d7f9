package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "homectl"
	configFile = "config.yaml"

	// DefaultBaseURL is the hosted Smart Home Tech API endpoint.
	// Self-hosted deployments override this via config or --server.
	DefaultBaseURL = "https://smart-home-tech-api.vercel.app"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 15 * time.Second
)

// Settings represents the homectl configuration file.
type Settings struct {
	// BaseURL is the API server base URL
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout is the HTTP request timeout (e.g. "15s")
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// SessionFile overrides the default session token location
	SessionFile string `yaml:"session_file,omitempty"`

	Log LogSettings `yaml:"log,omitempty"`
}

// LogSettings controls logging output.
type LogSettings struct {
	// Level is the zap log level ("debug", "info", "warn", "error").
	// Empty means silent.
	Level string `yaml:"level,omitempty"`
}

// GetConfigDir returns the OS-appropriate configuration directory for the application.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/homectl or $HOME/.config/homectl
//   - macOS: $HOME/.config/homectl (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\homectl
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			// Fallback to USERPROFILE\AppData\Local if LOCALAPPDATA not set
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		// Linux and other Unix-like systems: Use XDG_CONFIG_HOME or $HOME/.config
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// DefaultSessionPath returns the default location of the session token file.
func DefaultSessionPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "session.yaml"), nil
}

// Load reads settings from the given path. An empty path uses the default
// config location. A missing file is not an error - defaults are returned.
// Environment variables in the file are expanded before parsing.
func Load(path string) (*Settings, error) {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s := &Settings{}
		s.setDefaults()
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var s Settings
	if err := yaml.Unmarshal([]byte(expanded), &s); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	s.setDefaults()

	return &s, nil
}

func (s *Settings) setDefaults() {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.Timeout == 0 {
		s.Timeout = DefaultTimeout
	}
	if s.SessionFile == "" {
		// Best effort - callers that need a session file check again
		if p, err := DefaultSessionPath(); err == nil {
			s.SessionFile = p
		}
	}
}

// Save writes the settings to the default config location.
// Performs an atomic write to prevent corruption on crash.
func (s *Settings) Save() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# homectl configuration file
# Session tokens are stored separately (see session_file).

`)
	data = append(header, data...)

	// Write to temporary file first (atomic write)
	tmpPath := configPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}
