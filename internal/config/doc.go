// Package config provides user configuration management for homectl.
//
// This package manages a YAML-based configuration file holding the API
// server address, request timeout, log level, and the location of the
// session token file. The configuration follows OS-specific conventions
// for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/homectl/config.yaml or $HOME/.config/homectl/config.yaml
//   - macOS: $HOME/.config/homectl/config.yaml
//   - Windows: %LOCALAPPDATA%\homectl\config.yaml
//
// # Security
//
// Passwords are never written to the configuration file. The bearer token
// obtained at login lives in a separate session file (see the session
// package) so that wiping a session does not touch user preferences.
//
// # Usage Example
//
//	settings, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := api.NewClient(settings.BaseURL, sess)
//
// Environment variables referenced in the file (e.g. ${HOME}) are expanded
// before parsing. A missing file is not an error; defaults are returned.
package config
