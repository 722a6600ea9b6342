package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Default file names, all relative to the user's home directory
const (
	HistoryFileName = ".req_history.json"
	TokenFileName   = ".req_token.json"
	ExportFileName  = "req_history_export.json"
)

// ConfigDir returns the XDG-compliant config directory for req
// Typically ~/.config/req/ on Linux
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "req")
}

// ConfigPath returns the full path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json5")
}

// DataDir returns the XDG-compliant data directory for req
// Holds the file-backed keyring when token_store is "keyring"
func DataDir() string {
	return filepath.Join(xdg.DataHome, "req")
}

// HomeFile returns name joined onto the user's home directory
func HomeFile(name string) string {
	return filepath.Join(xdg.Home, name)
}

// ExpandHome replaces a leading "~/" with the user's home directory
func ExpandHome(path string) string {
	if path == "~" {
		return xdg.Home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(xdg.Home, path[2:])
	}
	return path
}
