package secrets

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/semmy-space/req/internal/config"
)

// NewStore creates the Store selected by cfg.TokenStore.
// The keyring backend falls back to the JSON file when no keyring is usable
// (WSL, headless Linux, or an open failure); the reason is written to warn.
func NewStore(cfg *config.Config, warn io.Writer) Store {
	if cfg.TokenStore != config.TokenStoreKeyring {
		return NewFileStore(cfg.TokenFile)
	}

	if IsWSL() || IsHeadless() {
		fmt.Fprintf(warn, "Warning: keyring unavailable in WSL/headless environment, using %s\n", cfg.TokenFile)
		return NewFileStore(cfg.TokenFile)
	}

	store, err := NewKeyringStore(config.DataDir())
	if err != nil {
		fmt.Fprintf(warn, "Warning: %v, falling back to %s\n", err, cfg.TokenFile)
		return NewFileStore(cfg.TokenFile)
	}

	return store
}

// Describe names the backend behind store for user-facing messages.
func Describe(store Store) string {
	switch s := store.(type) {
	case *FileStore:
		return s.Path()
	case *KeyringStore:
		return "OS keyring"
	default:
		return fmt.Sprintf("%T", store)
	}
}

// IsWSL returns true if running under Windows Subsystem for Linux.
func IsWSL() bool {
	if runtime.GOOS != "linux" {
		return false
	}

	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}

	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}

// IsHeadless returns true if running in a headless environment (no display server).
// Only applicable on Linux; macOS and Windows are assumed to have GUI.
func IsHeadless() bool {
	if runtime.GOOS != "linux" {
		return false
	}

	return os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == ""
}
