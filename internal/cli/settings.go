package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/semmy-space/req/internal/output"
)

// showConfig lists every config key with its effective value
func showConfig(app *App) error {
	type configItem struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}

	cfg := app.Config
	items := make([]configItem, 0, len(cfg.Keys()))
	for _, key := range cfg.Keys() {
		value, _ := cfg.Get(key)
		items = append(items, configItem{Key: key, Value: value})
	}

	cols := []output.Column{
		{Name: "Key", Key: "Key"},
		{Name: "Value", Key: "Value"},
	}
	if err := app.Formatter.PrintList(items, cols); err != nil {
		return err
	}

	path := cfg.Path()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		app.Formatter.PrintHint(fmt.Sprintf("%s does not exist yet, it is created on first --set-config", path))
	} else {
		app.Formatter.PrintHint("Config file: " + path)
	}
	return nil
}

// setConfig applies KEY=VALUE and saves; an empty VALUE unsets the key
func setConfig(app *App, assignment string) error {
	key, value, ok := strings.Cut(assignment, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return &output.CLIError{
			ExitCode: output.ExitUsage,
			Message:  fmt.Sprintf("Invalid config assignment %q", assignment),
			Hint:     "Use --set-config KEY=VALUE",
		}
	}

	cfg := app.Config
	if _, err := cfg.Get(key); err != nil {
		return &output.CLIError{
			ExitCode: output.ExitUsage,
			Message:  fmt.Sprintf("Unknown config key: %s", key),
			Hint:     "Valid keys: " + strings.Join(cfg.Keys(), ", "),
		}
	}

	value = strings.TrimSpace(value)
	if value == "" {
		if err := cfg.Unset(key); err != nil {
			return output.Wrap(output.ExitConfigError, err, "Failed to unset config")
		}
		app.Formatter.PrintSuccess("Unset " + key)
		return nil
	}

	if err := cfg.Set(key, value); err != nil {
		return output.Wrap(output.ExitConfigError, err, "Failed to set config")
	}
	app.Formatter.PrintSuccess(fmt.Sprintf("Set %s = %s", key, value))
	return nil
}
