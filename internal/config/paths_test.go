package config

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
)

func TestExpandHome(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "~", want: xdg.Home},
		{in: "~/exports/h.json", want: filepath.Join(xdg.Home, "exports", "h.json")},
		{in: "/abs/h.json", want: "/abs/h.json"},
		{in: "rel/h.json", want: "rel/h.json"},
		{in: "~user/h.json", want: "~user/h.json"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}

func TestDefaultLocations(t *testing.T) {
	assert.Equal(t, "req", filepath.Base(ConfigDir()))
	assert.Equal(t, "config.json5", filepath.Base(ConfigPath()))
	assert.Equal(t, filepath.Join(xdg.Home, HistoryFileName), HomeFile(HistoryFileName))
}
