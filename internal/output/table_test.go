package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		maxLen   int
		expected string
	}{
		{name: "shorter than max", s: "GET", maxLen: 10, expected: "GET"},
		{name: "equal to max", s: "https", maxLen: 5, expected: "https"},
		{name: "longer than max", s: "https://api.example.com", maxLen: 11, expected: "https://..."},
		{name: "maxLen less than 3", s: "hello", maxLen: 2, expected: "he"},
		{name: "maxLen exactly 3", s: "hello", maxLen: 3, expected: "..."},
		{name: "empty string", s: "", maxLen: 5, expected: ""},
		{name: "maxLen zero", s: "hello", maxLen: 0, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateString(tt.s, tt.maxLen))
		})
	}
}

func TestRenderTable(t *testing.T) {
	columns := []Column{
		{Name: "Method", Key: "Method"},
		{Name: "URL", Key: "URL", Width: 12},
	}
	rows := []map[string]string{
		{"Method": "GET", "URL": "https://a.test/very/long/path"},
		{"Method": "DELETE", "URL": "https://b"},
	}

	var buf bytes.Buffer
	RenderTable(&buf, columns, rows, nil)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Method")
	assert.Contains(t, lines[0], "URL")
	assert.Contains(t, lines[1], "https://a...")
	assert.NotContains(t, lines[1], "long")
	assert.Contains(t, lines[2], "DELETE")
}

func TestRenderTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, []Column{{Name: "A", Key: "A"}}, nil, nil)
	assert.Empty(t, buf.String())
}
