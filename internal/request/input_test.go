package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeaders(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
		wantErr  bool
	}{
		{name: "blank", input: "  ", expected: map[string]string{}},
		{name: "object", input: `{"X-Trace":"abc","Accept":"application/json"}`, expected: map[string]string{"X-Trace": "abc", "Accept": "application/json"}},
		{name: "non-string values", input: `{"X-Count":3,"X-On":true,"X-Nil":null}`, expected: map[string]string{"X-Count": "3", "X-On": "true", "X-Nil": ""}},
		{name: "malformed", input: `{bad json`, expected: map[string]string{}, wantErr: true},
		{name: "array", input: `["a"]`, expected: map[string]string{}, wantErr: true},
		{name: "null", input: `null`, expected: map[string]string{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHeaders(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseBody(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "blank", input: "", expected: ""},
		{name: "object keeps key order", input: `{ "b": 1, "a": [1, 2] }`, expected: `{"b":1,"a":[1,2]}`},
		{name: "scalar", input: `42`, expected: `42`},
		{name: "string", input: `"hi"`, expected: `"hi"`},
		{name: "big number text kept", input: `{"id": 12345678901234567890}`, expected: `{"id":12345678901234567890}`},
		{name: "malformed", input: `{"a":`, wantErr: true},
		{name: "trailing garbage", input: `{} {}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBody(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(got))
		})
	}
}
