package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Methods lists the HTTP verbs offered by the interactive menu, in menu order
var Methods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

// ParseHeaders parses a JSON object of header names to values.
// Blank input is an empty map. Non-string values are rendered with their JSON text.
func ParseHeaders(s string) (map[string]string, error) {
	headers := map[string]string{}
	if strings.TrimSpace(s) == "" {
		return headers, nil
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return headers, fmt.Errorf("invalid headers JSON: %w", err)
	}
	if raw == nil {
		return headers, fmt.Errorf("invalid headers JSON: expected an object")
	}

	for k, v := range raw {
		switch val := v.(type) {
		case string:
			headers[k] = val
		case nil:
			headers[k] = ""
		default:
			b, _ := json.Marshal(val)
			headers[k] = string(b)
		}
	}
	return headers, nil
}

// ParseBody validates s as a single JSON value and returns it compacted,
// keeping key order and number text. Blank input is no body.
func ParseBody(s string) (json.RawMessage, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		return nil, fmt.Errorf("invalid body JSON: %w", err)
	}
	return json.RawMessage(buf.Bytes()), nil
}

// EmptyBody is the body used when ParseBody fails and the caller degrades
var EmptyBody = json.RawMessage(`{}`)
