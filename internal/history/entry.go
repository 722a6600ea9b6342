package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// TimestampFormat matches JavaScript's Date.toISOString, always UTC
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Status is an HTTP status code, or StatusError when no response was received.
// It is stored as a JSON number, or as the string "ERROR".
type Status int

// StatusError marks a request that failed before any HTTP response arrived
const StatusError Status = -1

// errorLiteral is the serialised form of StatusError
const errorLiteral = "ERROR"

func (s Status) String() string {
	if s == StatusError {
		return errorLiteral
	}
	return strconv.Itoa(int(s))
}

// IsError reports whether s is StatusError
func (s Status) IsError() bool {
	return s == StatusError
}

func (s Status) MarshalJSON() ([]byte, error) {
	if s == StatusError {
		return json.Marshal(errorLiteral)
	}
	return []byte(strconv.Itoa(int(s))), nil
}

func (s *Status) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		if str == errorLiteral {
			*s = StatusError
			return nil
		}
		code, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("invalid status %q", str)
		}
		*s = Status(code)
		return nil
	}

	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("invalid status %s", data)
	}
	*s = Status(code)
	return nil
}

// Entry is one recorded request outcome. Entries are never modified after Append.
type Entry struct {
	ID        string            `json:"id,omitempty"`
	Timestamp string            `json:"timestamp"`
	Method    string            `json:"method"`
	URL       string            `json:"url"`
	Headers   map[string]string `json:"headers"`
	Body      json.RawMessage   `json:"body,omitempty"`
	Status    Status            `json:"status"`
	Duration  *int64            `json:"duration,omitempty"` // milliseconds, success only
	Error     string            `json:"error,omitempty"`    // failure only
}

// NewEntry starts an entry for a request sent at the given time
func NewEntry(at time.Time, method, url string, headers map[string]string, body json.RawMessage) Entry {
	if headers == nil {
		headers = map[string]string{}
	}
	return Entry{
		ID:        uuid.NewString(),
		Timestamp: at.UTC().Format(TimestampFormat),
		Method:    method,
		URL:       url,
		Headers:   headers,
		Body:      body,
	}
}

// Succeeded completes e with a response status and elapsed time
func (e Entry) Succeeded(status int, elapsed time.Duration) Entry {
	ms := elapsed.Milliseconds()
	e.Status = Status(status)
	e.Duration = &ms
	e.Error = ""
	return e
}

// Failed completes e with the failure status and message
func (e Entry) Failed(status Status, msg string) Entry {
	e.Status = status
	e.Duration = nil
	e.Error = msg
	return e
}

// Time parses the entry timestamp
func (e Entry) Time() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, e.Timestamp)
}

// ShortID returns the first eight characters of the ID
func (e Entry) ShortID() string {
	if len(e.ID) > 8 {
		return e.ID[:8]
	}
	return e.ID
}
