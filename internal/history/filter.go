package history

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrNoEntry is returned when a reference matches no history entry
var ErrNoEntry = errors.New("no matching history entry")

// sinceLayouts are tried in order when parsing since=
var sinceLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Filter selects entries by status and/or minimum timestamp.
// Zero fields are not applied; set fields AND together.
type Filter struct {
	Status string
	Since  time.Time
}

// IsEmpty returns true if no criteria are set
func (f Filter) IsEmpty() bool {
	return f.Status == "" && f.Since.IsZero()
}

// Match reports whether e satisfies every set criterion.
// Entries with unparsable timestamps never satisfy a since criterion.
func (f Filter) Match(e Entry) bool {
	if f.Status != "" && e.Status.String() != f.Status {
		return false
	}
	if !f.Since.IsZero() {
		at, err := e.Time()
		if err != nil || at.Before(f.Since) {
			return false
		}
	}
	return true
}

// Apply returns the matching entries in their original order
func (f Filter) Apply(entries []Entry) []Entry {
	out := []Entry{}
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

func (f Filter) String() string {
	var parts []string
	if f.Status != "" {
		parts = append(parts, "status="+f.Status)
	}
	if !f.Since.IsZero() {
		parts = append(parts, "since="+f.Since.Format(time.RFC3339))
	}
	return strings.Join(parts, " ")
}

// ParseFilter parses the space-separated key=value syntax, e.g. "status=404 since=2024-01-01".
// Recognised keys are status and since.
func ParseFilter(s string) (Filter, error) {
	var f Filter
	for _, field := range strings.Fields(s) {
		key, value, ok := strings.Cut(field, "=")
		if !ok || value == "" {
			return Filter{}, fmt.Errorf("invalid filter %q: expected key=value", field)
		}
		switch strings.ToLower(key) {
		case "status":
			f.Status = strings.ToUpper(value)
		case "since":
			since, err := ParseSince(value)
			if err != nil {
				return Filter{}, err
			}
			f.Since = since
		default:
			return Filter{}, fmt.Errorf("unknown filter key %q (use status= or since=)", key)
		}
	}
	return f, nil
}

// ParseSince parses a date or timestamp; values without a zone are UTC
func ParseSince(value string) (time.Time, error) {
	for _, layout := range sinceLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid since date %q (use YYYY-MM-DD or RFC3339)", value)
}

// Search matches keyword against method (upper-cased keyword), url, and status.
// Only the method comparison ignores case.
func Search(entries []Entry, keyword string) []Entry {
	upper := strings.ToUpper(keyword)
	out := []Entry{}
	for _, e := range entries {
		if strings.Contains(e.Method, upper) ||
			strings.Contains(e.URL, keyword) ||
			strings.Contains(e.Status.String(), keyword) {
			out = append(out, e)
		}
	}
	return out
}

// Find resolves ref to one entry. ref may be "last", a 1-based index,
// a negative index counted from the end, or a unique id prefix.
func Find(entries []Entry, ref string) (Entry, error) {
	ref = strings.TrimSpace(ref)
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("%w: history is empty", ErrNoEntry)
	}
	if ref == "" || strings.EqualFold(ref, "last") {
		return entries[len(entries)-1], nil
	}

	if n, err := strconv.Atoi(ref); err == nil {
		switch {
		case n > 0 && n <= len(entries):
			return entries[n-1], nil
		case n < 0 && -n <= len(entries):
			return entries[len(entries)+n], nil
		default:
			return Entry{}, fmt.Errorf("%w: index %d out of range 1..%d", ErrNoEntry, n, len(entries))
		}
	}

	var found []Entry
	for _, e := range entries {
		if e.ID != "" && strings.HasPrefix(e.ID, ref) {
			found = append(found, e)
		}
	}
	switch len(found) {
	case 0:
		return Entry{}, fmt.Errorf("%w: %q", ErrNoEntry, ref)
	case 1:
		return found[0], nil
	default:
		return Entry{}, fmt.Errorf("ambiguous id prefix %q matches %d entries", ref, len(found))
	}
}
