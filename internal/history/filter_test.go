package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(ts string, method, url string, status Status) Entry {
	return Entry{Timestamp: ts, Method: method, URL: url, Status: status, Headers: map[string]string{}}
}

func fixture() []Entry {
	return []Entry{
		entryAt("2024-01-01T10:00:00.000Z", "GET", "https://api.example.com/users", 200),
		entryAt("2024-02-01T10:00:00.000Z", "POST", "https://api.example.com/Users", 404),
		entryAt("2024-03-01T10:00:00.000Z", "DELETE", "https://api.example.com/users/1", 404),
		entryAt("2024-04-01T10:00:00.000Z", "GET", "https://down.example.com", StatusError),
	}
}

func TestFilterByStatus(t *testing.T) {
	got := Filter{Status: "404"}.Apply(fixture())
	require.Len(t, got, 2)
	assert.Equal(t, "POST", got[0].Method)
	assert.Equal(t, "DELETE", got[1].Method)

	errs := Filter{Status: "ERROR"}.Apply(fixture())
	require.Len(t, errs, 1)
	assert.Equal(t, "https://down.example.com", errs[0].URL)
}

func TestFilterBySince(t *testing.T) {
	since := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	got := Filter{Since: since}.Apply(fixture())

	require.Len(t, got, 3)
	for _, e := range got {
		at, err := e.Time()
		require.NoError(t, err)
		assert.False(t, at.Before(since))
	}
}

func TestFilterCombinesWithAnd(t *testing.T) {
	got := Filter{Status: "404", Since: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)}.Apply(fixture())
	require.Len(t, got, 1)
	assert.Equal(t, "DELETE", got[0].Method)
}

func TestFilterEmptyMatchesAll(t *testing.T) {
	f := Filter{}
	assert.True(t, f.IsEmpty())
	assert.Len(t, f.Apply(fixture()), 4)
	assert.NotNil(t, f.Apply(nil))
}

func TestFilterSinceSkipsUnparsableTimestamps(t *testing.T) {
	entries := []Entry{entryAt("yesterday", "GET", "u", 200)}
	assert.Empty(t, Filter{Since: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}.Apply(entries))
	assert.Len(t, Filter{Status: "200"}.Apply(entries), 1)
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Filter
		errPart string
	}{
		{name: "empty", input: "", want: Filter{}},
		{name: "status", input: "status=404", want: Filter{Status: "404"}},
		{name: "error status upper-cased", input: "status=error", want: Filter{Status: "ERROR"}},
		{name: "since date", input: "since=2024-01-01", want: Filter{Since: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}},
		{
			name:  "both",
			input: "  status=200   since=2024-03-01T12:00:00Z ",
			want:  Filter{Status: "200", Since: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		},
		{name: "missing value", input: "status=", errPart: "expected key=value"},
		{name: "no equals", input: "404", errPart: "expected key=value"},
		{name: "unknown key", input: "method=GET", errPart: "unknown filter key"},
		{name: "bad date", input: "since=last-week", errPart: "invalid since date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilter(tt.input)
			if tt.errPart != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errPart)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Status, got.Status)
			assert.True(t, tt.want.Since.Equal(got.Since))
		})
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		methods []string
	}{
		{name: "method lower-case keyword", keyword: "get", methods: []string{"GET", "GET"}},
		{name: "url is case-sensitive", keyword: "Users", methods: []string{"POST"}},
		{name: "url lower-case", keyword: "users", methods: []string{"GET", "DELETE"}},
		{name: "status", keyword: "404", methods: []string{"POST", "DELETE"}},
		{name: "status error literal", keyword: "ERR", methods: []string{"GET"}},
		{name: "status error lower-case misses", keyword: "err", methods: []string{}},
		{name: "no match", keyword: "zzz", methods: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(fixture(), tt.keyword)
			methods := []string{}
			for _, e := range got {
				methods = append(methods, e.Method)
			}
			assert.Equal(t, tt.methods, methods)
		})
	}
}

func TestFind(t *testing.T) {
	entries := []Entry{
		{ID: "aaaa1111", URL: "first"},
		{ID: "aaaa2222", URL: "second"},
		{ID: "bbbb3333", URL: "third"},
	}

	tests := []struct {
		name    string
		ref     string
		url     string
		errPart string
	}{
		{name: "last keyword", ref: "last", url: "third"},
		{name: "blank means last", ref: "", url: "third"},
		{name: "positive index", ref: "1", url: "first"},
		{name: "negative index", ref: "-2", url: "second"},
		{name: "unique prefix", ref: "bbbb", url: "third"},
		{name: "full id", ref: "aaaa2222", url: "second"},
		{name: "ambiguous prefix", ref: "aaaa", errPart: "ambiguous"},
		{name: "out of range", ref: "4", errPart: "out of range"},
		{name: "zero index", ref: "0", errPart: "out of range"},
		{name: "unknown id", ref: "cccc", errPart: "no matching"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(entries, tt.ref)
			if tt.errPart != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errPart)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.url, got.URL)
		})
	}

	_, err := Find(nil, "last")
	assert.ErrorIs(t, err, ErrNoEntry)
}
