package request

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/semmy-space/req/internal/history"
)

// Replay re-sends a recorded request. The current bearer token is attached,
// not whatever was in effect when the entry was recorded.
func (e *Executor) Replay(ctx context.Context, entry history.Entry) (history.Entry, error) {
	return e.Execute(ctx, Request{
		Method:  entry.Method,
		URL:     entry.URL,
		Headers: entry.Headers,
		Body:    entry.Body,
	})
}

// NewReplayLimiter paces ReplayAll at perSecond requests, one at a time
func NewReplayLimiter(perSecond float64) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

// ReplayAll replays entries in order, waiting on limiter before each send.
// It stops at the first history write failure or when ctx is cancelled.
func (e *Executor) ReplayAll(ctx context.Context, entries []history.Entry, limiter *rate.Limiter) ([]history.Entry, error) {
	results := make([]history.Entry, 0, len(entries))
	for i, entry := range entries {
		if err := limiter.Wait(ctx); err != nil {
			return results, fmt.Errorf("replay interrupted: %w", err)
		}

		fmt.Fprintf(e.msg, "[%d/%d] %s %s\n", i+1, len(entries), entry.Method, entry.URL)
		result, err := e.Replay(ctx, entry)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}
