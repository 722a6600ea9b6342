package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrMalformedToken is returned when a token does not look like a JWT.
// Only the presence of a "." separator is checked.
var ErrMalformedToken = errors.New("invalid JWT format: expected dot-separated segments")

// Claims is the decoded JWT payload
type Claims map[string]any

// Expiry returns the exp claim as a time, ok is false when absent or not numeric
func (c Claims) Expiry() (time.Time, bool) {
	raw, ok := c["exp"]
	if !ok {
		return time.Time{}, false
	}
	secs, ok := raw.(float64)
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(math.Round(secs * 1000))), true
}

// LooksLikeJWT is the weak format check applied before a token is stored
func LooksLikeJWT(token string) bool {
	return strings.Contains(token, ".")
}

// Decode splits token on "." and parses the base64-encoded second segment as JSON.
// Signature and header are ignored.
func Decode(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil, ErrMalformedToken
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}
	if claims == nil {
		return nil, fmt.Errorf("parse payload: not a JSON object")
	}

	return claims, nil
}

// decodeSegment accepts both base64url and standard alphabets, padded or not
func decodeSegment(seg string) ([]byte, error) {
	seg = strings.TrimRight(seg, "=")
	seg = strings.NewReplacer("-", "+", "_", "/").Replace(seg)
	return base64.RawStdEncoding.DecodeString(seg)
}

// Expiry describes how long a token remains valid
type Expiry struct {
	At      time.Time
	Expired bool
	Minutes int64 // rounded minutes remaining, zero when expired
}

// String renders "expired" or "expires in N minutes"
func (e Expiry) String() string {
	if e.Expired {
		return "expired"
	}
	return fmt.Sprintf("expires in %d minutes", e.Minutes)
}

// ExpiryAt compares an expiry instant against now
func ExpiryAt(at, now time.Time) Expiry {
	diff := at.UnixMilli() - now.UnixMilli()
	if diff < 0 {
		return Expiry{At: at, Expired: true}
	}
	return Expiry{
		At:      at,
		Minutes: int64(math.Floor(float64(diff)/60000 + 0.5)),
	}
}

// ExpiryStatus decodes token and reports its expiry relative to now.
// ok is false when the token cannot be decoded or carries no exp claim.
func ExpiryStatus(token string, now time.Time) (Expiry, bool) {
	claims, err := Decode(token)
	if err != nil {
		return Expiry{}, false
	}
	at, ok := claims.Expiry()
	if !ok {
		return Expiry{}, false
	}
	return ExpiryAt(at, now), true
}
