// Package token manages the session credential used to authenticate calls to
// the cloud API: persisting it between invocations, deciding whether it is
// still usable, and obtaining a new one from the server.
package token

import (
	"time"

	"github.com/pkg/errors"
)

const (
	// TimeLayout is how the server reports created_at (UTC, microseconds).
	TimeLayout = "2006-01-02 15:04:05.000000"

	// SafetyMargin is subtracted from a credential's lifetime so we never present
	// one the server is about to expire on its own.
	SafetyMargin = 5 * time.Second
)

// Credential is the token handed out by the server plus its issuance metadata.
// CreatedAt is kept exactly as the server wrote it.
type Credential struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	TTL       int64  `json:"ttl"`
}

// IssuedAt parses CreatedAt as a UTC timestamp. Any number of fractional second
// digits is accepted.
func (c *Credential) IssuedAt() (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", c.CreatedAt, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid created_at %q", c.CreatedAt)
	}
	return t, nil
}

// UsableUntil is the last instant at which the credential is still usable:
// issued_at + ttl - SafetyMargin.
func (c *Credential) UsableUntil() (time.Time, error) {
	issued, err := c.IssuedAt()
	if err != nil {
		return time.Time{}, err
	}
	return issued.Add(time.Duration(c.TTL)*time.Second - SafetyMargin), nil
}

// IsExpired reports whether c can no longer be used at now. A credential is
// usable while now <= issued_at + ttl - SafetyMargin; the boundary itself is
// still usable. A nil or empty credential, or one whose created_at does not
// parse, is expired.
func IsExpired(c *Credential, now time.Time) bool {
	if c == nil || c.ID == "" {
		return true
	}
	until, err := c.UsableUntil()
	if err != nil {
		return true
	}
	return now.UTC().After(until)
}
