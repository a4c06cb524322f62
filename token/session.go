package token

//go:generate mockgen -destination=mock_token.go -package=token github.com/astute-tec/cloudctl/token Cache,Issuer

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/astute-tec/cloudctl/common/stats"
)

// Session hands out the credential for one invocation. The first call to
// Credential loads the cache and, only if it has nothing usable, issues and
// persists a new credential; later calls return the same one.
type Session struct {
	cache  Cache
	issuer Issuer
	now    func() time.Time
	stat   stats.StatsReceiver

	current *Credential
}

// NewSession checks expiry against now, or time.Now if now is nil.
func NewSession(cache Cache, issuer Issuer, stat stats.StatsReceiver, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &Session{
		cache:  cache,
		issuer: issuer,
		now:    now,
		stat:   stat.Scope(stats.TokenScope),
	}
}

// Credential returns a credential that is valid now. Cache read problems are
// logged and treated as a miss; issue and cache write failures are returned.
func (s *Session) Credential(ctx context.Context) (*Credential, error) {
	if s.current != nil {
		return s.current, nil
	}

	cached, err := s.cache.Load()
	if err != nil {
		log.Warnf("Ignoring token cache: %v", err)
		cached = nil
	}
	if cached != nil && !IsExpired(cached, s.now()) {
		log.Debug("Using cached token")
		s.stat.Counter(stats.TokenCacheHitCounter).Inc(1)
		s.current = cached
		return cached, nil
	}
	if cached != nil {
		log.Info("Cached token has expired")
	}
	s.stat.Counter(stats.TokenCacheMissCounter).Inc(1)
	return s.issue(ctx)
}

// Refresh ignores whatever is cached and issues a new credential.
func (s *Session) Refresh(ctx context.Context) (*Credential, error) {
	s.current = nil
	return s.issue(ctx)
}

// Cached returns what the cache holds without issuing anything.
func (s *Session) Cached() (*Credential, error) {
	return s.cache.Load()
}

// Expired reports whether c is unusable according to the session's clock.
func (s *Session) Expired(c *Credential) bool {
	return IsExpired(c, s.now())
}

func (s *Session) issue(ctx context.Context) (*Credential, error) {
	c, err := s.issuer.Issue(ctx)
	if err != nil {
		s.stat.Counter(stats.TokenIssueErrCounter).Inc(1)
		return nil, err
	}
	s.stat.Counter(stats.TokenIssueCounter).Inc(1)
	if err := s.cache.Save(c); err != nil {
		return nil, err
	}
	s.current = c
	return c, nil
}
