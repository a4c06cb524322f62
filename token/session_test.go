package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/astute-tec/cloudctl/common/stats"
)

var (
	sessionNow = time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC)
	validCred  = &Credential{ID: "cached", CreatedAt: "2024-01-01 00:00:00.000000", TTL: 3600}
	staleCred  = &Credential{ID: "stale", CreatedAt: "2023-12-31 00:00:00.000000", TTL: 3600}
	freshCred  = &Credential{ID: "fresh", CreatedAt: "2024-01-01 00:29:59.000000", TTL: 3600}
)

func newTestSession(cache Cache, issuer Issuer, stat stats.StatsReceiver) *Session {
	return NewSession(cache, issuer, stat, func() time.Time { return sessionNow })
}

func TestSessionMissingCacheIssuesOnce(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	cache := NewMockCache(mockCtrl)
	issuer := NewMockIssuer(mockCtrl)
	gomock.InOrder(
		cache.EXPECT().Load().Return(nil, nil),
		issuer.EXPECT().Issue(gomock.Any()).Return(freshCred, nil).Times(1),
		cache.EXPECT().Save(freshCred).Return(nil).Times(1),
	)

	s := newTestSession(cache, issuer, nil)
	for i := 0; i < 3; i++ {
		c, err := s.Credential(context.Background())
		if err != nil {
			t.Fatalf("Credential failed: %v", err)
		}
		if c != freshCred {
			t.Fatalf("expected the issued credential, got %+v", c)
		}
	}
}

func TestSessionValidCacheIssuesNothing(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	cache := NewMockCache(mockCtrl)
	issuer := NewMockIssuer(mockCtrl)
	cache.EXPECT().Load().Return(validCred, nil).Times(1)
	issuer.EXPECT().Issue(gomock.Any()).Times(0)
	cache.EXPECT().Save(gomock.Any()).Times(0)

	stat := stats.DefaultStatsReceiver()
	s := newTestSession(cache, issuer, stat)
	c, err := s.Credential(context.Background())
	if err != nil || c != validCred {
		t.Fatalf("expected the cached credential, got %+v %v", c, err)
	}
	if n := stat.Scope(stats.TokenScope).Counter(stats.TokenCacheHitCounter).Count(); n != 1 {
		t.Fatalf("expected one cache hit, got %d", n)
	}
}

func TestSessionExpiredCacheIsReplaced(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	cache := NewMockCache(mockCtrl)
	issuer := NewMockIssuer(mockCtrl)
	cache.EXPECT().Load().Return(staleCred, nil)
	issuer.EXPECT().Issue(gomock.Any()).Return(freshCred, nil).Times(1)
	cache.EXPECT().Save(freshCred).Return(nil)

	stat := stats.DefaultStatsReceiver()
	c, err := newTestSession(cache, issuer, stat).Credential(context.Background())
	if err != nil || c != freshCred {
		t.Fatalf("expected the fresh credential, got %+v %v", c, err)
	}
	tokenStat := stat.Scope(stats.TokenScope)
	if tokenStat.Counter(stats.TokenCacheMissCounter).Count() != 1 || tokenStat.Counter(stats.TokenIssueCounter).Count() != 1 {
		t.Fatalf("unexpected counters: %s", stat.Render(false))
	}
}

func TestSessionUnreadableCacheIsAMiss(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	cache := NewMockCache(mockCtrl)
	issuer := NewMockIssuer(mockCtrl)
	cache.EXPECT().Load().Return(nil, &CacheReadError{"data/token.json", errors.New("garbage")})
	issuer.EXPECT().Issue(gomock.Any()).Return(freshCred, nil).Times(1)
	cache.EXPECT().Save(freshCred).Return(nil)

	c, err := newTestSession(cache, issuer, nil).Credential(context.Background())
	if err != nil || c != freshCred {
		t.Fatalf("expected the fresh credential, got %+v %v", c, err)
	}
}

func TestSessionIssueFailureIsNotSaved(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	cache := NewMockCache(mockCtrl)
	issuer := NewMockIssuer(mockCtrl)
	issueErr := &IssueError{Server: "localhost", Err: errors.New("connection refused")}
	cache.EXPECT().Load().Return(nil, nil)
	issuer.EXPECT().Issue(gomock.Any()).Return(nil, issueErr).Times(1)
	cache.EXPECT().Save(gomock.Any()).Times(0)

	c, err := newTestSession(cache, issuer, nil).Credential(context.Background())
	if c != nil || err != issueErr {
		t.Fatalf("expected the issue error, got %+v %v", c, err)
	}
}

func TestSessionSaveFailureIsFatal(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	cache := NewMockCache(mockCtrl)
	issuer := NewMockIssuer(mockCtrl)
	saveErr := &CacheWriteError{"data/token.json", errors.New("read-only file system")}
	cache.EXPECT().Load().Return(nil, nil)
	issuer.EXPECT().Issue(gomock.Any()).Return(freshCred, nil)
	cache.EXPECT().Save(freshCred).Return(saveErr)

	c, err := newTestSession(cache, issuer, nil).Credential(context.Background())
	if c != nil || err != saveErr {
		t.Fatalf("expected the save error, got %+v %v", c, err)
	}
}

func TestSessionRefreshIgnoresCache(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	cache := NewMockCache(mockCtrl)
	issuer := NewMockIssuer(mockCtrl)
	cache.EXPECT().Load().Times(0)
	issuer.EXPECT().Issue(gomock.Any()).Return(freshCred, nil).Times(1)
	cache.EXPECT().Save(freshCred).Return(nil)

	s := newTestSession(cache, issuer, nil)
	c, err := s.Refresh(context.Background())
	if err != nil || c != freshCred {
		t.Fatalf("expected the fresh credential, got %+v %v", c, err)
	}
	// Later calls in the same invocation reuse it.
	if c, _ := s.Credential(context.Background()); c != freshCred {
		t.Fatalf("expected the refreshed credential to be reused, got %+v", c)
	}
}

func TestSessionDefaultsToWallClock(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	cache := NewMockCache(mockCtrl)
	issuer := NewMockIssuer(mockCtrl)
	live := &Credential{ID: "live", CreatedAt: time.Now().UTC().Format(TimeLayout), TTL: 3600}
	cache.EXPECT().Load().Return(live, nil)
	issuer.EXPECT().Issue(gomock.Any()).Times(0)

	s := NewSession(cache, issuer, nil, nil)
	c, err := s.Credential(context.Background())
	if err != nil || c != live {
		t.Fatalf("expected the live cached credential, got %+v, %v", c, err)
	}
	if !s.Expired(staleCred) {
		t.Fatal("a credential from 2023 should be expired by the wall clock")
	}
}
