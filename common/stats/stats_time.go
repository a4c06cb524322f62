package stats

import (
	"time"
)

// Defines the calls we make to the stdlib time package. Allows for overriding in tests.
type StatsTime interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

type defaultStatsTime struct{}

func (defaultStatsTime) Now() time.Time                  { return time.Now() }
func (defaultStatsTime) Since(t time.Time) time.Duration { return time.Since(t) }

// Returns a StatsTime instance backed by the stdlib 'time' package
func DefaultStatsTime() StatsTime { return defaultStatsTime{} }

// testTime advances by a fixed step on every Now() call.
type testTime struct {
	now  time.Time
	step time.Duration
}

// NewTestTime returns a StatsTime that starts at 'start' and moves forward by
// 'step' each time Now() is called; Since() is measured against that clock.
func NewTestTime(start time.Time, step time.Duration) StatsTime {
	return &testTime{now: start, step: step}
}

func (t *testTime) Now() time.Time {
	now := t.now
	t.now = t.now.Add(t.step)
	return now
}

func (t *testTime) Since(s time.Time) time.Duration { return t.Now().Sub(s) }
