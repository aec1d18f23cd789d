package cache

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestKey(t *testing.T) {
	tests := []struct {
		name     string
		barberID int64
		date     time.Time
		duration int
		want     string
	}{
		{
			name:     "unfiltered grid",
			barberID: 0,
			date:     day(2026, 1, 15),
			duration: 30,
			want:     "availability:0:2026-01-15:30",
		},
		{
			name:     "barber filter and service duration",
			barberID: 7,
			date:     day(2026, 1, 15),
			duration: 45,
			want:     "availability:7:2026-01-15:45",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Key(tt.barberID, tt.date, tt.duration)
			if got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDayPatterns(t *testing.T) {
	date := day(2026, 1, 15)

	tests := []struct {
		name     string
		barberID int64
		want     []string
	}{
		{
			// A day-wide change must also drop barber-filtered
			// grids like availability:7:2026-01-15:30.
			name:     "whole day covers every barber",
			barberID: 0,
			want:     []string{"availability:*:2026-01-15:*"},
		},
		{
			name:     "one barber plus the unfiltered grid",
			barberID: 7,
			want: []string{
				"availability:7:2026-01-15:*",
				"availability:0:2026-01-15:*",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dayPatterns(tt.barberID, date)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("dayPatterns(%d) = %v, want %v", tt.barberID, got, tt.want)
			}
		})
	}
}

func TestDayPatterns_MatchCachedKeys(t *testing.T) {
	date := day(2026, 1, 15)
	keys := []string{
		Key(0, date, 30),
		Key(7, date, 30),
		Key(7, date, 45),
	}

	for _, pattern := range dayPatterns(0, date) {
		for _, key := range keys {
			if !globMatch(pattern, key) {
				t.Errorf("pattern %q does not match cached key %q", pattern, key)
			}
		}
	}

	// Another day's keys must survive a day-wide flush.
	other := Key(7, day(2026, 1, 16), 30)
	for _, pattern := range dayPatterns(0, date) {
		if globMatch(pattern, other) {
			t.Errorf("pattern %q matches other day's key %q", pattern, other)
		}
	}
}

// globMatch evaluates a redis-style glob (only * used here) the way
// SCAN does, so pattern tests exercise real matching.
func globMatch(pattern, s string) bool {
	if pattern == "" {
		return s == ""
	}
	if pattern[0] == '*' {
		for i := 0; i <= len(s); i++ {
			if globMatch(pattern[1:], s[i:]) {
				return true
			}
		}
		return false
	}
	if s == "" || pattern[0] != s[0] {
		return false
	}
	return globMatch(pattern[1:], s[1:])
}

func TestDisabledCacheIsInert(t *testing.T) {
	ctx := context.Background()
	date := day(2026, 1, 15)

	caches := map[string]*AvailabilityCache{
		"nil cache":  nil,
		"nil client": New(nil, time.Minute),
		"zero ttl":   New(nil, 0),
	}

	for name, c := range caches {
		t.Run(name, func(t *testing.T) {
			if c.Enabled() {
				t.Fatal("Enabled() = true, want false")
			}
			var out any
			if c.Get(ctx, Key(0, date, 30), &out) {
				t.Error("Get() = true on disabled cache")
			}
			c.Set(ctx, Key(0, date, 30), "grid")
			c.InvalidateDay(ctx, 7, date)
			c.InvalidateAll(ctx)
		})
	}
}
