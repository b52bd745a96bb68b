package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/community-automation/internal/models"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestShouldPostToday(t *testing.T) {
	earlierToday := monday.Add(-8 * time.Hour)
	lastWeek := monday.AddDate(0, 0, -7)

	tests := []struct {
		name       string
		schedule   *models.Schedule
		lastPosted *time.Time
		now        time.Time
		want       bool
	}{
		{name: "no schedule never posted", now: monday, want: true},
		{name: "no schedule posted today", lastPosted: &earlierToday, now: monday, want: false},
		{name: "matching day never posted", schedule: &models.Schedule{DayOfWeek: "monday"}, now: monday, want: true},
		{name: "matching day case insensitive", schedule: &models.Schedule{DayOfWeek: "MONDAY"}, now: monday, want: true},
		{name: "other day", schedule: &models.Schedule{DayOfWeek: "monday"}, now: monday.AddDate(0, 0, 1), want: false},
		{name: "matching day posted today", schedule: &models.Schedule{DayOfWeek: "monday"}, lastPosted: &earlierToday, now: monday, want: false},
		{name: "matching day posted last week", schedule: &models.Schedule{DayOfWeek: "monday"}, lastPosted: &lastWeek, now: monday, want: true},
		{name: "unknown day means every day", schedule: &models.Schedule{DayOfWeek: "someday"}, now: monday.AddDate(0, 0, 3), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ShouldPostToday(tt.schedule, tt.lastPosted, tt.now))
		})
	}
}

func TestShouldPostTodayNeverTwiceOnSameDay(t *testing.T) {
	days := []string{"", "sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
	for offset := 0; offset < 7; offset++ {
		now := monday.AddDate(0, 0, offset)
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		for _, day := range days {
			last := startOfDay.Add(time.Duration(offset) * time.Hour)
			require.False(t, ShouldPostToday(&models.Schedule{DayOfWeek: day}, &last, now), "day=%q offset=%d", day, offset)
		}
	}
}

func TestShouldPostTodayComparesInNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2026, 3, 2, 20, 0, 0, 0, loc)
	// 01:00 UTC on Mar 3 is still Mar 2 in now's zone.
	last := time.Date(2026, 3, 3, 1, 0, 0, 0, time.UTC)
	require.False(t, ShouldPostToday(nil, &last, now))

	// 04:00 UTC on Mar 2 was Mar 1 in now's zone.
	last = time.Date(2026, 3, 2, 4, 0, 0, 0, time.UTC)
	require.True(t, ShouldPostToday(nil, &last, now))
}
