package service

import (
	"time"

	"github.com/maheshrc27/community-automation/internal/models"
)

// ShouldPostToday reports whether content with the given schedule may be
// published at now. Calendar days are compared in now's location. The
// caller checks the active flag first.
func ShouldPostToday(schedule *models.Schedule, lastPosted *time.Time, now time.Time) bool {
	if day, ok := schedule.Weekday(); ok && now.Weekday() != day {
		return false
	}

	if lastPosted != nil && sameDay(lastPosted.In(now.Location()), now) {
		return false
	}

	return true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
