package models

import (
	"strings"
	"time"
)

const (
	PlatformLinkedIn  = "linkedin"
	PlatformInstagram = "instagram"
)

// PostConfig is the config.json that sits next to a piece of content.
type PostConfig struct {
	PostID    string    `json:"post_id"`
	Title     string    `json:"title"`
	Active    bool      `json:"active"`
	Platforms []string  `json:"platforms"`
	Schedule  *Schedule `json:"schedule,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	ImagePath string    `json:"image_path,omitempty"`
}

func (c *PostConfig) HasPlatform(platform string) bool {
	for _, p := range c.Platforms {
		if strings.EqualFold(p, platform) {
			return true
		}
	}
	return false
}

// Schedule restricts posting to one day of the week. An empty or unknown
// day means every day is eligible.
type Schedule struct {
	DayOfWeek string `json:"day_of_week,omitempty"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func (s *Schedule) Weekday() (time.Weekday, bool) {
	if s == nil {
		return 0, false
	}
	day, ok := weekdays[strings.ToLower(strings.TrimSpace(s.DayOfWeek))]
	return day, ok
}
