// Package notify derives the banner state for an event as a pure function of
// the event, the viewer's attendance and an evaluation instant. Nothing is
// stored: banners are recomputed on every read and may reappear.
package notify

import (
	"time"

	"github.com/4lejanddr0/communityevents/internal/models"
)

type Banners struct {
	ReminderDue     bool `json:"reminder_due"`
	RecentlyUpdated bool `json:"recently_updated"`
}

// ForEvent evaluates both banner rules against now. Hours are whole hours,
// truncated toward zero, matching how the reminder window has always been
// counted.
func ForEvent(event *models.Event, viewerIsAttending bool, now time.Time) Banners {
	return Banners{
		ReminderDue:     reminderDue(event.StartTime, now),
		RecentlyUpdated: viewerIsAttending && recentlyUpdated(event.UpdatedAt, now),
	}
}

// reminderDue reports whether the event starts between 1 and 24 whole hours
// from now.
func reminderDue(startTime, now time.Time) bool {
	until := startTime.Sub(now)
	if until < 0 {
		return false
	}
	hours := int64(until / time.Hour)
	return hours >= 1 && hours <= 24
}

// recentlyUpdated reports whether the event was changed within the last 24
// hours. A zero updated_at never triggers the banner.
func recentlyUpdated(updatedAt, now time.Time) bool {
	if updatedAt.IsZero() {
		return false
	}
	since := now.Sub(updatedAt)
	if since < 0 {
		return false
	}
	hours := int64(since / time.Hour)
	return hours <= 24
}
