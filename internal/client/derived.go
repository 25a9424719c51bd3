package client

import (
	"sort"
	"time"

	"pethealth/internal/models"
)

// LatestWeight returns the most recent weight log, or nil when there are
// none. Ties on date resolve to the later-created entry.
func LatestWeight(logs []models.WeightLog) *models.WeightLog {
	var latest *models.WeightLog
	for i := range logs {
		l := &logs[i]
		if latest == nil || l.Date.After(latest.Date) ||
			(l.Date.Equal(latest.Date) && l.CreatedAt.After(latest.CreatedAt)) {
			latest = l
		}
	}
	return latest
}

// UpcomingVaccine returns the vaccine log with the nearest future due date
// among entries that have reminders enabled, or nil when nothing qualifies.
// Due dates at or before now are considered elapsed, not upcoming.
func UpcomingVaccine(logs []models.VaccineLog, now time.Time) *models.VaccineLog {
	var upcoming *models.VaccineLog
	for i := range logs {
		l := &logs[i]
		if l.NextDueDate == nil || !l.ReminderEnabled || !l.NextDueDate.After(now) {
			continue
		}
		if upcoming == nil || l.NextDueDate.Before(*upcoming.NextDueDate) {
			upcoming = l
		}
	}
	return upcoming
}

// RecentDiet returns up to n diet logs sorted newest first, same-day entries
// ordered by feeding time descending. The input slice is not modified.
func RecentDiet(logs []models.DietLog, n int) []models.DietLog {
	sorted := make([]models.DietLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].FeedingTime > sorted[j].FeedingTime
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// WeightTrendPoint is one entry in a locally computed weight trend.
type WeightTrendPoint struct {
	Date     time.Time
	WeightKg float64
	ChangeKg *float64
}

// WeightTrend computes the last n weight measurements oldest first, each
// carrying the change from the previous point. The first point has no
// change. Pass n <= 0 for all points.
func WeightTrend(logs []models.WeightLog, n int) []WeightTrendPoint {
	sorted := make([]models.WeightLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}

	points := make([]WeightTrendPoint, 0, len(sorted))
	for i, l := range sorted {
		p := WeightTrendPoint{Date: l.Date, WeightKg: l.WeightKg}
		if i > 0 {
			change := l.WeightKg - sorted[i-1].WeightKg
			p.ChangeKg = &change
		}
		points = append(points, p)
	}
	return points
}
