package ridership

import (
	"time"

	"github.com/aaroncutress/ridership-go/models"
)

// Attaches the time-based features derived from each ride's start timestamp:
// hour of day, weekday, month, weekend flag and time-of-day bucket.
//
// The input table is never mutated; a new table of copies is returned.
// Running the transform again over its own output recomputes the same
// values, so it is safe to apply more than once.
func EnrichTimeFeatures(rides models.RideArray) models.RideArray {
	enriched := make(models.RideArray, len(rides))
	for i, ride := range rides {
		r := *ride
		enrichTime(&r)
		enriched[i] = &r
	}
	return enriched
}

func enrichTime(r *models.Ride) {
	r.HourOfDay = r.StartedAt.Hour()
	r.DayOfWeek = r.StartedAt.Weekday()
	r.Month = r.StartedAt.Month()
	r.IsWeekend = r.DayOfWeek == time.Saturday || r.DayOfWeek == time.Sunday
	r.TimeOfDay = models.TimeOfDayForHour(r.HourOfDay)
}
