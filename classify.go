package ridership

import (
	"github.com/aaroncutress/ridership-go/models"
)

// The commuter predicate: a weekday rush-hour ride covering a plausible
// commuting distance of 1 to 8 km inclusive. Rides without a known distance
// never qualify.
func isLikelyCommuter(r *models.Ride) bool {
	if r.IsWeekend || r.DistanceKM == nil {
		return false
	}
	if r.RidePeriod != models.MorningRushRidePeriod && r.RidePeriod != models.EveningRushRidePeriod {
		return false
	}
	return *r.DistanceKM >= 1 && *r.DistanceKM <= 8
}

// Assigns each ride exactly one usage pattern by first-match precedence:
// Commuter, Weekend Leisure, Round Trip, Night Rider, Midday Casual, then
// Mixed Usage as the fallback.
func classifyUsagePattern(r *models.Ride) models.UsagePattern {
	switch {
	case isLikelyCommuter(r):
		return models.CommuterUsagePattern
	case r.IsWeekend && r.RidePeriod == models.MidDayRidePeriod:
		return models.WeekendLeisureUsagePattern
	case r.IsRoundTrip != nil && *r.IsRoundTrip:
		return models.RoundTripUsagePattern
	case r.RidePeriod == models.NightRidePeriod:
		return models.NightRiderUsagePattern
	case !r.IsWeekend && r.RidePeriod == models.MidDayRidePeriod:
		return models.MiddayCasualUsagePattern
	default:
		return models.MixedUsagePattern
	}
}
