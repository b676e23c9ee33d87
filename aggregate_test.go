package ridership

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaroncutress/ridership-go/models"
)

func rideAt(rider models.RiderType, mods ...func(*models.Ride)) *models.Ride {
	r := &models.Ride{RiderType: rider}
	for _, mod := range mods {
		mod(r)
	}
	return r
}

func TestRidesByHour(t *testing.T) {
	rides := models.RideArray{
		rideAt(models.MemberRiderType, func(r *models.Ride) { r.HourOfDay = 8 }),
		rideAt(models.CasualRiderType, func(r *models.Ride) { r.HourOfDay = 8 }),
		rideAt(models.MemberRiderType, func(r *models.Ride) { r.HourOfDay = 17 }),
	}

	rows := RidesByHour(rides)
	require.Len(t, rows, 24)
	assert.Equal(t, BucketCounts{Label: "08:00", Member: 1, Casual: 1}, rows[8])
	assert.Equal(t, BucketCounts{Label: "17:00", Member: 1}, rows[17])
	assert.Equal(t, BucketCounts{Label: "00:00"}, rows[0])
}

func TestRidesByWeekdayMondayFirst(t *testing.T) {
	rides := models.RideArray{
		rideAt(models.MemberRiderType, func(r *models.Ride) { r.DayOfWeek = 1 }), // Monday
		rideAt(models.CasualRiderType, func(r *models.Ride) { r.DayOfWeek = 0 }), // Sunday
	}

	rows := RidesByWeekday(rides)
	require.Len(t, rows, 7)
	assert.Equal(t, "Monday", rows[0].Label)
	assert.Equal(t, 1, rows[0].Member)
	assert.Equal(t, "Sunday", rows[6].Label)
	assert.Equal(t, 1, rows[6].Casual)
}

func TestRidesBySeason(t *testing.T) {
	rides := models.RideArray{
		rideAt(models.MemberRiderType, func(r *models.Ride) { r.Season = models.SummerSeason }),
		rideAt(models.MemberRiderType, func(r *models.Ride) { r.Season = models.SummerSeason }),
		rideAt(models.CasualRiderType, func(r *models.Ride) { r.Season = models.WinterSeason }),
	}

	rows := RidesBySeason(rides)
	require.Len(t, rows, len(models.Seasons))
	assert.Equal(t, BucketCounts{Label: "Summer", Member: 2}, rows[models.SummerSeason])
	assert.Equal(t, BucketCounts{Label: "Winter", Casual: 1}, rows[models.WinterSeason])
}

func TestRidesByTimeOfDay(t *testing.T) {
	rides := models.RideArray{
		rideAt(models.MemberRiderType, func(r *models.Ride) { r.TimeOfDay = models.MorningTimeOfDay }),
		rideAt(models.CasualRiderType, func(r *models.Ride) { r.TimeOfDay = models.NightTimeOfDay }),
	}

	rows := RidesByTimeOfDay(rides)
	require.Len(t, rows, len(models.TimesOfDay))
	assert.Equal(t, BucketCounts{Label: "Morning", Member: 1}, rows[models.MorningTimeOfDay])
	assert.Equal(t, BucketCounts{Label: "Night", Casual: 1}, rows[models.NightTimeOfDay])
}

func TestTripStatsByRider(t *testing.T) {
	rides := models.RideArray{
		rideAt(models.MemberRiderType, func(r *models.Ride) {
			r.RideLengthMins = 10
			r.DistanceKM = fp(2)
			r.SpeedKPH = fp(12)
		}),
		rideAt(models.MemberRiderType, func(r *models.Ride) {
			r.RideLengthMins = 20
			r.DistanceKM = fp(4)
			r.SpeedKPH = fp(12)
		}),
		rideAt(models.MemberRiderType, func(r *models.Ride) { r.RideLengthMins = 30 }),
		rideAt(models.CasualRiderType, func(r *models.Ride) { r.RideLengthMins = 40 }),
	}

	stats := TripStatsByRider(rides)
	require.Len(t, stats, len(models.RiderTypes))

	member := stats[0]
	assert.Equal(t, models.MemberRiderType, member.Rider)
	assert.Equal(t, 3, member.Count)
	assert.InDelta(t, 20, member.MeanMins, 1e-9)
	assert.InDelta(t, 20, member.MedianMins, 1e-9)
	assert.InDelta(t, 15, member.P25Mins, 1e-9)
	assert.InDelta(t, 25, member.P75Mins, 1e-9)
	assert.InDelta(t, 10, member.MinMins, 1e-9)
	assert.InDelta(t, 30, member.MaxMins, 1e-9)
	// Distance and speed cover only rides where the value is known
	assert.InDelta(t, 3, member.MeanKM, 1e-9)
	assert.InDelta(t, 12, member.MeanKPH, 1e-9)

	casual := stats[1]
	assert.Equal(t, 1, casual.Count)
	assert.InDelta(t, 40, casual.MeanMins, 1e-9)
	assert.Zero(t, casual.MeanKM)
}

func TestPopularRoutes(t *testing.T) {
	route := func(rider models.RiderType, start, end string) *models.Ride {
		return rideAt(rider, func(r *models.Ride) {
			r.StartStationName = start
			r.EndStationName = end
		})
	}
	rides := models.RideArray{
		route(models.MemberRiderType, "B", "C"),
		route(models.MemberRiderType, "B", "C"),
		route(models.CasualRiderType, "A", "B"),
		route(models.CasualRiderType, "A", "B"),
		route(models.MemberRiderType, "C", "A"),
		route(models.MemberRiderType, "", "A"), // unnamed endpoints excluded
	}

	// Tied counts order lexicographically; n truncates the tail
	routes := PopularRoutes(rides, 2)
	require.Len(t, routes, 2)
	assert.Equal(t, RouteCount{Start: "A", End: "B", Count: 2}, routes[0])
	assert.Equal(t, RouteCount{Start: "B", End: "C", Count: 2}, routes[1])

	all := PopularRoutes(rides, 0)
	require.Len(t, all, 3)
	assert.Equal(t, RouteCount{Start: "C", End: "A", Count: 1}, all[2])
}

func TestPopularStations(t *testing.T) {
	start := func(name string) *models.Ride {
		return rideAt(models.MemberRiderType, func(r *models.Ride) { r.StartStationName = name })
	}
	rides := models.RideArray{
		start("Wells St"), start("Wells St"),
		start("Clark St"), start("Clark St"),
		start("Damen Ave"),
		start(""),
	}

	stations := PopularStations(rides, 20)
	require.Len(t, stations, 3)
	assert.Equal(t, StationCount{Station: "Clark St", Count: 2}, stations[0])
	assert.Equal(t, StationCount{Station: "Wells St", Count: 2}, stations[1])
	assert.Equal(t, StationCount{Station: "Damen Ave", Count: 1}, stations[2])
}

func TestDistinctStations(t *testing.T) {
	rides := models.RideArray{
		rideAt(models.MemberRiderType, func(r *models.Ride) {
			r.StartStationName = "A"
			r.EndStationName = "B"
		}),
		rideAt(models.MemberRiderType, func(r *models.Ride) {
			r.StartStationName = "B"
			r.EndStationName = "C"
		}),
		rideAt(models.MemberRiderType),
	}
	assert.Equal(t, 3, DistinctStations(rides))
}

func TestUsagePatternShares(t *testing.T) {
	pattern := func(rider models.RiderType, p models.UsagePattern) *models.Ride {
		return rideAt(rider, func(r *models.Ride) { r.UsagePattern = p })
	}
	rides := models.RideArray{
		pattern(models.MemberRiderType, models.CommuterUsagePattern),
		pattern(models.MemberRiderType, models.CommuterUsagePattern),
		pattern(models.MemberRiderType, models.MixedUsagePattern),
		pattern(models.MemberRiderType, models.MixedUsagePattern),
		pattern(models.CasualRiderType, models.RoundTripUsagePattern),
	}

	shares := UsagePatternShares(rides)
	require.Len(t, shares, len(models.UsagePatterns))

	var memberTotal, casualTotal float64
	for _, share := range shares {
		memberTotal += share.MemberPct
		casualTotal += share.CasualPct
	}
	assert.InDelta(t, 100, memberTotal, 1e-9)
	assert.InDelta(t, 100, casualTotal, 1e-9)

	assert.Equal(t, models.CommuterUsagePattern, shares[0].Pattern)
	assert.InDelta(t, 50, shares[0].MemberPct, 1e-9)
	assert.Zero(t, shares[0].CasualPct)
}

func TestRoundTripRates(t *testing.T) {
	flag := func(rider models.RiderType, v *bool) *models.Ride {
		return rideAt(rider, func(r *models.Ride) { r.IsRoundTrip = v })
	}
	rides := models.RideArray{
		flag(models.MemberRiderType, bp(true)),
		flag(models.MemberRiderType, bp(false)),
		flag(models.MemberRiderType, nil), // unknown rows leave the denominator
		flag(models.CasualRiderType, nil),
	}

	rates := RoundTripRates(rides)
	assert.InDelta(t, 50, rates[models.MemberRiderType], 1e-9)
	_, ok := rates[models.CasualRiderType]
	assert.False(t, ok, "no known flags means no rate")
}

func TestWeekendShare(t *testing.T) {
	weekend := func(rider models.RiderType, v bool) *models.Ride {
		return rideAt(rider, func(r *models.Ride) { r.IsWeekend = v })
	}
	rides := models.RideArray{
		weekend(models.MemberRiderType, true),
		weekend(models.MemberRiderType, false),
		weekend(models.MemberRiderType, false),
		weekend(models.CasualRiderType, true),
	}

	shares := WeekendShare(rides)
	assert.InDelta(t, 100.0/3, shares[models.MemberRiderType], 1e-9)
	assert.InDelta(t, 100, shares[models.CasualRiderType], 1e-9)
}
