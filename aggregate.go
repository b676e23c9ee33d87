package ridership

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-set/v3"

	"github.com/aaroncutress/ridership-go/models"
)

// One row of a rider-type-by-bucket count table.
type BucketCounts struct {
	Label  string
	Member int
	Casual int
}

func (b *BucketCounts) add(rider models.RiderType, n int) {
	switch rider {
	case models.MemberRiderType:
		b.Member += n
	case models.CasualRiderType:
		b.Casual += n
	}
}

// Counts rides per start hour (0-23) by rider type.
func RidesByHour(rides models.RideArray) []BucketCounts {
	rows := make([]BucketCounts, 24)
	for h := range rows {
		rows[h].Label = fmt.Sprintf("%02d:00", h)
	}
	for _, r := range rides {
		if r.HourOfDay >= 0 && r.HourOfDay < 24 {
			rows[r.HourOfDay].add(r.RiderType, 1)
		}
	}
	return rows
}

// Counts rides per weekday by rider type, Monday first.
func RidesByWeekday(rides models.RideArray) []BucketCounts {
	rows := make([]BucketCounts, len(models.Weekdays))
	position := make(map[int]int, len(models.Weekdays))
	for i, day := range models.Weekdays {
		rows[i].Label = day.String()
		position[int(day)] = i
	}
	for _, r := range rides {
		rows[position[int(r.DayOfWeek)]].add(r.RiderType, 1)
	}
	return rows
}

// Counts rides per calendar month by rider type.
func RidesByMonth(rides models.RideArray) []BucketCounts {
	rows := make([]BucketCounts, len(models.Months))
	for i, month := range models.Months {
		rows[i].Label = month.String()
	}
	for _, r := range rides {
		if r.Month >= 1 && int(r.Month) <= len(rows) {
			rows[r.Month-1].add(r.RiderType, 1)
		}
	}
	return rows
}

// Counts rides per time-of-day bucket by rider type.
func RidesByTimeOfDay(rides models.RideArray) []BucketCounts {
	rows := make([]BucketCounts, len(models.TimesOfDay))
	for i, bucket := range models.TimesOfDay {
		rows[i].Label = bucket.String()
	}
	for _, r := range rides {
		rows[r.TimeOfDay].add(r.RiderType, 1)
	}
	return rows
}

// Counts rides per season by rider type.
func RidesBySeason(rides models.RideArray) []BucketCounts {
	rows := make([]BucketCounts, len(models.Seasons))
	for i, season := range models.Seasons {
		rows[i].Label = season.String()
	}
	for _, r := range rides {
		rows[r.Season].add(r.RiderType, 1)
	}
	return rows
}

// Counts rides per ride period by rider type.
func RidesByPeriod(rides models.RideArray) []BucketCounts {
	rows := make([]BucketCounts, len(models.RidePeriods))
	for i, period := range models.RidePeriods {
		rows[i].Label = period.String()
	}
	for _, r := range rides {
		rows[r.RidePeriod].add(r.RiderType, 1)
	}
	return rows
}

// Descriptive trip-characteristic statistics for one rider type. Distance
// and speed statistics cover only the rides where the value is known.
type TripStats struct {
	Rider models.RiderType
	Count int

	MeanMins   float64
	MedianMins float64
	P25Mins    float64
	P75Mins    float64
	MinMins    float64
	MaxMins    float64

	MeanKM   float64
	MedianKM float64
	MeanKPH  float64
}

// Computes trip-characteristic statistics grouped by rider type.
func TripStatsByRider(rides models.RideArray) []TripStats {
	stats := make([]TripStats, 0, len(models.RiderTypes))
	for _, rider := range models.RiderTypes {
		var lengths, distances, speeds []float64
		for _, r := range rides {
			if r.RiderType != rider {
				continue
			}
			lengths = append(lengths, r.RideLengthMins)
			if r.DistanceKM != nil {
				distances = append(distances, *r.DistanceKM)
			}
			if r.SpeedKPH != nil {
				speeds = append(speeds, *r.SpeedKPH)
			}
		}

		s := TripStats{Rider: rider, Count: len(lengths)}
		if len(lengths) > 0 {
			s.MeanMins = mean(lengths)
			s.MedianMins = median(lengths)
			s.P25Mins = quantile(lengths, 0.25)
			s.P75Mins = quantile(lengths, 0.75)
			s.MinMins = quantile(lengths, 0)
			s.MaxMins = quantile(lengths, 1)
		}
		s.MeanKM = mean(distances)
		s.MedianKM = median(distances)
		s.MeanKPH = mean(speeds)
		stats = append(stats, s)
	}
	return stats
}

// A start-to-end station pair and how often it was ridden.
type RouteCount struct {
	Start string
	End   string
	Count int
}

// Returns the n most ridden station-to-station routes, ordered by
// descending count. Ties are broken lexicographically by station names so
// the ranking is deterministic. Rides missing either station name are
// excluded.
func PopularRoutes(rides models.RideArray, n int) []RouteCount {
	type routeKey struct{ start, end string }
	counts := make(map[routeKey]int)
	for _, r := range rides {
		if r.StartStationName == "" || r.EndStationName == "" {
			continue
		}
		counts[routeKey{r.StartStationName, r.EndStationName}]++
	}

	routes := make([]RouteCount, 0, len(counts))
	for key, count := range counts {
		routes = append(routes, RouteCount{Start: key.start, End: key.end, Count: count})
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Count != routes[j].Count {
			return routes[i].Count > routes[j].Count
		}
		if routes[i].Start != routes[j].Start {
			return routes[i].Start < routes[j].Start
		}
		return routes[i].End < routes[j].End
	})

	if n > 0 && len(routes) > n {
		routes = routes[:n]
	}
	return routes
}

// A station and how often rides started there.
type StationCount struct {
	Station string
	Count   int
}

// Returns the n most used start stations, ordered by descending count with
// a lexicographic tie-break.
func PopularStations(rides models.RideArray, n int) []StationCount {
	counts := make(map[string]int)
	for _, r := range rides {
		if r.StartStationName == "" {
			continue
		}
		counts[r.StartStationName]++
	}

	stations := make([]StationCount, 0, len(counts))
	for name, count := range counts {
		stations = append(stations, StationCount{Station: name, Count: count})
	}
	sort.Slice(stations, func(i, j int) bool {
		if stations[i].Count != stations[j].Count {
			return stations[i].Count > stations[j].Count
		}
		return stations[i].Station < stations[j].Station
	})

	if n > 0 && len(stations) > n {
		stations = stations[:n]
	}
	return stations
}

// Counts every distinct station name appearing at either end of a ride.
func DistinctStations(rides models.RideArray) int {
	names := set.New[string](len(rides))
	for _, r := range rides {
		if r.StartStationName != "" {
			names.Insert(r.StartStationName)
		}
		if r.EndStationName != "" {
			names.Insert(r.EndStationName)
		}
	}
	return names.Size()
}

// The percentage share of one usage pattern within each rider type.
type PatternShare struct {
	Pattern   models.UsagePattern
	MemberPct float64
	CasualPct float64
}

// Computes the percentage share of each usage pattern per rider type, in
// declared pattern order.
func UsagePatternShares(rides models.RideArray) []PatternShare {
	var memberTotal, casualTotal int
	memberCounts := make(map[models.UsagePattern]int)
	casualCounts := make(map[models.UsagePattern]int)
	for _, r := range rides {
		switch r.RiderType {
		case models.MemberRiderType:
			memberTotal++
			memberCounts[r.UsagePattern]++
		case models.CasualRiderType:
			casualTotal++
			casualCounts[r.UsagePattern]++
		}
	}

	shares := make([]PatternShare, 0, len(models.UsagePatterns))
	for _, pattern := range models.UsagePatterns {
		share := PatternShare{Pattern: pattern}
		if memberTotal > 0 {
			share.MemberPct = float64(memberCounts[pattern]) / float64(memberTotal) * 100
		}
		if casualTotal > 0 {
			share.CasualPct = float64(casualCounts[pattern]) / float64(casualTotal) * 100
		}
		shares = append(shares, share)
	}
	return shares
}

// Share of known round trips per rider type, as percentages. Rides where
// the round-trip flag is unknown are left out of the denominator.
func RoundTripRates(rides models.RideArray) map[models.RiderType]float64 {
	known := make(map[models.RiderType]int)
	round := make(map[models.RiderType]int)
	for _, r := range rides {
		if r.IsRoundTrip == nil {
			continue
		}
		known[r.RiderType]++
		if *r.IsRoundTrip {
			round[r.RiderType]++
		}
	}

	rates := make(map[models.RiderType]float64, len(models.RiderTypes))
	for _, rider := range models.RiderTypes {
		if known[rider] > 0 {
			rates[rider] = float64(round[rider]) / float64(known[rider]) * 100
		}
	}
	return rates
}

// Share of weekend rides per rider type, as percentages.
func WeekendShare(rides models.RideArray) map[models.RiderType]float64 {
	totals := make(map[models.RiderType]int)
	weekend := make(map[models.RiderType]int)
	for _, r := range rides {
		totals[r.RiderType]++
		if r.IsWeekend {
			weekend[r.RiderType]++
		}
	}

	shares := make(map[models.RiderType]float64, len(models.RiderTypes))
	for _, rider := range models.RiderTypes {
		if totals[rider] > 0 {
			shares[rider] = float64(weekend[rider]) / float64(totals[rider]) * 100
		}
	}
	return shares
}
