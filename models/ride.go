package models

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kelindar/column"
)

// Returned when an input file lacks one of the structurally required columns.
var ErrMissingColumn = errors.New("missing required column")

// The trip-history files carry a fixed 13-column schema. Only the identity
// and timestamp columns are structurally required; everything else may be
// absent on a per-row basis.
var requiredColumns = []string{"ride_id", "started_at", "ended_at"}

// Represents one bike-share ride. Spatial fields and station identity are
// nullable independently of each other: nil pointers and empty strings mean
// the value was absent in the source file.
type Ride struct {
	ID          Key
	VehicleType VehicleType
	StartedAt   time.Time
	EndedAt     time.Time

	StartStationName string
	StartStationID   Key
	EndStationName   string
	EndStationID     Key

	StartLat *float64
	StartLng *float64
	EndLat   *float64
	EndLng   *float64

	RiderType RiderType

	// Derived fields, attached by enrichment and the cleaning pipeline.
	// DistanceKM, SpeedKPH and IsRoundTrip stay nil when the inputs they
	// derive from are missing: nil means unknown, not zero.
	RideLengthMins float64
	DistanceKM     *float64
	SpeedKPH       *float64
	HourOfDay      int
	DayOfWeek      time.Weekday
	Month          time.Month
	Season         Season
	IsWeekend      bool
	TimeOfDay      TimeOfDay
	RidePeriod     RidePeriod
	IsRoundTrip    *bool
	StationStatus  StationStatus
	UsagePattern   UsagePattern
	LikelyCommuter bool
}

type RideArray []*Ride

// Elapsed ride time. Zero or negative when the timestamps are missing or
// out of order; such rows never survive the cleaning pipeline.
func (r *Ride) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Returns the start coordinate and whether both of its components are present.
func (r *Ride) StartCoordinate() (Coordinate, bool) {
	if r.StartLat == nil || r.StartLng == nil {
		return Coordinate{}, false
	}
	return NewCoordinate(*r.StartLat, *r.StartLng), true
}

// Returns the end coordinate and whether both of its components are present.
func (r *Ride) EndCoordinate() (Coordinate, bool) {
	if r.EndLat == nil || r.EndLng == nil {
		return Coordinate{}, false
	}
	return NewCoordinate(*r.EndLat, *r.EndLng), true
}

// Timestamp layouts seen across published monthly archives.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseNullableFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Load and parse rides from a monthly trip-history CSV file.
//
// The header row is mapped by column name so column order does not matter.
// A missing ride_id/started_at/ended_at column is a structural failure and
// aborts the load; everything row-level (blank cells, unparseable numbers,
// bad timestamps) is tolerated and left for the cleaning pipeline to judge.
func ParseRides(file io.Reader) (RideArray, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("empty trip file: no header row")
	}

	// Map column names to positions
	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rides := make(RideArray, 0, len(records)-1)
	for i, record := range records {
		if i == 0 {
			continue // skip header
		}

		id := Key(field(record, "ride_id"))
		if id == "" {
			continue // skip rows without an identity
		}

		rides = append(rides, &Ride{
			ID:               id,
			VehicleType:      ParseVehicleType(field(record, "rideable_type")),
			StartedAt:        parseTimestamp(field(record, "started_at")),
			EndedAt:          parseTimestamp(field(record, "ended_at")),
			StartStationName: field(record, "start_station_name"),
			StartStationID:   Key(field(record, "start_station_id")),
			EndStationName:   field(record, "end_station_name"),
			EndStationID:     Key(field(record, "end_station_id")),
			StartLat:         parseNullableFloat(field(record, "start_lat")),
			StartLng:         parseNullableFloat(field(record, "start_lng")),
			EndLat:           parseNullableFloat(field(record, "end_lat")),
			EndLng:           parseNullableFloat(field(record, "end_lng")),
			RiderType:        ParseRiderType(field(record, "member_casual")),
		})
	}

	return rides, nil
}

// Nullable floats are stored as NaN in the columnar store; nil round-trips.
func nullableToStore(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func nullableFromStore(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// Timestamps are stored as strings in the columnar store, booleans and
// nullable booleans as small uints.
const storedTimeLayout = "2006-01-02 15:04:05"

const (
	roundTripUnknown uint = iota
	roundTripFalse
	roundTripTrue
)

func boolToStore(v bool) uint {
	if v {
		return 1
	}
	return 0
}

// Saves the ride to the columnar store.
func (r *Ride) Save(row column.Row) error {
	row.SetUint("vehicle_type", uint(r.VehicleType))
	row.SetUint("rider_type", uint(r.RiderType))
	row.SetString("started_at", r.StartedAt.UTC().Format(storedTimeLayout))
	row.SetString("ended_at", r.EndedAt.UTC().Format(storedTimeLayout))
	row.SetString("start_station_name", r.StartStationName)
	row.SetString("start_station_id", string(r.StartStationID))
	row.SetString("end_station_name", r.EndStationName)
	row.SetString("end_station_id", string(r.EndStationID))
	row.SetFloat64("start_lat", nullableToStore(r.StartLat))
	row.SetFloat64("start_lng", nullableToStore(r.StartLng))
	row.SetFloat64("end_lat", nullableToStore(r.EndLat))
	row.SetFloat64("end_lng", nullableToStore(r.EndLng))

	row.SetFloat64("ride_length_mins", r.RideLengthMins)
	row.SetFloat64("ride_distance_km", nullableToStore(r.DistanceKM))
	row.SetFloat64("speed_kph", nullableToStore(r.SpeedKPH))
	row.SetUint("hour_of_day", uint(r.HourOfDay))
	row.SetUint("day_of_week", uint(r.DayOfWeek))
	row.SetUint("month", uint(r.Month))
	row.SetUint("season", uint(r.Season))
	row.SetUint("is_weekend", boolToStore(r.IsWeekend))
	row.SetUint("time_of_day", uint(r.TimeOfDay))
	row.SetUint("ride_period", uint(r.RidePeriod))
	switch {
	case r.IsRoundTrip == nil:
		row.SetUint("is_round_trip", roundTripUnknown)
	case *r.IsRoundTrip:
		row.SetUint("is_round_trip", roundTripTrue)
	default:
		row.SetUint("is_round_trip", roundTripFalse)
	}
	row.SetUint("station_status", uint(r.StationStatus))
	row.SetUint("usage_pattern", uint(r.UsagePattern))
	row.SetUint("likely_commuter", boolToStore(r.LikelyCommuter))

	return nil
}

// Loads the ride from the columnar store.
func (r *Ride) Load(row column.Row) error {
	key, keyOk := row.Key()
	vehicleType, vehicleTypeOk := row.Uint("vehicle_type")
	riderType, riderTypeOk := row.Uint("rider_type")
	startedAtStr, startedAtOk := row.String("started_at")
	endedAtStr, endedAtOk := row.String("ended_at")

	if !keyOk || !vehicleTypeOk || !riderTypeOk || !startedAtOk || !endedAtOk {
		return errors.New("missing required fields")
	}

	startedAt, err := time.ParseInLocation(storedTimeLayout, startedAtStr, time.UTC)
	if err != nil {
		return err
	}
	endedAt, err := time.ParseInLocation(storedTimeLayout, endedAtStr, time.UTC)
	if err != nil {
		return err
	}

	r.ID = Key(key)
	r.VehicleType = VehicleType(vehicleType)
	r.RiderType = RiderType(riderType)
	r.StartedAt = startedAt
	r.EndedAt = endedAt

	r.StartStationName, _ = row.String("start_station_name")
	startStationID, _ := row.String("start_station_id")
	r.StartStationID = Key(startStationID)
	r.EndStationName, _ = row.String("end_station_name")
	endStationID, _ := row.String("end_station_id")
	r.EndStationID = Key(endStationID)

	startLat, _ := row.Float64("start_lat")
	r.StartLat = nullableFromStore(startLat)
	startLng, _ := row.Float64("start_lng")
	r.StartLng = nullableFromStore(startLng)
	endLat, _ := row.Float64("end_lat")
	r.EndLat = nullableFromStore(endLat)
	endLng, _ := row.Float64("end_lng")
	r.EndLng = nullableFromStore(endLng)

	r.RideLengthMins, _ = row.Float64("ride_length_mins")
	distance, _ := row.Float64("ride_distance_km")
	r.DistanceKM = nullableFromStore(distance)
	speed, _ := row.Float64("speed_kph")
	r.SpeedKPH = nullableFromStore(speed)

	hourOfDay, _ := row.Uint("hour_of_day")
	r.HourOfDay = int(hourOfDay)
	dayOfWeek, _ := row.Uint("day_of_week")
	r.DayOfWeek = time.Weekday(dayOfWeek)
	month, _ := row.Uint("month")
	r.Month = time.Month(month)
	season, _ := row.Uint("season")
	r.Season = Season(season)
	isWeekend, _ := row.Uint("is_weekend")
	r.IsWeekend = isWeekend == 1
	timeOfDay, _ := row.Uint("time_of_day")
	r.TimeOfDay = TimeOfDay(timeOfDay)
	ridePeriod, _ := row.Uint("ride_period")
	r.RidePeriod = RidePeriod(ridePeriod)

	roundTrip, _ := row.Uint("is_round_trip")
	switch roundTrip {
	case roundTripTrue:
		v := true
		r.IsRoundTrip = &v
	case roundTripFalse:
		v := false
		r.IsRoundTrip = &v
	default:
		r.IsRoundTrip = nil
	}

	stationStatus, _ := row.Uint("station_status")
	r.StationStatus = StationStatus(stationStatus)
	usagePattern, _ := row.Uint("usage_pattern")
	r.UsagePattern = UsagePattern(usagePattern)
	likelyCommuter, _ := row.Uint("likely_commuter")
	r.LikelyCommuter = likelyCommuter == 1

	return nil
}

// Loads all rides from the store transaction.
func (ra *RideArray) Load(txn *column.Txn) error {
	count := txn.Count()
	if count == 0 {
		return nil
	}
	*ra = make(RideArray, count)

	var e error
	i := 0
	err := txn.Range(func(idx uint32) {
		r := &Ride{}
		if qErr := txn.QueryAt(idx, r.Load); qErr != nil {
			e = qErr
			return
		}
		(*ra)[i] = r
		i++
	})
	if err != nil {
		return err
	}
	if e != nil {
		return e
	}
	*ra = (*ra)[:i]

	return nil
}
