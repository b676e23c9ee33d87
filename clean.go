package ridership

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-set/v3"

	"github.com/aaroncutress/ridership-go/models"
)

// Runs the cleaning and validation passes over a raw trip table.
type Pipeline struct {
	Config Config
}

func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{Config: cfg}
}

// Runs the full cleaning pipeline over the input table and returns the
// cleaned, enriched table together with its quality report.
//
// Passes run in a fixed order: temporal validity, geographic bounds,
// distance computation, enrichment, plausibility, then the quality report.
// A row removed by one pass never reappears in a later one. Out-of-policy
// rows are excluded and counted, never fatal; an empty input yields an
// empty table and a zeroed report.
//
// Note the pass ordering means rides without coordinates are removed by the
// bounds filter before distance is ever computed, even though the
// plausibility pass treats a missing distance as tolerable.
func (p *Pipeline) Run(rides models.RideArray) (models.RideArray, *QualityReport) {
	initial := len(rides)
	duplicates := countDuplicateIDs(rides)

	log.Infof("Cleaning %d rides", initial)

	// Work on copies so the caller's table is left untouched.
	work := make(models.RideArray, len(rides))
	for i, ride := range rides {
		r := *ride
		work[i] = &r
	}
	rides = work

	rides = p.filterTemporal(rides)
	log.Debugf("%d rides after temporal validity filter", len(rides))

	rides = p.filterBounds(rides)
	log.Debugf("%d rides after geographic bounds filter", len(rides))

	rides = p.enrich(rides)

	rides = p.filterPlausibility(rides)
	log.Debugf("%d rides after plausibility filter", len(rides))

	for _, r := range rides {
		r.LikelyCommuter = isLikelyCommuter(r)
		r.UsagePattern = classifyUsagePattern(r)
	}

	report := newQualityReport(initial, duplicates, rides)
	log.Infof("Kept %d of %d rides (%.1f%%)", report.FinalRows, report.InitialRows, report.PctRowsKept)

	return rides, report
}

// Drops rows with missing or inverted timestamps and rows whose elapsed
// duration falls outside the configured window.
func (p *Pipeline) filterTemporal(rides models.RideArray) models.RideArray {
	minDuration := time.Duration(p.Config.MinDurationMins * float64(time.Minute))
	maxDuration := time.Duration(p.Config.MaxDurationHrs * float64(time.Hour))

	kept := rides[:0:0]
	for _, r := range rides {
		if r.StartedAt.IsZero() || r.EndedAt.IsZero() {
			continue
		}
		d := r.Duration()
		if d <= 0 || d < minDuration || d >= maxDuration {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// Drops rows with any coordinate outside the service-area bounding box.
// A missing coordinate fails the range test, so rides without coordinates
// are removed here as well.
func (p *Pipeline) filterBounds(rides models.RideArray) models.RideArray {
	box := p.Config.ServiceArea

	kept := rides[:0:0]
	for _, r := range rides {
		start, ok := r.StartCoordinate()
		if !ok || !box.Contains(start) {
			continue
		}
		end, ok := r.EndCoordinate()
		if !ok || !box.Contains(end) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// Computes trip distance and attaches the remaining derived fields: ride
// length, temporal and seasonal categories, speed, round-trip flag and
// station validity status.
func (p *Pipeline) enrich(rides models.RideArray) models.RideArray {
	for _, r := range rides {
		enrichTime(r)
		r.RideLengthMins = r.Duration().Minutes()
		r.Season = models.SeasonForMonth(r.Month)
		r.RidePeriod = models.RidePeriodForHour(r.HourOfDay)

		r.DistanceKM = nil
		if start, ok := r.StartCoordinate(); ok {
			if end, ok := r.EndCoordinate(); ok {
				km := start.DistanceTo(end)
				r.DistanceKM = &km
			}
		}

		r.SpeedKPH = nil
		if r.DistanceKM != nil && r.RideLengthMins > 0 {
			kph := *r.DistanceKM / (r.RideLengthMins / 60)
			r.SpeedKPH = &kph
		}

		r.IsRoundTrip = nil
		if r.StartStationID != "" && r.EndStationID != "" {
			same := r.StartStationID == r.EndStationID
			r.IsRoundTrip = &same
		}

		r.StationStatus = stationStatus(r)
	}
	return rides
}

func stationStatus(r *models.Ride) models.StationStatus {
	startValid := r.StartStationName != ""
	endValid := r.EndStationName != ""
	switch {
	case startValid && endValid:
		return models.BothValidStationStatus
	case startValid:
		return models.StartOnlyStationStatus
	case endValid:
		return models.EndOnlyStationStatus
	default:
		return models.NeitherValidStationStatus
	}
}

// Drops rows with an implausible defined speed or distance. Rows where
// either value is unknown pass through.
func (p *Pipeline) filterPlausibility(rides models.RideArray) models.RideArray {
	kept := rides[:0:0]
	for _, r := range rides {
		if r.SpeedKPH != nil && *r.SpeedKPH > p.Config.MaxSpeedKPH {
			continue
		}
		if r.DistanceKM != nil && *r.DistanceKM > p.Config.MaxDistanceKM {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// Duplicate ride ids are reported, never removed.
func countDuplicateIDs(rides models.RideArray) int {
	ids := set.New[models.Key](len(rides))
	for _, r := range rides {
		ids.Insert(r.ID)
	}
	return len(rides) - ids.Size()
}
