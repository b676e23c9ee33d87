package ridership

import (
	"github.com/aaroncutress/ridership-go/models"
)

// Summarises one pipeline run: how many records were removed and the
// aggregate quality of the survivors. Computed once per run and never
// modified afterwards.
type QualityReport struct {
	InitialRows int
	FinalRows   int
	RowsRemoved int
	PctRowsKept float64

	DuplicateRideIDs int

	PctMissingStationName float64
	MeanRideLengthMins    float64
	MedianRideLengthMins  float64
	PctValidDistance      float64
	PctFullyValidStations float64
}

func newQualityReport(initial, duplicates int, clean models.RideArray) *QualityReport {
	report := &QualityReport{
		InitialRows:      initial,
		FinalRows:        len(clean),
		RowsRemoved:      initial - len(clean),
		DuplicateRideIDs: duplicates,
	}
	if initial > 0 {
		report.PctRowsKept = float64(len(clean)) / float64(initial) * 100
	}
	if len(clean) == 0 {
		return report
	}

	lengths := make([]float64, len(clean))
	var missingName, validDistance, fullyValid int
	for i, r := range clean {
		lengths[i] = r.RideLengthMins
		if r.StartStationName == "" || r.EndStationName == "" {
			missingName++
		}
		if r.DistanceKM != nil {
			validDistance++
		}
		if r.StationStatus == models.BothValidStationStatus {
			fullyValid++
		}
	}

	total := float64(len(clean))
	report.PctMissingStationName = float64(missingName) / total * 100
	report.MeanRideLengthMins = mean(lengths)
	report.MedianRideLengthMins = median(lengths)
	report.PctValidDistance = float64(validDistance) / total * 100
	report.PctFullyValidStations = float64(fullyValid) / total * 100

	return report
}
