package ridership

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aaroncutress/ridership-go/models"
)

func bp(v bool) *bool { return &v }

// Builds a ride from the derived fields the classifier reads.
func classifiedRide(weekend bool, period models.RidePeriod, distance *float64, roundTrip *bool) *models.Ride {
	return &models.Ride{
		IsWeekend:   weekend,
		RidePeriod:  period,
		DistanceKM:  distance,
		IsRoundTrip: roundTrip,
	}
}

func TestIsLikelyCommuter(t *testing.T) {
	cases := []struct {
		name string
		ride *models.Ride
		want bool
	}{
		{"morning rush in range", classifiedRide(false, models.MorningRushRidePeriod, fp(3), nil), true},
		{"evening rush in range", classifiedRide(false, models.EveningRushRidePeriod, fp(8), nil), true},
		{"lower distance edge", classifiedRide(false, models.MorningRushRidePeriod, fp(1), nil), true},
		{"below distance range", classifiedRide(false, models.MorningRushRidePeriod, fp(0.99), nil), false},
		{"above distance range", classifiedRide(false, models.MorningRushRidePeriod, fp(8.01), nil), false},
		{"unknown distance", classifiedRide(false, models.MorningRushRidePeriod, nil, nil), false},
		{"weekend", classifiedRide(true, models.MorningRushRidePeriod, fp(3), nil), false},
		{"off-peak", classifiedRide(false, models.MidDayRidePeriod, fp(3), nil), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, isLikelyCommuter(c.ride))
		})
	}
}

func TestClassifyUsagePattern(t *testing.T) {
	cases := []struct {
		name string
		ride *models.Ride
		want models.UsagePattern
	}{
		{"commuter beats round trip",
			classifiedRide(false, models.MorningRushRidePeriod, fp(3), bp(true)),
			models.CommuterUsagePattern},
		{"weekend leisure beats round trip",
			classifiedRide(true, models.MidDayRidePeriod, fp(3), bp(true)),
			models.WeekendLeisureUsagePattern},
		{"round trip beats night rider",
			classifiedRide(false, models.NightRidePeriod, fp(0.2), bp(true)),
			models.RoundTripUsagePattern},
		{"night rider",
			classifiedRide(false, models.NightRidePeriod, fp(2), bp(false)),
			models.NightRiderUsagePattern},
		{"unknown round trip never matches",
			classifiedRide(false, models.NightRidePeriod, fp(2), nil),
			models.NightRiderUsagePattern},
		{"midday casual",
			classifiedRide(false, models.MidDayRidePeriod, fp(12), bp(false)),
			models.MiddayCasualUsagePattern},
		{"weekend rush falls through to mixed",
			classifiedRide(true, models.MorningRushRidePeriod, fp(3), bp(false)),
			models.MixedUsagePattern},
		{"short weekday rush is mixed",
			classifiedRide(false, models.MorningRushRidePeriod, fp(0.5), bp(false)),
			models.MixedUsagePattern},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, classifyUsagePattern(c.ride))
		})
	}
}

// Every combination of inputs yields one of the six labels.
func TestClassifyUsagePatternTotal(t *testing.T) {
	distances := []*float64{nil, fp(0.5), fp(3), fp(12)}
	roundTrips := []*bool{nil, bp(false), bp(true)}

	for _, weekend := range []bool{false, true} {
		for _, period := range models.RidePeriods {
			for _, distance := range distances {
				for _, roundTrip := range roundTrips {
					pattern := classifyUsagePattern(classifiedRide(weekend, period, distance, roundTrip))
					assert.Contains(t, models.UsagePatterns, pattern)
				}
			}
		}
	}
}
