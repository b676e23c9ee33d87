package models

import "time"

type RiderType uint8
type VehicleType uint8
type TimeOfDay uint8
type RidePeriod uint8
type Season uint8
type StationStatus uint8
type UsagePattern uint8

const (
	MemberRiderType RiderType = iota
	CasualRiderType
	UnknownRiderType
)

const (
	ClassicBikeVehicleType VehicleType = iota
	ElectricBikeVehicleType
	ElectricScooterVehicleType
	DockedBikeVehicleType
	UnknownVehicleType
)

const (
	MorningTimeOfDay TimeOfDay = iota
	AfternoonTimeOfDay
	EveningTimeOfDay
	NightTimeOfDay
)

const (
	MorningRushRidePeriod RidePeriod = iota
	MidDayRidePeriod
	EveningRushRidePeriod
	NightRidePeriod
)

const (
	WinterSeason Season = iota
	SpringSeason
	SummerSeason
	FallSeason
)

const (
	BothValidStationStatus StationStatus = iota
	StartOnlyStationStatus
	EndOnlyStationStatus
	NeitherValidStationStatus
)

// Usage patterns are declared in classification precedence order.
const (
	CommuterUsagePattern UsagePattern = iota
	WeekendLeisureUsagePattern
	RoundTripUsagePattern
	NightRiderUsagePattern
	MiddayCasualUsagePattern
	MixedUsagePattern
)

// Fixed display orderings for grouped output, so tables and chart axes are
// stable across runs.
var (
	RiderTypes    = []RiderType{MemberRiderType, CasualRiderType}
	TimesOfDay    = []TimeOfDay{MorningTimeOfDay, AfternoonTimeOfDay, EveningTimeOfDay, NightTimeOfDay}
	RidePeriods   = []RidePeriod{MorningRushRidePeriod, MidDayRidePeriod, EveningRushRidePeriod, NightRidePeriod}
	Seasons       = []Season{WinterSeason, SpringSeason, SummerSeason, FallSeason}
	UsagePatterns = []UsagePattern{
		CommuterUsagePattern,
		WeekendLeisureUsagePattern,
		RoundTripUsagePattern,
		NightRiderUsagePattern,
		MiddayCasualUsagePattern,
		MixedUsagePattern,
	}
	Weekdays = []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	Months = []time.Month{
		time.January, time.February, time.March, time.April,
		time.May, time.June, time.July, time.August,
		time.September, time.October, time.November, time.December,
	}
)

func (r RiderType) String() string {
	switch r {
	case MemberRiderType:
		return "member"
	case CasualRiderType:
		return "casual"
	default:
		return "unknown"
	}
}

func ParseRiderType(s string) RiderType {
	switch s {
	case "member":
		return MemberRiderType
	case "casual":
		return CasualRiderType
	default:
		return UnknownRiderType
	}
}

func (v VehicleType) String() string {
	switch v {
	case ClassicBikeVehicleType:
		return "classic_bike"
	case ElectricBikeVehicleType:
		return "electric_bike"
	case ElectricScooterVehicleType:
		return "electric_scooter"
	case DockedBikeVehicleType:
		return "docked_bike"
	default:
		return "unknown"
	}
}

func ParseVehicleType(s string) VehicleType {
	switch s {
	case "classic_bike":
		return ClassicBikeVehicleType
	case "electric_bike":
		return ElectricBikeVehicleType
	case "electric_scooter":
		return ElectricScooterVehicleType
	case "docked_bike":
		return DockedBikeVehicleType
	default:
		return UnknownVehicleType
	}
}

// Returns the time-of-day bucket for a local hour. Buckets are half-open:
// [5,12) Morning, [12,17) Afternoon, [17,22) Evening, else Night.
func TimeOfDayForHour(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return MorningTimeOfDay
	case hour >= 12 && hour < 17:
		return AfternoonTimeOfDay
	case hour >= 17 && hour < 22:
		return EveningTimeOfDay
	default:
		return NightTimeOfDay
	}
}

func (t TimeOfDay) String() string {
	switch t {
	case MorningTimeOfDay:
		return "Morning"
	case AfternoonTimeOfDay:
		return "Afternoon"
	case EveningTimeOfDay:
		return "Evening"
	default:
		return "Night"
	}
}

// Returns the ride period for a local hour. Buckets are half-open:
// [6,10) Morning Rush, [10,16) Mid-Day, [16,19) Evening Rush, else Night.
func RidePeriodForHour(hour int) RidePeriod {
	switch {
	case hour >= 6 && hour < 10:
		return MorningRushRidePeriod
	case hour >= 10 && hour < 16:
		return MidDayRidePeriod
	case hour >= 16 && hour < 19:
		return EveningRushRidePeriod
	default:
		return NightRidePeriod
	}
}

func (p RidePeriod) String() string {
	switch p {
	case MorningRushRidePeriod:
		return "Morning Rush"
	case MidDayRidePeriod:
		return "Mid-Day"
	case EveningRushRidePeriod:
		return "Evening Rush"
	default:
		return "Night"
	}
}

// Returns the season for a calendar month. Winter is Dec/Jan/Feb, Spring is
// Mar/Apr/May, Summer is Jun/Jul/Aug, Fall otherwise.
func SeasonForMonth(month time.Month) Season {
	switch month {
	case time.December, time.January, time.February:
		return WinterSeason
	case time.March, time.April, time.May:
		return SpringSeason
	case time.June, time.July, time.August:
		return SummerSeason
	default:
		return FallSeason
	}
}

func (s Season) String() string {
	switch s {
	case WinterSeason:
		return "Winter"
	case SpringSeason:
		return "Spring"
	case SummerSeason:
		return "Summer"
	default:
		return "Fall"
	}
}

func (s StationStatus) String() string {
	switch s {
	case BothValidStationStatus:
		return "Both Valid"
	case StartOnlyStationStatus:
		return "Start Only"
	case EndOnlyStationStatus:
		return "End Only"
	default:
		return "Neither Valid"
	}
}

func (u UsagePattern) String() string {
	switch u {
	case CommuterUsagePattern:
		return "Commuter"
	case WeekendLeisureUsagePattern:
		return "Weekend Leisure"
	case RoundTripUsagePattern:
		return "Round Trip"
	case NightRiderUsagePattern:
		return "Night Rider"
	case MiddayCasualUsagePattern:
		return "Midday Casual"
	default:
		return "Mixed Usage"
	}
}
