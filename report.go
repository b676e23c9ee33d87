package ridership

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aaroncutress/ridership-go/models"
)

// Renders the narrative Markdown report and the per-aggregation CSV tables
// into the given directory. Requires a processed or loaded cleaned table.
func (a *Ridership) WriteReport(dir string) error {
	if a.clean == nil {
		return fmt.Errorf("no cleaned data to report on")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	log.Infof("Writing report to %s", dir)

	if err := a.writeMarkdown(filepath.Join(dir, "report.md")); err != nil {
		return err
	}

	exports := map[string][]BucketCounts{
		"rides_by_hour.csv":    RidesByHour(a.clean),
		"rides_by_weekday.csv": RidesByWeekday(a.clean),
		"rides_by_month.csv":   RidesByMonth(a.clean),
		"rides_by_season.csv":  RidesBySeason(a.clean),
		"rides_by_period.csv":  RidesByPeriod(a.clean),
		"rides_by_time.csv":    RidesByTimeOfDay(a.clean),
	}
	for name, rows := range exports {
		if err := writeCountsCSV(filepath.Join(dir, name), rows); err != nil {
			return err
		}
	}

	if err := writeRoutesCSV(filepath.Join(dir, "popular_routes.csv"), PopularRoutes(a.clean, a.Config.TopN)); err != nil {
		return err
	}
	if err := writeStationsCSV(filepath.Join(dir, "popular_stations.csv"), PopularStations(a.clean, a.Config.TopN)); err != nil {
		return err
	}

	log.Info("Report written")
	return nil
}

func (a *Ridership) writeMarkdown(path string) error {
	var b strings.Builder

	b.WriteString("# Bike-Share Ridership Report\n\n")
	b.WriteString(fmt.Sprintf("Generated %s\n\n", time.Now().Format("2006-01-02 15:04")))

	if r := a.report; r != nil {
		b.WriteString("## Data Quality\n\n")
		b.WriteString("| Metric | Value |\n|---|---|\n")
		b.WriteString(fmt.Sprintf("| Initial rows | %d |\n", r.InitialRows))
		b.WriteString(fmt.Sprintf("| Final rows | %d |\n", r.FinalRows))
		b.WriteString(fmt.Sprintf("| Rows removed | %d |\n", r.RowsRemoved))
		b.WriteString(fmt.Sprintf("| Rows kept | %.2f%% |\n", r.PctRowsKept))
		b.WriteString(fmt.Sprintf("| Duplicate ride ids | %d |\n", r.DuplicateRideIDs))
		b.WriteString(fmt.Sprintf("| Missing station name | %.2f%% |\n", r.PctMissingStationName))
		b.WriteString(fmt.Sprintf("| Mean ride length | %.1f mins |\n", r.MeanRideLengthMins))
		b.WriteString(fmt.Sprintf("| Median ride length | %.1f mins |\n", r.MedianRideLengthMins))
		b.WriteString(fmt.Sprintf("| Valid distance | %.2f%% |\n", r.PctValidDistance))
		b.WriteString(fmt.Sprintf("| Fully valid stations | %.2f%% |\n", r.PctFullyValidStations))
		b.WriteString("\n")
	}

	b.WriteString("## Ridership Overview\n\n")
	b.WriteString(fmt.Sprintf("%d cleaned rides across %d distinct stations.\n\n",
		len(a.clean), DistinctStations(a.clean)))
	if a.db != nil {
		b.WriteString("| Rider type | Rides |\n|---|---|\n")
		for _, rider := range models.RiderTypes {
			count, err := a.CountByRiderType(rider)
			if err != nil {
				return err
			}
			b.WriteString(fmt.Sprintf("| %s | %d |\n", rider, count))
		}
		b.WriteString("\n")
	}

	writeBucketTable := func(title string, rows []BucketCounts) {
		b.WriteString("## " + title + "\n\n")
		b.WriteString("| | Member | Casual |\n|---|---|---|\n")
		for _, row := range rows {
			b.WriteString(fmt.Sprintf("| %s | %d | %d |\n", row.Label, row.Member, row.Casual))
		}
		b.WriteString("\n")
	}
	writeBucketTable("Rides by Hour", RidesByHour(a.clean))
	writeBucketTable("Rides by Weekday", RidesByWeekday(a.clean))
	writeBucketTable("Rides by Month", RidesByMonth(a.clean))
	writeBucketTable("Rides by Season", RidesBySeason(a.clean))
	writeBucketTable("Rides by Period", RidesByPeriod(a.clean))
	writeBucketTable("Rides by Time of Day", RidesByTimeOfDay(a.clean))

	b.WriteString("## Trip Characteristics\n\n")
	b.WriteString("| Rider type | Rides | Mean mins | Median mins | P25 | P75 | Mean km | Median km | Mean km/h |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|\n")
	for _, s := range TripStatsByRider(a.clean) {
		b.WriteString(fmt.Sprintf("| %s | %d | %.1f | %.1f | %.1f | %.1f | %.2f | %.2f | %.1f |\n",
			s.Rider, s.Count, s.MeanMins, s.MedianMins, s.P25Mins, s.P75Mins, s.MeanKM, s.MedianKM, s.MeanKPH))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("## Top %d Routes\n\n", a.Config.TopN))
	b.WriteString("| Start | End | Rides |\n|---|---|---|\n")
	for _, route := range PopularRoutes(a.clean, a.Config.TopN) {
		b.WriteString(fmt.Sprintf("| %s | %s | %d |\n", route.Start, route.End, route.Count))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("## Top %d Stations\n\n", a.Config.TopN))
	b.WriteString("| Station | Rides |\n|---|---|\n")
	for _, station := range PopularStations(a.clean, a.Config.TopN) {
		b.WriteString(fmt.Sprintf("| %s | %d |\n", station.Station, station.Count))
	}
	b.WriteString("\n")

	b.WriteString("## Usage Patterns\n\n")
	b.WriteString("| Pattern | Member | Casual |\n|---|---|---|\n")
	for _, share := range UsagePatternShares(a.clean) {
		b.WriteString(fmt.Sprintf("| %s | %.1f%% | %.1f%% |\n", share.Pattern, share.MemberPct, share.CasualPct))
	}
	b.WriteString("\n")

	roundTrips := RoundTripRates(a.clean)
	weekend := WeekendShare(a.clean)
	b.WriteString("## Behavioral Shares\n\n")
	b.WriteString("| Rider type | Round trips | Weekend rides |\n|---|---|---|\n")
	for _, rider := range models.RiderTypes {
		b.WriteString(fmt.Sprintf("| %s | %.1f%% | %.1f%% |\n", rider, roundTrips[rider], weekend[rider]))
	}
	b.WriteString("\n")

	return os.WriteFile(path, []byte(b.String()), 0644)
}

func writeCountsCSV(path string, rows []BucketCounts) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"bucket", "member", "casual"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{row.Label, strconv.Itoa(row.Member), strconv.Itoa(row.Casual)}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeRoutesCSV(path string, routes []RouteCount) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"start_station", "end_station", "rides"}); err != nil {
		return err
	}
	for _, route := range routes {
		if err := writer.Write([]string{route.Start, route.End, strconv.Itoa(route.Count)}); err != nil {
			return err
		}
	}
	return nil
}

func writeStationsCSV(path string, stations []StationCount) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"station", "rides"}); err != nil {
		return err
	}
	for _, station := range stations {
		if err := writer.Write([]string{station.Station, strconv.Itoa(station.Count)}); err != nil {
			return err
		}
	}
	return nil
}
