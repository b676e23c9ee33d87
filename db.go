package ridership

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"os"

	"github.com/kelindar/column"

	"github.com/aaroncutress/ridership-go/models"
)

// In-memory columnar store holding one cleaned, enriched trip table.
type ridershipdb struct {
	rides *column.Collection
}

// Initialize the cleaned-table schema. Column names match the derived-field
// names used in report output.
func (db *ridershipdb) initialize() {
	db.rides = column.NewCollection()
	db.rides.CreateColumn("id", column.ForKey())
	db.rides.CreateColumn("vehicle_type", column.ForUint())
	db.rides.CreateColumn("rider_type", column.ForUint())
	db.rides.CreateColumn("started_at", column.ForString())
	db.rides.CreateColumn("ended_at", column.ForString())
	db.rides.CreateColumn("start_station_name", column.ForString())
	db.rides.CreateColumn("start_station_id", column.ForString())
	db.rides.CreateColumn("end_station_name", column.ForString())
	db.rides.CreateColumn("end_station_id", column.ForString())
	db.rides.CreateColumn("start_lat", column.ForFloat64())
	db.rides.CreateColumn("start_lng", column.ForFloat64())
	db.rides.CreateColumn("end_lat", column.ForFloat64())
	db.rides.CreateColumn("end_lng", column.ForFloat64())

	db.rides.CreateColumn("ride_length_mins", column.ForFloat64())
	db.rides.CreateColumn("ride_distance_km", column.ForFloat64())
	db.rides.CreateColumn("speed_kph", column.ForFloat64())
	db.rides.CreateColumn("hour_of_day", column.ForUint())
	db.rides.CreateColumn("day_of_week", column.ForUint())
	db.rides.CreateColumn("month", column.ForUint())
	db.rides.CreateColumn("season", column.ForUint())
	db.rides.CreateColumn("is_weekend", column.ForUint())
	db.rides.CreateColumn("time_of_day", column.ForUint())
	db.rides.CreateColumn("ride_period", column.ForUint())
	db.rides.CreateColumn("is_round_trip", column.ForUint())
	db.rides.CreateColumn("station_status", column.ForUint())
	db.rides.CreateColumn("usage_pattern", column.ForUint())
	db.rides.CreateColumn("likely_commuter", column.ForUint())
}

// Populates the store with a cleaned trip table.
func (db *ridershipdb) populate(rides models.RideArray) error {
	return db.rides.Query(func(txn *column.Txn) error {
		for _, ride := range rides {
			if err := txn.InsertKey(string(ride.ID), ride.Save); err != nil {
				return err
			}
		}
		return nil
	})
}

// Reads the full cleaned table back out of the store.
func (db *ridershipdb) all() (models.RideArray, error) {
	var rides models.RideArray
	err := db.rides.Query(rides.Load)
	if err != nil {
		return nil, err
	}
	return rides, nil
}

// Counts cleaned rides per rider type via a filtered column scan.
func (db *ridershipdb) countByRiderType(rider models.RiderType) (int, error) {
	count := 0
	err := db.rides.Query(func(txn *column.Txn) error {
		count = txn.WithUint("rider_type", func(v uint64) bool {
			return v == uint64(rider)
		}).Count()
		return nil
	})
	return count, err
}

// Counts cleaned rides per usage pattern via a filtered column scan.
func (db *ridershipdb) countByUsagePattern(pattern models.UsagePattern) (int, error) {
	count := 0
	err := db.rides.Query(func(txn *column.Txn) error {
		count = txn.WithUint("usage_pattern", func(v uint64) bool {
			return v == uint64(pattern)
		}).Count()
		return nil
	})
	return count, err
}

func (db *ridershipdb) count() int {
	return db.rides.Count()
}

// load loads a previously saved cleaned table from a zip snapshot file.
func (db *ridershipdb) load(filePath string) (int, int64, error) {
	db.initialize()

	zipFile, err := os.Open(filePath)
	if err != nil {
		return 0, 0, err
	}
	defer zipFile.Close()

	fileStat, err := zipFile.Stat()
	if err != nil {
		return 0, 0, err
	}

	zipReader, err := zip.NewReader(zipFile, fileStat.Size())
	if err != nil {
		return 0, 0, err
	}

	for _, file := range zipReader.File {
		if file.Name != "rides" {
			continue
		}
		f, err := file.Open()
		if err != nil {
			return 0, 0, err
		}
		err = db.rides.Restore(f)
		f.Close()
		if err != nil {
			return 0, 0, err
		}
	}

	// Load the metadata file
	metadataFile, err := zipReader.Open("metadata.json")
	if err != nil {
		return 0, 0, err
	}
	defer metadataFile.Close()

	metadata := make(map[string]any)
	err = json.NewDecoder(metadataFile).Decode(&metadata)
	if err != nil {
		return 0, 0, err
	}

	versionF, ok := metadata["version"].(float64)
	if !ok {
		return 0, 0, errors.New("invalid metadata version")
	}
	version := int(versionF)

	createdF, ok := metadata["created"].(float64)
	if !ok {
		return 0, 0, errors.New("invalid metadata created")
	}
	created := int64(createdF)

	return version, created, nil
}

// save saves the cleaned table to a zip snapshot file.
func (db *ridershipdb) save(filePath string, version int, created int64) error {
	zipFile, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	zipWriter := zip.NewWriter(zipFile)
	defer zipWriter.Close()

	file, err := zipWriter.Create("rides")
	if err != nil {
		return err
	}
	if err := db.rides.Snapshot(file); err != nil {
		return err
	}

	// Write the metadata file
	metadataFile, err := zipWriter.Create("metadata.json")
	if err != nil {
		return err
	}
	metadata := map[string]any{
		"version": version,
		"created": created,
		"rows":    db.rides.Count(),
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return err
	}
	_, err = metadataFile.Write(metadataJSON)
	return err
}
