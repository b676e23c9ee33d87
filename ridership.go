package ridership

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"resty.dev/v3"

	"github.com/aaroncutress/ridership-go/models"
)

// Current version of the snapshot file format
const CurrentVersion = 1

// Returned when no trip-history input files could be found.
var ErrNoInputFiles = errors.New("no input files found")

// Represents one ridership analysis session: the concatenated raw trip
// table, the cleaned table produced by the pipeline, its quality report,
// and the columnar store backing aggregation queries and snapshots.
type Ridership struct {
	Version int
	Created int64
	Config  Config

	raw    models.RideArray
	clean  models.RideArray
	report *QualityReport

	filePath string
	db       *ridershipdb
}

// Creates a new analysis session with the given cleaning configuration.
func New(cfg Config) *Ridership {
	return &Ridership{Config: cfg}
}

// Returns the raw concatenated trip table.
func (a *Ridership) Raw() models.RideArray { return a.raw }

// Returns the cleaned trip table. Empty until Process or FromDB has run.
func (a *Ridership) Clean() models.RideArray { return a.clean }

// Returns the quality report of the last Process run, or nil.
func (a *Ridership) Report() *QualityReport { return a.report }

// Load and concatenate monthly trip-history CSV files. Files are parsed
// concurrently; a structural failure in any file aborts the whole load.
func (a *Ridership) FromCSV(paths ...string) error {
	if len(paths) == 0 {
		return ErrNoInputFiles
	}

	log.Infof("Loading %d trip files", len(paths))

	parsed := make([]models.RideArray, len(paths))
	errChannel := make(chan error, 1)
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()

			file, err := os.Open(path)
			if err != nil {
				select {
				case errChannel <- err:
				default:
				}
				return
			}
			defer file.Close()

			rides, err := models.ParseRides(file)
			if err != nil {
				select {
				case errChannel <- fmt.Errorf("%s: %w", path, err):
				default:
				}
				return
			}
			log.Infof("Loaded %d rides from %s", len(rides), path)
			parsed[i] = rides
		}(i, path)
	}

	wg.Wait()
	close(errChannel)
	if err := <-errChannel; err != nil {
		return err
	}

	total := 0
	for _, rides := range parsed {
		total += len(rides)
	}
	all := make(models.RideArray, 0, total)
	for _, rides := range parsed {
		all = append(all, rides...)
	}

	a.raw = all
	log.Infof("Loaded %d rides in total", len(a.raw))
	return nil
}

// Load trip files matching a glob pattern, e.g. "data/2024*-tripdata.csv".
func (a *Ridership) FromDir(pattern string) error {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w: %s", ErrNoInputFiles, pattern)
	}
	return a.FromCSV(paths...)
}

// Download a zip archive of monthly trip CSV files from a hosted URL and
// load every CSV member.
func (a *Ridership) FromURL(archiveURL string) error {
	log.Infof("Downloading trip data from %s", archiveURL)

	client := resty.New()
	defer client.Close()

	resp, err := client.R().Get(archiveURL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return errors.New("failed to download trip data: " + resp.Status())
	}

	zipBytes, err := io.ReadAll(resp.Body)
	defer resp.Body.Close()
	if err != nil {
		return err
	}
	zipReader, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return err
	}

	all := make(models.RideArray, 0)
	csvMembers := 0
	for _, file := range zipReader.File {
		if !strings.HasSuffix(file.Name, ".csv") || strings.HasPrefix(filepath.Base(file.Name), ".") {
			continue
		}
		csvMembers++

		f, err := file.Open()
		if err != nil {
			return err
		}
		rides, err := models.ParseRides(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", file.Name, err)
		}
		log.Infof("Loaded %d rides from %s", len(rides), file.Name)
		all = append(all, rides...)
	}
	if csvMembers == 0 {
		return fmt.Errorf("%w: archive contains no CSV files", ErrNoInputFiles)
	}

	a.raw = all
	log.Infof("Loaded %d rides in total", len(a.raw))
	return nil
}

// Runs the cleaning pipeline over the loaded raw table and populates the
// columnar store with the survivors.
func (a *Ridership) Process() error {
	pipeline := NewPipeline(a.Config)
	clean, report := pipeline.Run(a.raw)

	db := &ridershipdb{}
	db.initialize()
	if err := db.populate(clean); err != nil {
		return err
	}
	log.Debugf("Columnar store holds %d rides", db.count())

	a.clean = clean
	a.report = report
	a.db = db
	a.Version = CurrentVersion
	a.Created = time.Now().Unix()

	return nil
}

// Load a previously saved cleaned table from a snapshot file.
func (a *Ridership) FromDB(dbFile string) error {
	log.Infof("Loading cleaned trip data from %s", dbFile)

	db := &ridershipdb{}
	version, created, err := db.load(dbFile)
	if err != nil {
		return err
	}

	clean, err := db.all()
	if err != nil {
		return err
	}

	a.db = db
	a.clean = clean
	a.filePath = dbFile
	a.Version = version
	a.Created = created

	log.Infof("Loaded %d cleaned rides", len(clean))
	return nil
}

// Saves the cleaned table to a snapshot file.
func (a *Ridership) Save(dbFile string) error {
	if a.db == nil {
		return errors.New("nothing to save: run Process first")
	}

	dirPath := filepath.Dir(dbFile)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return err
	}

	log.Infof("Saving cleaned trip data to %s", dbFile)
	a.filePath = dbFile
	return a.db.save(dbFile, a.Version, a.Created)
}

// Counts cleaned rides for a rider type straight from the columnar store.
func (a *Ridership) CountByRiderType(rider models.RiderType) (int, error) {
	if a.db == nil {
		return 0, errors.New("no cleaned data loaded")
	}
	return a.db.countByRiderType(rider)
}

// Counts cleaned rides for a usage pattern straight from the columnar store.
func (a *Ridership) CountByUsagePattern(pattern models.UsagePattern) (int, error) {
	if a.db == nil {
		return 0, errors.New("no cleaned data loaded")
	}
	return a.db.countByUsagePattern(pattern)
}
