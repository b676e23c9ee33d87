package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"

	ridership "github.com/aaroncutress/ridership-go"
)

func main() {
	input := flag.String("input", "", "glob pattern for monthly trip CSV files")
	url := flag.String("url", "", "URL of a zip archive of monthly trip CSV files")
	dbFile := flag.String("db", "", "snapshot file to load from or save to")
	configPath := flag.String("config", "", "YAML configuration file")
	outDir := flag.String("out", "report", "output directory for the report")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg := ridership.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = ridership.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}

	a := ridership.New(cfg)

	switch {
	case *input != "":
		if err := a.FromDir(*input); err != nil {
			log.Fatalf("Failed to load trip files: %v", err)
		}
	case *url != "":
		if err := a.FromURL(*url); err != nil {
			log.Fatalf("Failed to download trip data: %v", err)
		}
	case *dbFile != "":
		if err := a.FromDB(*dbFile); err != nil {
			log.Fatalf("Failed to load snapshot: %v", err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	// A snapshot already holds cleaned data; raw input still needs the
	// cleaning pipeline.
	if len(a.Raw()) > 0 || a.Clean() == nil {
		if err := a.Process(); err != nil {
			log.Fatalf("Failed to process trip data: %v", err)
		}
		if *dbFile != "" {
			if err := a.Save(*dbFile); err != nil {
				log.Fatalf("Failed to save snapshot: %v", err)
			}
		}
	}

	if err := a.WriteReport(*outDir); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
}
