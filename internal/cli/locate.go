package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/mushaf/internal/config"
	"github.com/mrlokans/mushaf/internal/geolocation"
	"github.com/mrlokans/mushaf/internal/shalat"
)

// LocateCommand finds the prayer schedule city nearest to a coordinate
type LocateCommand struct {
	Latitude        float64
	Longitude       float64
	ShalatURL       string
	Timeout         time.Duration
	CoordinatesPath string
	Offline         bool

	Out io.Writer
}

// NewLocateCommand creates a new LocateCommand with defaults taken from cfg
func NewLocateCommand(cfg *config.Config) *LocateCommand {
	return &LocateCommand{
		ShalatURL:       cfg.API.ShalatURL,
		Timeout:         cfg.API.Timeout,
		CoordinatesPath: cfg.Location.CityCoordinatesPath,
		Out:             os.Stdout,
	}
}

// ParseFlags parses command line flags
func (cmd *LocateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("locate", flag.ContinueOnError)

	fs.Float64Var(&cmd.Latitude, "lat", 0, "Latitude in decimal degrees")
	fs.Float64Var(&cmd.Longitude, "lon", 0, "Longitude in decimal degrees")
	fs.StringVar(&cmd.ShalatURL, "shalat-url", cmd.ShalatURL, "Base URL of the prayer schedule API")
	fs.DurationVar(&cmd.Timeout, "timeout", cmd.Timeout, "Timeout for fetching the city list")
	fs.StringVar(&cmd.CoordinatesPath, "coordinates", cmd.CoordinatesPath, "YAML file with city coordinates (bundled table when empty)")
	fs.BoolVar(&cmd.Offline, "offline", false, "Match against the popular cities without fetching the city list")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s locate -lat <latitude> -lon <longitude> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Find the prayer schedule city nearest to a coordinate.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s locate -lat -6.2 -lon 106.8\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s locate -lat -7.8 -lon 110.4 -offline\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	latSet, lonSet := false, false
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lat":
			latSet = true
		case "lon":
			lonSet = true
		}
	})
	if !latSet || !lonSet {
		return fmt.Errorf("both -lat and -lon are required")
	}

	return nil
}

// Run executes the locate command
func (cmd *LocateCommand) Run() error {
	user := geolocation.Coordinate{Latitude: cmd.Latitude, Longitude: cmd.Longitude}
	if !user.Valid() {
		return fmt.Errorf("coordinate %.4f,%.4f is out of range", cmd.Latitude, cmd.Longitude)
	}

	table := geolocation.DefaultReferenceTable()
	if cmd.CoordinatesPath != "" {
		var err error
		table, err = geolocation.LoadReferenceTableFile(cmd.CoordinatesPath)
		if err != nil {
			return fmt.Errorf("failed to load city coordinates: %w", err)
		}
	}

	cities := shalat.PopularCities
	if !cmd.Offline {
		ctx, cancel := context.WithTimeout(context.Background(), cmd.Timeout+time.Second)
		defer cancel()

		directory := shalat.NewDirectory(shalat.NewClient(cmd.ShalatURL, cmd.Timeout))
		fetched, err := directory.Cities(ctx)
		if err != nil {
			return fmt.Errorf("failed to load city list: %w", err)
		}
		cities = fetched
	}

	match, ok := geolocation.Nearest(user, table, cities)
	if !ok {
		return fmt.Errorf("no known city has reference coordinates")
	}

	fmt.Fprintf(cmd.Out, "%s (%s)\n", match.City.Lokasi, match.City.ID)
	fmt.Fprintf(cmd.Out, "Distance: %.0f km\n", match.DistanceKm)
	return nil
}
