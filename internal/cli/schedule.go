package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/mushaf/internal/config"
	"github.com/mrlokans/mushaf/internal/shalat"
)

const scheduleDateLayout = "2006-01-02"

// ScheduleCommand prints one day's prayer times for a city
type ScheduleCommand struct {
	CityID    string
	Date      string
	ShalatURL string
	Timeout   time.Duration

	Out io.Writer
	now func() time.Time
}

// NewScheduleCommand creates a new ScheduleCommand with defaults taken from cfg
func NewScheduleCommand(cfg *config.Config) *ScheduleCommand {
	return &ScheduleCommand{
		ShalatURL: cfg.API.ShalatURL,
		Timeout:   cfg.API.Timeout,
		Out:       os.Stdout,
		now:       time.Now,
	}
}

// ParseFlags parses command line flags
func (cmd *ScheduleCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("schedule", flag.ContinueOnError)

	fs.StringVar(&cmd.CityID, "city", shalat.PopularCities[0].ID, "City ID from the prayer schedule API")
	fs.StringVar(&cmd.Date, "date", "", "Day to show as YYYY-MM-DD (default: today)")
	fs.StringVar(&cmd.ShalatURL, "shalat-url", cmd.ShalatURL, "Base URL of the prayer schedule API")
	fs.DurationVar(&cmd.Timeout, "timeout", cmd.Timeout, "Request timeout")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s schedule [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print the prayer times of one day.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s schedule\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s schedule -city 1609 -date 2025-03-01\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the schedule command
func (cmd *ScheduleCommand) Run() error {
	day := cmd.now()
	if cmd.Date != "" {
		parsed, err := time.Parse(scheduleDateLayout, cmd.Date)
		if err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", cmd.Date)
		}
		day = parsed
	}

	ctx, cancel := context.WithTimeout(context.Background(), cmd.Timeout+time.Second)
	defer cancel()

	client := shalat.NewClient(cmd.ShalatURL, cmd.Timeout)
	schedule, err := client.GetDailySchedule(ctx, cmd.CityID, day.Year(), int(day.Month()), day.Day())
	if err != nil {
		return err
	}

	j := schedule.Jadwal
	fmt.Fprintf(cmd.Out, "%s, %s\n", schedule.Lokasi, schedule.Daerah)
	fmt.Fprintf(cmd.Out, "%s\n\n", j.Tanggal)
	for _, row := range []struct{ name, at string }{
		{"Imsak", j.Imsak},
		{"Subuh", j.Subuh},
		{"Terbit", j.Terbit},
		{"Dhuha", j.Dhuha},
		{"Dzuhur", j.Dzuhur},
		{"Ashar", j.Ashar},
		{"Maghrib", j.Maghrib},
		{"Isya", j.Isya},
	} {
		fmt.Fprintf(cmd.Out, "  %-8s %s\n", row.name, row.at)
	}
	return nil
}
