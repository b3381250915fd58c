package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/mushaf/internal/bookmarks"
	"github.com/mrlokans/mushaf/internal/config"
	"github.com/mrlokans/mushaf/internal/entrypoint"
	"github.com/mrlokans/mushaf/internal/history"
)

// BookmarksCommand prints the persisted bookmarks and reading history
type BookmarksCommand struct {
	cfg         *config.Config
	Backend     string
	Surah       int
	WithHistory bool

	Out io.Writer
}

// NewBookmarksCommand creates a new BookmarksCommand reading from the store
// configured in cfg
func NewBookmarksCommand(cfg *config.Config) *BookmarksCommand {
	return &BookmarksCommand{
		cfg:     cfg,
		Backend: string(cfg.Storage.Backend),
		Out:     os.Stdout,
	}
}

// ParseFlags parses command line flags
func (cmd *BookmarksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("bookmarks", flag.ContinueOnError)

	fs.StringVar(&cmd.cfg.Database.Path, "db", cmd.cfg.Database.Path, "Path to the database file (sqlite backend)")
	fs.StringVar(&cmd.Backend, "backend", cmd.Backend, "Storage backend: sqlite, redis or memory")
	fs.IntVar(&cmd.Surah, "surah", 0, "Only show bookmarks in this surah")
	fs.BoolVar(&cmd.WithHistory, "history", false, "Also print the reading history")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s bookmarks [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print saved bookmarks, newest first.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s bookmarks\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s bookmarks -surah 2 -history\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the bookmarks command
func (cmd *BookmarksCommand) Run() error {
	cmd.cfg.Storage.Backend = config.StorageBackend(cmd.Backend)

	storage, err := entrypoint.OpenStorage(cmd.cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer storage.Close()

	registry := bookmarks.NewRegistry(storage.Store)
	marks := registry.List()
	if cmd.Surah > 0 {
		marks = registry.ForSurah(cmd.Surah)
	}

	if len(marks) == 0 {
		fmt.Fprintln(cmd.Out, "No bookmarks")
	} else {
		fmt.Fprintf(cmd.Out, "Bookmarks (%d):\n", len(marks))
		for _, b := range marks {
			fmt.Fprintf(cmd.Out, "  %d:%d  %s  %s\n", b.SurahNumber, b.AyatNumber, b.SurahName, formatMillis(b.Timestamp))
		}
	}

	if !cmd.WithHistory {
		return nil
	}

	items := history.NewLog(storage.Store).List()
	if len(items) == 0 {
		fmt.Fprintln(cmd.Out, "\nNo reading history")
		return nil
	}
	fmt.Fprintf(cmd.Out, "\nRecently read (%d):\n", len(items))
	for _, item := range items {
		position := fmt.Sprintf("%d", item.SurahNumber)
		if item.AyatNumber != nil {
			position = fmt.Sprintf("%d:%d", item.SurahNumber, *item.AyatNumber)
		}
		fmt.Fprintf(cmd.Out, "  %-7s %s  %s\n", position, item.SurahName, formatMillis(item.Timestamp))
	}
	return nil
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}
