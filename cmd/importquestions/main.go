// Command importquestions loads phase files (JSON, YAML or XLSX) into the
// database, replacing the stored questions of every phase they contain.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/infrastructure/config"
	"github.com/lehrizihabiba/DriveQuiz/internal/questions"
	"github.com/lehrizihabiba/DriveQuiz/internal/store"
)

func main() {
	var dir string
	var workers int
	flag.StringVar(&dir, "dir", "", "directory holding phaseN.{json,yaml,yml,xlsx} files")
	flag.IntVar(&workers, "workers", 4, "files parsed in parallel")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: importquestions [-dir DIR] [-workers N] [file ...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := context.Background()

	paths := flag.Args()
	if dir != "" {
		found, err := questions.DiscoverFiles(dir)
		if err != nil {
			fmt.Printf("scan %s: %v\n", dir, err)
			os.Exit(1)
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	driver, url := config.LoadStorage()
	db, err := store.Open(ctx, store.Options{Driver: driver, DSN: url}, logger)
	if err != nil {
		fmt.Printf("open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	report, err := questions.NewImporter(db, workers, logger).Import(ctx, paths)
	if err != nil {
		fmt.Printf("import: %v\n", err)
		os.Exit(1)
	}

	phases := make([]phase.ID, 0, len(report.Phases))
	for p := range report.Phases {
		phases = append(phases, p)
	}
	sort.Slice(phases, func(i, j int) bool { return phases[i] < phases[j] })

	fmt.Printf("imported %d file(s)\n", report.Files)
	for _, p := range phases {
		fmt.Printf("  phase %d: %d question(s)\n", p, report.Phases[p])
	}
}
