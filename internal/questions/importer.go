package questions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/questionbank"
	"github.com/lehrizihabiba/DriveQuiz/internal/worker"
)

// Writer persists a phase's full question set.
type Writer interface {
	ReplaceQuestions(ctx context.Context, p phase.ID, qs []questionbank.Question) error
}

type ImportReport struct {
	Files  int
	Phases map[phase.ID]int
}

type parsed struct {
	sets map[phase.ID][]questionbank.Question
	err  error
}

// Importer parses question files in parallel and, once every file has
// been parsed, writes them phase by phase. Nothing is written if any
// file fails.
type Importer struct {
	w       Writer
	workers int
	logger  *slog.Logger
}

func NewImporter(w Writer, workers int, logger *slog.Logger) *Importer {
	return &Importer{w: w, workers: workers, logger: logger}
}

func (im *Importer) Import(ctx context.Context, paths []string) (ImportReport, error) {
	report := ImportReport{Files: len(paths), Phases: make(map[phase.ID]int)}
	if len(paths) == 0 {
		return report, errors.New("import: no files given")
	}

	pool := worker.NewPool[parsed](im.workers, len(paths))
	go func() {
		for _, path := range paths {
			pool.Submit(path, func() parsed { return parseFile(path) })
		}
		pool.Close()
	}()

	// Results closes only after every job settled.
	merged := make(map[phase.ID][]questionbank.Question)
	origin := make(map[phase.ID]string)
	var errs []error
	for res := range pool.Results() {
		if res.Output.err != nil {
			errs = append(errs, res.Output.err)
			continue
		}
		for p, qs := range res.Output.sets {
			if prev, dup := origin[p]; dup {
				errs = append(errs, fmt.Errorf("phase %d defined in both %s and %s", p, prev, res.JobID))
				continue
			}
			origin[p] = res.JobID
			merged[p] = qs
		}
	}
	if len(errs) > 0 {
		return report, errors.Join(errs...)
	}

	phases := make([]phase.ID, 0, len(merged))
	for p := range merged {
		phases = append(phases, p)
	}
	sort.Slice(phases, func(i, j int) bool { return phases[i] < phases[j] })

	for _, p := range phases {
		if err := im.w.ReplaceQuestions(ctx, p, merged[p]); err != nil {
			return report, fmt.Errorf("import phase %d: %w", p, err)
		}
		report.Phases[p] = len(merged[p])
		im.logger.Info("phase imported",
			slog.Int("phase", int(p)),
			slog.Int("questions", len(merged[p])),
			slog.String("file", origin[p]),
		)
	}
	return report, nil
}

func parseFile(path string) parsed {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		sets, err := ReadWorkbook(path)
		return parsed{sets: sets, err: err}
	}

	p, err := PhaseFromFilename(path)
	if err != nil {
		return parsed{err: err}
	}
	qs, err := ReadFile(path, p)
	if err != nil {
		return parsed{err: err}
	}
	return parsed{sets: map[phase.ID][]questionbank.Question{p: qs}}
}

// DiscoverFiles lists phase<N>.{json,yaml,yml,xlsx} files in dir.
func DiscoverFiles(dir string) ([]string, error) {
	var out []string
	for _, ext := range append(fileExtensions, ".xlsx") {
		matches, err := filepath.Glob(filepath.Join(dir, "phase*"+ext))
		if err != nil {
			return nil, err
		}
		out = append(out, matches...)
	}
	sort.Strings(out)
	return out, nil
}
