package questions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/questionbank"
)

var fileExtensions = []string{".json", ".yaml", ".yml"}

// FileSource reads phase<N>.json, phase<N>.yaml or phase<N>.yml from
// Dir. A phase without a file is empty.
type FileSource struct {
	Dir string
}

func (s FileSource) LoadQuestions(ctx context.Context, p phase.ID) ([]questionbank.Question, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	for _, ext := range fileExtensions {
		path := filepath.Join(s.Dir, fmt.Sprintf("phase%d%s", p, ext))
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return ReadFile(path, p)
	}
	return nil, nil
}

// ReadFile parses a JSON or YAML question list for phase p.
func ReadFile(path string, p phase.ID) ([]questionbank.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var records []Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &records)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	default:
		return nil, fmt.Errorf("%s: unsupported question file type", path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return Build(p, filepath.Base(path), records)
}

// PhaseFromFilename extracts N from names like "phase3.json" or
// "phase3.xlsx".
func PhaseFromFilename(path string) (phase.ID, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if !strings.HasPrefix(base, "phase") {
		return 0, fmt.Errorf("%s: file name must look like phase<N>", path)
	}
	return phase.Parse(strings.TrimPrefix(base, "phase"))
}
