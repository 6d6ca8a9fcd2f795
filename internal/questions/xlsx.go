package questions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/questionbank"
)

// Workbook column layout, one question per row after the header:
//
//	A id | B question | C-F choices | G correct answer | H image
const (
	colID = iota
	colQuestion
	colChoiceA
	colChoiceB
	colChoiceC
	colChoiceD
	colCorrect
	colImage
)

// ReadWorkbook reads every sheet named phase<N> in an XLSX file.
// Sheets with other names are ignored.
func ReadWorkbook(path string) (map[phase.ID][]questionbank.Question, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	out := make(map[phase.ID][]questionbank.Question)
	for _, sheet := range f.GetSheetList() {
		p, err := PhaseFromFilename(sheet)
		if err != nil {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("%s: sheet %s: %w", path, sheet, err)
		}
		records, err := rowsToRecords(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: sheet %s: %w", path, sheet, err)
		}
		qs, err := Build(p, path+"#"+sheet, records)
		if err != nil {
			return nil, err
		}
		out[p] = qs
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: no phase<N> sheets found", path)
	}
	return out, nil
}

func rowsToRecords(rows [][]string) ([]Record, error) {
	var records []Record
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if isBlank(row) {
			continue
		}

		cell := func(c int) string {
			if c < len(row) {
				return strings.TrimSpace(row[c])
			}
			return ""
		}

		var id int64
		if v := cell(colID); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad id %q", i+1, v)
			}
			id = n
		}

		var choices []string
		for c := colChoiceA; c <= colChoiceD; c++ {
			if v := cell(c); v != "" {
				choices = append(choices, v)
			}
		}

		records = append(records, Record{
			ID:            id,
			Question:      cell(colQuestion),
			Choices:       choices,
			CorrectAnswer: cell(colCorrect),
			Image:         cell(colImage),
		})
	}
	return records, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
