package scoring

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/screener/internal/models"
)

// LabelColumn is the header of the target column in training data.
const LabelColumn = "label"

// ErrUnsupportedDataset is returned for training files that are neither CSV nor XLSX.
var ErrUnsupportedDataset = errors.New("unsupported training data format")

// Sample is one labeled training row. Label is 1 for a good fit, 0 otherwise.
type Sample struct {
	Features models.Features
	Label    int
}

// LoadTrainingData reads labeled samples from a .csv or .xlsx file. The first row is a header
// that must contain the similarity, skill_count, experience_years and label columns in any order.
func LoadTrainingData(path string) ([]Sample, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDataset, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	return parseRows(rows)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func parseRows(rows [][]string) ([]Sample, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("training data is empty")
	}
	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	cols := make([]int, 0, len(FeatureNames)+1)
	for _, name := range append(append([]string{}, FeatureNames...), LabelColumn) {
		idx, ok := header[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		cols = append(cols, idx)
	}

	samples := make([]Sample, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		vals := make([]float64, len(cols))
		for i, c := range cols {
			if c >= len(row) {
				return nil, fmt.Errorf("row %d: missing value for %q", n+2, rows[0][c])
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[c]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: parse %q: %w", n+2, rows[0][c], err)
			}
			vals[i] = v
		}
		label := 0
		if vals[3] != 0 {
			label = 1
		}
		samples = append(samples, Sample{
			Features: models.Features{
				Similarity:      vals[0],
				SkillCount:      int(math.Round(vals[1])),
				ExperienceYears: vals[2],
			},
			Label: label,
		})
	}
	return samples, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
