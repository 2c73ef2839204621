package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/commuteflow/types"
)

// Column names of the commuter survey CSV. The header is matched
// case-insensitively; order does not matter.
const (
	colCommuterID = "CommuterID"
	colUsualMode  = "UsualCommuteMode"
)

// scoreColumns maps each score column to a setter on the record, so row
// parsing and header validation share one source of truth.
var scoreColumns = []struct {
	name string
	set  func(*types.CommuterRecord, int)
}{
	{"Attitude_Car_Score", func(r *types.CommuterRecord, v int) { r.AttitudeCar = v }},
	{"Attitude_PT_Score", func(r *types.CommuterRecord, v int) { r.AttitudePT = v }},
	{"Attitude_WalkCycle_Score", func(r *types.CommuterRecord, v int) { r.AttitudeWalkCycle = v }},
	{"SN_Car_Score", func(r *types.CommuterRecord, v int) { r.SNCar = v }},
	{"SN_PT_Score", func(r *types.CommuterRecord, v int) { r.SNPT = v }},
	{"SN_WalkCycle_Score", func(r *types.CommuterRecord, v int) { r.SNWalkCycle = v }},
	{"PBC_Car_Score", func(r *types.CommuterRecord, v int) { r.PBCCar = v }},
	{"PBC_PT_Score", func(r *types.CommuterRecord, v int) { r.PBCPT = v }},
	{"PBC_WalkCycle_Score", func(r *types.CommuterRecord, v int) { r.PBCWalkCycle = v }},
	{"Intention_Car_Score", func(r *types.CommuterRecord, v int) { r.IntentionCar = v }},
	{"Intention_PT_Score", func(r *types.CommuterRecord, v int) { r.IntentionPT = v }},
	{"Intention_WalkCycle_Score", func(r *types.CommuterRecord, v int) { r.IntentionWalkCycle = v }},
}

// CSVLoaderConfig configures the CSV loader.
type CSVLoaderConfig struct {
	// Delimiter is the field separator. Defaults to ','.
	Delimiter rune
}

// CSVLoader reads commuter records from a survey CSV. The first row is
// treated as a header.
type CSVLoader struct {
	config CSVLoaderConfig
	logger *zap.Logger
}

// NewCSVLoader creates a CSVLoader with the given config.
func NewCSVLoader(config CSVLoaderConfig, logger *zap.Logger) *CSVLoader {
	if config.Delimiter == 0 {
		config.Delimiter = ','
	}
	return &CSVLoader{
		config: config,
		logger: logger.With(zap.String("component", "csv_loader")),
	}
}

// Load reads a CSV file and returns commuter records. A missing or empty
// file is not an error: the caller gets an empty slice and a logged
// warning, and the service starts with an empty dataset.
func (l *CSVLoader) Load(ctx context.Context, source string) ([]types.CommuterRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("dataset file not found, starting with empty dataset",
				zap.String("path", source))
			return []types.CommuterRecord{}, nil
		}
		return nil, types.NewError(types.ErrDatasetInvalid,
			fmt.Sprintf("opening %s: %v", source, err)).WithCause(err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = l.config.Delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, types.NewError(types.ErrDatasetInvalid,
			fmt.Sprintf("parsing %s: %v", source, err)).WithCause(err)
	}

	if len(rows) < 2 {
		l.logger.Warn("dataset has no data rows", zap.String("path", source))
		return []types.CommuterRecord{}, nil
	}

	idx, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]types.CommuterRecord, 0, len(rows)-1)
	skipped := 0
	for i, row := range rows[1:] {
		rec, err := parseRow(row, idx)
		if err != nil {
			// Header is row 1, so data row i is file row i+2.
			l.logger.Warn("skipping malformed dataset row",
				zap.String("path", source),
				zap.Int("row", i+2),
				zap.Error(err))
			skipped++
			continue
		}
		records = append(records, rec)
	}

	l.logger.Info("dataset loaded",
		zap.String("path", source),
		zap.Int("records", len(records)),
		zap.Int("skipped", skipped))

	return records, nil
}

// SupportedTypes returns the extensions handled by CSVLoader.
func (l *CSVLoader) SupportedTypes() []string {
	return []string{".csv"}
}

// columnIndex maps required column names to their position in the header.
type columnIndex map[string]int

func resolveColumns(header []string) (columnIndex, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.ToLower(strings.TrimSpace(h))] = i
	}

	required := []string{colCommuterID, colUsualMode}
	for _, sc := range scoreColumns {
		required = append(required, sc.name)
	}

	idx := make(columnIndex, len(required))
	for _, name := range required {
		pos, ok := byName[strings.ToLower(name)]
		if !ok {
			return nil, types.NewError(types.ErrDatasetInvalid,
				fmt.Sprintf("dataset header is missing column %s", name))
		}
		idx[name] = pos
	}
	return idx, nil
}

func parseRow(row []string, idx columnIndex) (types.CommuterRecord, error) {
	var rec types.CommuterRecord

	field := func(name string) (string, error) {
		pos := idx[name]
		if pos >= len(row) {
			return "", fmt.Errorf("row too short for column %s", name)
		}
		return strings.TrimSpace(row[pos]), nil
	}

	id, err := field(colCommuterID)
	if err != nil {
		return rec, err
	}
	if id == "" {
		return rec, fmt.Errorf("empty %s", colCommuterID)
	}
	rec.CommuterID = id

	mode, err := field(colUsualMode)
	if err != nil {
		return rec, err
	}
	rec.UsualMode = types.Mode(mode)

	for _, sc := range scoreColumns {
		raw, err := field(sc.name)
		if err != nil {
			return rec, err
		}
		if raw == "" {
			// Absent score: leave the zero value, validation at the point
			// of use reports it as a missing field.
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return rec, fmt.Errorf("column %s: %q is not an integer", sc.name, raw)
		}
		sc.set(&rec, v)
	}

	return rec, nil
}
