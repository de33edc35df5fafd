package excel

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"launchdash/domain/core"
	"launchdash/domain/launch"
	"launchdash/ports"
)

// FileLaunchSource loads launch records from a CSV or XLSX file
type FileLaunchSource struct {
	config ExcelConfig
}

var _ ports.LaunchSource = (*FileLaunchSource)(nil)

// NewFileLaunchSource creates a file-backed launch source
func NewFileLaunchSource(config ExcelConfig) *FileLaunchSource {
	return &FileLaunchSource{config: config}
}

// Describe implements ports.LaunchSource
func (s *FileLaunchSource) Describe() string {
	return "file:" + s.config.FilePath
}

// Load implements ports.LaunchSource
func (s *FileLaunchSource) Load(ctx context.Context) (*launch.Dataset, error) {
	data, err := NewDataReader(s.config.FilePath, s.config.Sheet).ReadData()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := ToRecords(data, s.config.Columns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.config.FilePath, err)
	}

	ds, err := launch.NewDataset(s.Describe(), records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.config.FilePath, err)
	}

	log.Printf("[FileLaunchSource] Loaded %d launch records across %d sites (dataset %s)", ds.Len(), len(ds.Sites()), ds.ID().Short())
	return ds, nil
}

// ToRecords maps spreadsheet rows to launch records. Site, payload and outcome
// columns are required; the optional columns are read when present.
func ToRecords(data *ExcelData, columns ColumnMapping) ([]launch.Record, error) {
	for _, required := range []string{columns.Site, columns.Payload, columns.Outcome} {
		if !data.HasColumn(required) {
			return nil, fmt.Errorf("%w: %q", core.ErrMissingColumn, required)
		}
	}
	if len(data.Rows) == 0 {
		return nil, core.ErrEmptyDataset
	}

	hasFlight := columns.FlightNumber != "" && data.HasColumn(columns.FlightNumber)
	hasBooster := columns.BoosterVersion != "" && data.HasColumn(columns.BoosterVersion)
	hasCategory := columns.BoosterCategory != "" && data.HasColumn(columns.BoosterCategory)

	records := make([]launch.Record, 0, len(data.Rows))
	for i, row := range data.Rows {
		line := i + 2 // header is line 1

		payload, err := strconv.ParseFloat(row[columns.Payload], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %q", line, core.ErrInvalidPayload, row[columns.Payload])
		}
		outcome, err := launch.ParseOutcome(row[columns.Outcome])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec := launch.Record{
			Site:      row[columns.Site],
			PayloadKg: payload,
			Outcome:   outcome,
		}
		if hasFlight {
			if n, err := strconv.Atoi(row[columns.FlightNumber]); err == nil {
				rec.FlightNumber = n
			}
		}
		if hasBooster {
			rec.BoosterVersion = row[columns.BoosterVersion]
		}
		if hasCategory {
			rec.BoosterCategory = row[columns.BoosterCategory]
		}
		records = append(records, rec)
	}

	return records, nil
}
