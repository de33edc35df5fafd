package excel

// ColumnMapping names the spreadsheet columns holding launch record fields
type ColumnMapping struct {
	Site            string `json:"site"`
	Payload         string `json:"payload"`
	Outcome         string `json:"outcome"`
	FlightNumber    string `json:"flight_number"`
	BoosterVersion  string `json:"booster_version"`
	BoosterCategory string `json:"booster_category"`
}

// ExcelConfig holds configuration for the file data source
type ExcelConfig struct {
	FilePath string        `json:"file_path"`
	Sheet    string        `json:"sheet"`
	Columns  ColumnMapping `json:"columns"`
}

// DefaultColumnMapping returns the column names of the SpaceX launch export
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		Site:            "Launch Site",
		Payload:         "Payload Mass (kg)",
		Outcome:         "class",
		FlightNumber:    "Flight Number",
		BoosterVersion:  "Booster Version",
		BoosterCategory: "Booster Version Category",
	}
}

// DefaultExcelConfig returns sensible defaults for file loading
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		FilePath: "spacex_launch_dash.csv",
		Sheet:    "Sheet1",
		Columns:  DefaultColumnMapping(),
	}
}
