package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"launchdash/domain/core"
	"launchdash/domain/launch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const launchCSV = `,Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category
0,1,CCAFS LC-40,0,0.0,F9 v1.0  B0003,v1.0
1,2,CCAFS LC-40,0,0.0,F9 v1.0  B0004,v1.0
2,3,CCAFS LC-40,0,525.0,F9 v1.0  B0005,v1.0
3,7,VAFB SLC-4E,0,500.0,F9 v1.1  B1003,v1.1
4,20,KSC LC-39A,1,2490.0,F9 FT B1031.1,FT

5,40,CCAFS LC-40,1,9600.0,F9 B5 B1046.1,B5
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func configFor(path string) ExcelConfig {
	cfg := DefaultExcelConfig()
	cfg.FilePath = path
	return cfg
}

func TestFileLaunchSourceCSV(t *testing.T) {
	path := writeFile(t, "launches.csv", launchCSV)

	ds, err := NewFileLaunchSource(configFor(path)).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, ds.Len())
	assert.Equal(t, []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A"}, ds.Sites())
	assert.Equal(t, launch.PayloadRange{Low: 0, High: 9600}, ds.PayloadBounds())

	records := ds.Records()
	assert.Equal(t, launch.Record{
		Site:            "KSC LC-39A",
		PayloadKg:       2490,
		Outcome:         launch.OutcomeSuccess,
		FlightNumber:    20,
		BoosterVersion:  "F9 FT B1031.1",
		BoosterCategory: "FT",
	}, records[4])
	assert.Equal(t, "file:"+path, ds.Source())
}

func TestFileLaunchSourceXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launches.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Launch Site", "Payload Mass (kg)", "class"},
		{"CCAFS LC-40", 100, 1},
		{"KSC LC-39A", 5300, 0},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, err := NewFileLaunchSource(configFor(path)).Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, ds.Len())
	assert.Equal(t, launch.Record{Site: "KSC LC-39A", PayloadKg: 5300, Outcome: launch.OutcomeFailure}, ds.Records()[1])
}

func TestFileLaunchSourceCustomColumns(t *testing.T) {
	path := writeFile(t, "custom.csv", "site,kg,ok\nA,10,1\nB,20,0\n")

	cfg := configFor(path)
	cfg.Columns = ColumnMapping{Site: "site", Payload: "kg", Outcome: "ok"}

	ds, err := NewFileLaunchSource(cfg).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, ds.Sites())
}

func TestFileLaunchSourceErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"missing outcome column", "Launch Site,Payload Mass (kg)\nA,1\n", core.ErrMissingColumn},
		{"bad payload", "Launch Site,Payload Mass (kg),class\nA,heavy,1\n", core.ErrInvalidPayload},
		{"negative payload", "Launch Site,Payload Mass (kg),class\nA,-5,1\n", core.ErrInvalidPayload},
		{"infinite payload", "Launch Site,Payload Mass (kg),class\nA,inf,1\n", core.ErrInvalidPayload},
		{"bad outcome", "Launch Site,Payload Mass (kg),class\nA,10,2\n", core.ErrInvalidOutcome},
		{"only blank rows", "Launch Site,Payload Mass (kg),class\n,,\n", core.ErrEmptyDataset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.csv", tt.content)
			_, err := NewFileLaunchSource(configFor(path)).Load(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFileLaunchSourceMissingFile(t *testing.T) {
	_, err := NewFileLaunchSource(configFor(filepath.Join(t.TempDir(), "nope.csv"))).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestDataReaderHeaderOnly(t *testing.T) {
	path := writeFile(t, "header.csv", "Launch Site,Payload Mass (kg),class\n")
	_, err := NewDataReader(path, "").ReadData()
	require.Error(t, err)
}

func TestDataReaderStripsBOM(t *testing.T) {
	path := writeFile(t, "bom.csv", "\ufeffLaunch Site,Payload Mass (kg),class\nA,1,1\n")
	data, err := NewDataReader(path, "").ReadData()
	require.NoError(t, err)
	assert.True(t, data.HasColumn("Launch Site"))
}
