package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"launchdash/adapters/db"
	"launchdash/adapters/excel"
	"launchdash/internal/config"

	"github.com/joho/godotenv"
)

// Copies launch files into the SQL table the dashboard reads when
// DATABASE_URL is set. DB_DRIVER, DB_TABLE, DATA_SHEET and the COLUMN_*
// variables apply as for the dashboard.
func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: migrate <database_url> <launch_file_or_dir>")
	}
	_ = godotenv.Load()

	databaseURL := os.Args[1]
	sourcePath := os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	conn, err := db.Connect(ctx, cfg.Database.Driver, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	repo, err := db.NewLaunchRepository(conn, cfg.Database.Table)
	if err != nil {
		log.Fatalf("Invalid table: %v", err)
	}

	files, err := findLaunchFiles(sourcePath)
	if err != nil {
		log.Fatalf("Failed to find launch files: %v", err)
	}
	log.Printf("Found %d launch files to migrate into %s", len(files), repo.Describe())

	columns := excel.DefaultColumnMapping()
	columns.Site = cfg.Data.SiteColumn
	columns.Payload = cfg.Data.PayloadColumn
	columns.Outcome = cfg.Data.OutcomeColumn

	migrated, skipped, err := migrateFiles(ctx, repo, files, cfg.Data.Sheet, columns)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Migration complete: %d records migrated, %d files skipped", migrated, skipped)
}

// migrateFiles loads each file and inserts its records. A file that does not
// load is logged and skipped; a failed insert aborts.
func migrateFiles(ctx context.Context, repo *db.LaunchRepository, files []string, sheet string, columns excel.ColumnMapping) (int, int, error) {
	if err := repo.EnsureSchema(ctx); err != nil {
		return 0, 0, err
	}

	migrated, skipped := 0, 0
	for _, file := range files {
		source := excel.NewFileLaunchSource(excel.ExcelConfig{FilePath: file, Sheet: sheet, Columns: columns})
		ds, err := source.Load(ctx)
		if err != nil {
			log.Printf("Failed to load launches from %s: %v", file, err)
			skipped++
			continue
		}

		if err := repo.Insert(ctx, ds.Records()); err != nil {
			return migrated, skipped, fmt.Errorf("insert %s: %w", filepath.Base(file), err)
		}
		migrated += ds.Len()
		log.Printf("Migrated %d launches from %s", ds.Len(), filepath.Base(file))
	}
	return migrated, skipped, nil
}

func findLaunchFiles(path string) ([]string, error) {
	var files []string

	err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		ext := strings.ToLower(filepath.Ext(p))
		if !info.IsDir() && (ext == ".csv" || ext == ".xlsx") {
			files = append(files, p)
		}

		return nil
	})

	return files, err
}
