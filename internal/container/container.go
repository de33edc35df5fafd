package container

import (
	"context"
	"fmt"
	"log"

	"launchdash/adapters/chart"
	"launchdash/adapters/db"
	"launchdash/adapters/excel"
	"launchdash/app"
	"launchdash/domain/launch"
	"launchdash/internal/api"
	"launchdash/internal/config"
	"launchdash/internal/errors"
	"launchdash/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB     *sqlx.DB
	Source ports.LaunchSource

	// Loaded once, read-only afterwards
	Dataset *launch.Dataset

	// Services
	Transformer ports.DashboardTransformer
	Summaries   *app.SummaryService
	Renderer    *chart.Renderer
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	return &Container{
		Config:      cfg,
		Transformer: app.NewDashboardService(),
		Summaries:   app.NewSummaryService(),
	}, nil
}

// Init opens the configured launch source, loads the dataset and builds the
// renderer. Any error here is a startup failure.
func (c *Container) Init(ctx context.Context) error {
	source, err := c.openSource(ctx)
	if err != nil {
		return err
	}
	c.Source = source

	log.Printf("[Container] Loading launch records from %s", source.Describe())
	ds, err := source.Load(ctx)
	if err != nil {
		return errors.DataSourceError(source.Describe(), err)
	}
	return c.UseDataset(ds)
}

// UseDataset installs an already loaded dataset; tests and the CLI use it directly
func (c *Container) UseDataset(ds *launch.Dataset) error {
	if ds == nil || ds.Len() == 0 {
		return errors.DataSourceError("dataset", fmt.Errorf("no launch records"))
	}
	c.Dataset = ds
	c.Renderer = chart.NewRenderer(chart.RenderConfig{
		Width:  c.Config.Chart.Width,
		Height: c.Config.Chart.Height,
		Sites:  ds.Sites(),
	})

	bounds := ds.PayloadBounds()
	log.Printf("[Container] Dataset %s ready: %d records, %d sites, payload %.0f-%.0f kg (sha256 %s)",
		ds.ID().Short(), ds.Len(), len(ds.Sites()), bounds.Low, bounds.High, ds.Fingerprint().Short())
	return nil
}

// APIHandler builds the JSON/SVG API over the loaded dataset
func (c *Container) APIHandler() *api.Handler {
	return api.NewHandler(api.Deps{
		Dataset:     c.Dataset,
		Transformer: c.Transformer,
		Summaries:   c.Summaries,
		Renderer:    c.Renderer,
		SiteOptions: c.SiteOptions(),
	})
}

// SiteOptions returns the dropdown entries for the loaded dataset
func (c *Container) SiteOptions() []launch.SiteOption {
	return launch.SiteOptions(c.Dataset, c.Config.Dashboard.SiteOptions)
}

func (c *Container) openSource(ctx context.Context) (ports.LaunchSource, error) {
	if c.Config.Database.Enabled() {
		conn, err := db.Connect(ctx, c.Config.Database.Driver, c.Config.Database.URL)
		if err != nil {
			return nil, errors.DataSourceError(c.Config.Database.Driver, err)
		}
		c.DB = conn

		repo, err := db.NewLaunchRepository(conn, c.Config.Database.Table)
		if err != nil {
			return nil, errors.WithCode(errors.CodeConfigInvalid, err)
		}
		return repo, nil
	}

	excelConfig := excel.DefaultExcelConfig()
	excelConfig.FilePath = c.Config.Data.File
	excelConfig.Sheet = c.Config.Data.Sheet
	excelConfig.Columns.Site = c.Config.Data.SiteColumn
	excelConfig.Columns.Payload = c.Config.Data.PayloadColumn
	excelConfig.Columns.Outcome = c.Config.Data.OutcomeColumn
	return excel.NewFileLaunchSource(excelConfig), nil
}

// Shutdown releases the database connection, if any
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
