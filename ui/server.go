package ui

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"launchdash/adapters/chart"
	"launchdash/domain/launch"
	"launchdash/internal/api"
	"launchdash/internal/config"
	"launchdash/internal/container"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Server is the dashboard web server
type Server struct {
	router    *gin.Engine
	files     fs.FS
	templates *template.Template
	about     template.HTML

	app *container.Container
	api *api.Handler
}

// NewServer creates a new web server instance over the given assets
func NewServer(files fs.FS) *Server {
	return &Server{
		router: gin.Default(),
		files:  files,
	}
}

// Initialize wires the server to a loaded container, parses templates and
// registers routes. Both default figures are rendered once so a broken
// renderer fails startup instead of the first request.
func (s *Server) Initialize(ctx context.Context, c *container.Container) error {
	if c == nil || c.Dataset == nil {
		return fmt.Errorf("container has no dataset loaded")
	}
	s.app = c
	s.api = c.APIHandler()

	if err := s.parseTemplates(); err != nil {
		return err
	}

	about, err := s.loadAbout(c.Config.Dashboard)
	if err != nil {
		return err
	}
	s.about = about

	if err := s.prerender(ctx); err != nil {
		return err
	}

	s.setupMiddleware()
	s.setupRoutes()
	return nil
}

func (s *Server) prerender(ctx context.Context) error {
	sel := launch.DefaultSelection(s.app.Dataset)
	start := time.Now()

	g, _ := errgroup.WithContext(ctx)
	var outcomes, correlation *chart.Figure
	g.Go(func() error {
		var err error
		outcomes, err = s.app.Renderer.RenderOutcomes(s.app.Transformer.ComputeOutcomeAggregation(s.app.Dataset, sel))
		return err
	})
	g.Go(func() error {
		var err error
		sub := s.app.Transformer.ComputeCorrelationSubset(s.app.Dataset, sel)
		correlation, err = s.app.Renderer.RenderCorrelation(sub, s.app.Dataset.PayloadBounds())
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to render default figures: %w", err)
	}

	log.Printf("[Server] Default figures rendered in %v (outcomes %d bytes, correlation %d bytes)",
		time.Since(start), len(outcomes.Body), len(correlation.Body))
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/health", s.handleHealth)

	// HTMX fragments, re-rendered when a control changes
	s.router.GET("/fragments/outcomes", s.handleOutcomesFragment)
	s.router.GET("/fragments/correlation", s.handleCorrelationFragment)

	// JSON and SVG API served by the chi router
	s.router.Any(api.Prefix+"/*path", gin.WrapH(api.NewRouter(s.api, false)))
}

// Handler exposes the router for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("[Server] Starting launch dashboard on http://%s", addr)
	return s.router.Run(addr)
}

func (s *Server) dashboard() config.DashboardConfig {
	return s.app.Config.Dashboard
}
