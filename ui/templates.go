package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"os"

	"launchdash/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const defaultAboutFile = "templates/about.md"

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"kg":  formatKg,
		"num": formatNumber,
		"pct": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v*100)
		},
		"corr": func(r *float64) string {
			if r == nil {
				return "n/a"
			}
			return fmt.Sprintf("%+.3f", *r)
		},
	}
}

// parseTemplates parses every html template, naming each by its path under
// templates/ so fragments are addressed as "fragments/<name>.html"
func (s *Server) parseTemplates() error {
	templatesFS, err := fs.Sub(s.files, "templates")
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	root, err := fs.Glob(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to glob root templates: %w", err)
	}
	nested, err := fs.Glob(templatesFS, "*/*.html")
	if err != nil {
		return fmt.Errorf("failed to glob nested templates: %w", err)
	}
	files := append(root, nested...)
	if len(files) == 0 {
		return fmt.Errorf("no templates found")
	}

	s.templates = template.New("").Funcs(templateFuncs())
	for _, file := range files {
		content, err := fs.ReadFile(templatesFS, file)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", file, err)
		}
		if _, err := s.templates.New(file).Parse(string(content)); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", file, err)
		}
	}

	log.Printf("[TemplateInit] Parsed %d templates", len(files))
	return nil
}

// loadAbout renders the about panel from the configured markdown file, or
// from the embedded default
func (s *Server) loadAbout(cfg config.DashboardConfig) (template.HTML, error) {
	var (
		md  []byte
		err error
	)
	if cfg.AboutFile != "" {
		md, err = os.ReadFile(cfg.AboutFile)
	} else {
		md, err = fs.ReadFile(s.files, defaultAboutFile)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read about text: %w", err)
	}
	return renderMarkdown(md), nil
}

// renderMarkdown converts markdown to HTML; raw HTML in the source is dropped
func renderMarkdown(md []byte) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse(md)

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank | mdhtml.SkipHTML,
	})
	return template.HTML(markdown.Render(doc, renderer))
}

// renderTemplate executes a template into a buffer first so a failure never
// leaves a half written response
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("Template error for %s: %v", templateName, err)
		log.Printf("Template data type: %T", data)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(200)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		log.Printf("Error writing template response: %v", err)
	}
}
