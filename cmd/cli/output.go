package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type outputFormat string

const (
	formatTable    outputFormat = "table"
	formatMarkdown outputFormat = "markdown"
	formatJSON     outputFormat = "json"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(s); f {
	case formatTable, formatMarkdown, formatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (use table, markdown or json)", s)
	}
}

// tableOutput renders rows as a terminal or markdown table
type tableOutput struct {
	writer table.Writer
	format outputFormat
}

func newTable(format outputFormat, header ...interface{}) *tableOutput {
	w := table.NewWriter()
	if format == formatTable {
		w.SetStyle(table.StyleLight)
	}
	w.AppendHeader(table.Row(header))
	return &tableOutput{writer: w, format: format}
}

func (t *tableOutput) Row(vals ...interface{}) {
	t.writer.AppendRow(table.Row(vals))
}

func (t *tableOutput) Footer(vals ...interface{}) {
	t.writer.AppendFooter(table.Row(vals))
}

// AlignRight right-aligns the given 1-based columns
func (t *tableOutput) AlignRight(columns ...int) {
	cfgs := make([]table.ColumnConfig, len(columns))
	for i, n := range columns {
		cfgs[i] = table.ColumnConfig{Number: n, Align: text.AlignRight}
	}
	t.writer.SetColumnConfigs(cfgs)
}

func (t *tableOutput) WriteTo(w io.Writer) error {
	out := t.writer.Render()
	if t.format == formatMarkdown {
		out = t.writer.RenderMarkdown()
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
