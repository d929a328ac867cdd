package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one table column. Numeric columns align right.
type column struct {
	title   string
	numeric bool
}

var (
	runColumns = []column{
		{title: "Run"},
		{title: "Started"},
		{title: "Folder"},
		{title: "Converted", numeric: true},
		{title: "Skipped", numeric: true},
		{title: "Failed", numeric: true},
		{title: "Status"},
	}
	fileColumns = []column{
		{title: "#", numeric: true},
		{title: "File"},
		{title: "Outcome"},
		{title: "Time", numeric: true},
		{title: "Detail"},
	}
)

// renderTable draws rows under cols. Each row carries one cell per column.
func renderTable(cols []column, rows [][]string) string {
	style := table.StyleRounded
	// Titles are printed as written; the default style upper-cases them.
	style.Format.Header = text.FormatDefault
	tw := table.NewWriter()
	tw.SetStyle(style)

	header := make(table.Row, len(cols))
	configs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		header[i] = c.title
		align := text.AlignLeft
		if c.numeric {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, cells := range rows {
		row := make(table.Row, len(cells))
		for i, cell := range cells {
			row[i] = cell
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}
