package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/formlift-io/iform/internal/export"
)

// addOutputFlags attaches the shared output flags to list-style commands.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "table", "Output format: table, csv, json or yaml")
	cmd.Flags().String("file", "", "Write output to a file instead of stdout")
}

// writeTable renders a table to the terminal or serializes it to the
// requested format/file.
func writeTable(cmd *cobra.Command, table *export.Table) error {

	format, _ := cmd.Flags().GetString("output")
	file, _ := cmd.Flags().GetString("file")

	out := os.Stdout
	if len(file) > 0 {
		f, err := os.Create(file)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f

		// File output defaults to csv when no explicit format was given
		if format == "table" {
			format = "csv"
		}
	}

	if format == "table" {
		renderTable(table)
		return nil
	}

	return table.Write(out, format)
}

// renderTable prints a fixed-width styled table to stdout.
func renderTable(table *export.Table) {

	if len(table.Rows) == 0 {
		fmt.Println(infoStyle.Render("No rows found"))
		return
	}

	widths := make([]int, len(table.Columns))
	for i, column := range table.Columns {
		widths[i] = len(column)
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var header strings.Builder
	for i, column := range table.Columns {
		header.WriteString(columnStyle.Render(pad(column, widths[i])))
		header.WriteString("  ")
	}
	fmt.Println(header.String())

	for _, row := range table.Rows {
		var line strings.Builder
		for i, cell := range row {
			line.WriteString(cellStyle.Render(pad(cell, widths[i])))
			line.WriteString("  ")
		}
		fmt.Println(line.String())
	}

	fmt.Println()
	fmt.Println(infoStyle.Render(fmt.Sprintf("%d rows", len(table.Rows))))
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
