package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	prettytable "github.com/jedib0t/go-pretty/v6/table"
)

// FileTableItem represents a file in the listing table.
type FileTableItem struct {
	Index int
	Name  string
	Size  int64
	Type  string
}

// RenderFileTable prints the pre-transfer file listing.
func RenderFileTable(items []FileTableItem) {
	if len(items) == 0 {
		fmt.Println(MutedStyle.Render("No files"))
		return
	}

	headers := []string{"#", "Name", "Size", "Type"}

	var rows [][]string
	for _, item := range items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", item.Index),
			TruncateString(item.Name, 50),
			FormatBytes(item.Size),
			TruncateString(item.Type, 20),
		})
	}

	tbl := lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Primary)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == lgtable.HeaderRow:
				return TableHeaderStyle
			case row%2 == 0:
				return TableRowStyle
			default:
				return TableRowAltStyle
			}
		})

	fmt.Println(tbl.Render())
}

// TransferSummary is the post-transfer stats block.
type TransferSummary struct {
	Status    string
	Files     int
	TotalSize string
	Duration  string
	Speed     string
}

// RenderTransferSummary prints the summary as a go-pretty table.
func RenderTransferSummary(summary TransferSummary) {
	t := prettytable.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Transfer Summary")
	t.AppendRows([]prettytable.Row{
		{"Status", summary.Status},
		{"Files", summary.Files},
		{"Total Size", summary.TotalSize},
		{"Duration", summary.Duration},
		{"Avg Speed", summary.Speed},
	})
	t.SetStyle(prettytable.StyleRounded)
	t.Render()
}
