package scoring

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Render prints the table for terminals, with the rank as first column.
func Render(w io.Writer, t Table) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(append([]string{""}, t.Layout.Header()...))
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(false)

	for i, rec := range t.records()[1:] {
		tw.Append(append([]string{strconv.Itoa(t.Rows[i].Rank)}, rec...))
	}

	tw.Render()
}
