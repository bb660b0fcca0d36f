package bench

import (
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Render writes results as a table.
func Render(w io.Writer, results []Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Workload", "Dir", "Worker", "Avg/batch", "Avg/op", "Ops", "Iterations", "Resets"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, r := range results {
		perOp := time.Duration(0)
		if r.Ops > 0 {
			perOp = r.Average / time.Duration(r.Ops)
		}
		table.Append([]string{
			r.Name,
			r.Direction,
			strconv.Itoa(r.Worker),
			r.Average.String(),
			perOp.String(),
			strconv.Itoa(r.Ops),
			strconv.Itoa(r.Iterations),
			strconv.FormatUint(r.Stats.Resets, 10),
		})
	}
	table.Render()
}
