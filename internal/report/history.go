package report

import (
	"fmt"
	"io"

	"github.com/avolkov/keyprof/internal/store"
)

// RenderHistory prints archived analysis runs as a table plus a WPM
// trend sparkline across the listed runs.
func RenderHistory(w io.Writer, runs []store.Run) error {
	p := &printer{w: w, width: terminalWidth()}

	if len(runs) == 0 {
		p.line("No archived runs. Use 'keyprof archive' to store one.")
		return p.err
	}

	p.section("ANALYSIS HISTORY")
	rows := make([][]string, 0, len(runs))
	wpms := make([]float64, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", run.ID),
			run.CreatedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", run.PressEvents),
			fmt.Sprintf("%d", run.SessionCount),
			fmt.Sprintf("%.1f%%", run.ErrorRate*100),
			fmt.Sprintf("%.1f", run.AverageWPM),
		})
		wpms = append(wpms, run.AverageWPM)
	}
	p.table(
		[]string{"ID", "Date", "Presses", "Sessions", "Err", "WPM"},
		rows,
		map[int]bool{2: true, 3: true, 4: true, 5: true},
	)

	if len(wpms) >= 2 {
		p.linef("WPM trend: %s", Sparkline(wpms))
		p.line("")
	}
	return p.err
}
