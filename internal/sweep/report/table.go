package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	title := "Sweep Batch"
	if r.Batch.DryRun {
		title += " (dry run)"
	}
	fmt.Fprintf(tw, "\n=== %s: %s ===\n\n", title, r.Batch.Name)

	writeRows(tw, []string{"Metric", "Value"}, [][]string{
		{"Estimated", fmt.Sprintf("%d", r.Counts.Estimated)},
		{"Enumerated", fmtCount(r.Counts.Enumerated, r.Batch.DryRun)},
		{"Skipped", fmtCount(r.Counts.Skipped, r.Batch.DryRun)},
		{"Written", fmtCount(r.Counts.Written, r.Batch.DryRun)},
		{"Reference classes", fmt.Sprintf("%d", r.Counts.ReferenceClasses)},
		{"Reference rows skipped", fmt.Sprintf("%d", r.Counts.ReferenceSkipped)},
		{"Duration", fmtDuration(r.Outputs.Duration)},
	})

	if !r.Batch.DryRun {
		writeRows(tw, []string{"Output", "Path"}, [][]string{
			{"Result", r.Batch.ResultDir},
			{"Manifest", r.Outputs.Manifest},
			{"Launch", r.Outputs.Launch},
		})
	}

	tw.Flush()
}

func writeRows(tw *tabwriter.Writer, header []string, rows [][]string) {
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	fmt.Fprintln(tw)
}

func fmtCount(n int, dryRun bool) string {
	if dryRun {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}

func fmtDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%.1fµs", float64(d.Microseconds()))
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
