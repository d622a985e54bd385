package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/caliperhq/go-caliper/internal/application"
	"github.com/caliperhq/go-caliper/internal/domain"
)

// renderResults prints the result table followed by a status summary.
func renderResults(w io.Writer, results []application.ResultRecord) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TEST\tREQ\tCOMPONENT\tMETRIC\tSTATUS\tMEASURED\tTARGET\tUNIT\tEXPLANATION")

	counts := map[domain.Status]int{}
	for _, rec := range results {
		counts[rec.Status]++
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.TestID,
			rec.ReqID,
			rec.Component,
			rec.Metric,
			rec.Status,
			optFloat(rec.MeasuredNorm),
			optFloat(rec.Target),
			rec.Unit,
			rec.Explanation,
		)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d results: %d pass, %d fail, %d unknown\n",
		len(results),
		counts[domain.StatusPass],
		counts[domain.StatusFail],
		counts[domain.StatusUnknown])
}

func optFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
