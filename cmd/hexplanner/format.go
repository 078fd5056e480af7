package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/coverage"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/plan"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/render"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/validation"
)

func printValidationReport(w io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printFinding(w, e)
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "WARNINGS (%d):\n", len(r.Warnings))
		for _, warn := range r.Warnings {
			printFinding(w, warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(w, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(w, "  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Fprintln(w)
	}

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printFinding(w io.Writer, f validation.Result) {
	fmt.Fprintf(w, "  [%s] %s\n", f.Level, f.Message)
	if f.SpecPath != "" && f.ActualValue != nil {
		fmt.Fprintf(w, "    -> %s = %v\n", f.SpecPath, f.ActualValue)
	}
	if f.Expected != "" {
		fmt.Fprintf(w, "    expected: %s\n", f.Expected)
	}
	for _, s := range f.Suggestions {
		fmt.Fprintf(w, "    * %s\n", s)
	}
}

func printMetrics(w io.Writer, res *plan.Result) {
	m := res.Metrics
	fmt.Fprintln(w, render.Title(res))
	fmt.Fprintln(w, render.Subtitle(res))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Simulation Results")
	fmt.Fprintln(w, "==================")
	fmt.Fprintf(w, "  Total Cell Count:                %s\n", humanize.Comma(int64(m.TotalCells)))
	fmt.Fprintf(w, "  Target Service Area:             %s sq units\n", formatArea(m.ServiceArea))
	fmt.Fprintf(w, "  Coverage Ratio:                  %.2f %%\n", m.CoverageRatio*100)
	fmt.Fprintf(w, "  Theoretical Single Hex Area:     %s sq units\n", formatArea(m.SingleHexArea))
	fmt.Fprintf(w, "  Covered Area (Strictly Inside):  %s sq units\n", formatArea(m.CoveredAreaInside))
	fmt.Fprintf(w, "  Overprovision:                   %.2fx\n", m.Overprovision())
}

func printCellTable(w io.Writer, b coverage.Breakdown) {
	fmt.Fprintf(w, "Cells: %s interior, %s partial, %s touching\n",
		humanize.Comma(int64(b.Interior)), humanize.Comma(int64(b.Partial)), humanize.Comma(int64(b.TouchingOnly)))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Row\tCol\tInside Area\tFraction\tPlacement\t")
	for _, c := range b.Cells {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%.3f\t%s\t\n",
			c.Index.Row, c.Index.Col, formatArea(c.InsideArea), c.Fraction, c.Placement)
	}
	tw.Flush()
}

func printSweep(w io.Writer, name string, rows []sweepRow) {
	if name != "" {
		fmt.Fprintf(w, "Radius sweep: %s\n\n", name)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Radius\tCells\tCovered Area\tCoverage\tOverprovision\t")
	for _, row := range rows {
		if row.Err != nil {
			fmt.Fprintf(tw, "%v\t-\t-\t-\t-\t  %v\n", row.Radius, row.Err)
			continue
		}
		m := row.Metrics
		fmt.Fprintf(tw, "%v\t%s\t%s\t%.2f%%\t%.2fx\t\n",
			row.Radius, humanize.Comma(int64(m.TotalCells)), formatArea(m.CoveredAreaInside),
			m.CoverageRatio*100, m.Overprovision())
	}
	tw.Flush()
}

func formatArea(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}
