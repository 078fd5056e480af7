package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/LeulDagnachew-hub/Hex-sim/internal/logging"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/coverage"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/plan"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/project"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/render"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/spec"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/validation"
)

// loadSpec loads the project spec and applies the configured candidate limit
// when the plan file sets none.
func (a *app) loadSpec(projectPath string) (*spec.PlanSpec, error) {
	s, err := spec.LoadProject(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading spec: %w", err)
	}
	if s.Cell.MaxCandidates == 0 {
		s.Cell.MaxCandidates = a.v.GetInt64("max-candidates")
	}
	return s, nil
}

func (a *app) runValidate(ctx context.Context, projectPath string) error {
	s, err := a.loadSpec(projectPath)
	if err != nil {
		return err
	}
	_, report, err := project.Check(s)
	if report != nil {
		printValidationReport(a.out, report)
	}
	return err
}

// planProject loads projectPath and plans it, overriding the plan file radius when
// radius is non-zero.
func (a *app) planProject(ctx context.Context, projectPath string, radius float64) (*plan.Result, *validation.Report, error) {
	s, err := a.loadSpec(projectPath)
	if err != nil {
		return nil, nil, err
	}
	if radius != 0 {
		s = project.WithRadius(s, radius)
	}

	start := time.Now()
	res, report, err := project.Plan(s)
	if err != nil {
		if report != nil && !report.Valid {
			printValidationReport(a.out, report)
		}
		return nil, report, err
	}
	a.log.Debug(ctx, "plan computed",
		logging.String("project", projectPath),
		logging.Float64("radius", res.Radius),
		logging.Int("cells", res.Metrics.TotalCells),
		logging.Any("elapsed", time.Since(start).String()))
	return res, report, nil
}

func (a *app) runPlan(ctx context.Context, projectPath string, radius float64, asJSON, details bool) error {
	res, report, err := a.planProject(ctx, projectPath, radius)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"result":     res,
			"validation": report,
		})
	}

	printMetrics(a.out, res)
	if details {
		fmt.Fprintln(a.out)
		printCellTable(a.out, res.Breakdown())
	}
	if len(report.Warnings) > 0 {
		fmt.Fprintln(a.out)
		printValidationReport(a.out, report)
	}
	return nil
}

type renderOptions struct {
	svg     string
	geojson string
	width   int
}

func (a *app) runRender(ctx context.Context, projectPath string, opts renderOptions) error {
	s, err := a.loadSpec(projectPath)
	if err != nil {
		return err
	}
	svgPath, geojsonPath := s.Path(s.Output.SVG), s.Path(s.Output.GeoJSON)
	if opts.svg != "" {
		svgPath = opts.svg
	}
	if opts.geojson != "" {
		geojsonPath = opts.geojson
	}
	width := s.Output.SVGWidth
	if opts.width != 0 {
		width = opts.width
	}
	if svgPath == "" && geojsonPath == "" {
		return errors.New("no outputs configured; set output.svg or output.geojson, or pass --svg/--geojson")
	}

	res, _, err := a.planProject(ctx, projectPath, 0)
	if err != nil {
		return err
	}

	if svgPath != "" {
		if err := writeFile(svgPath, func(w io.Writer) error { return render.SVG(w, res, width) }); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "wrote %s\n", svgPath)
	}
	if geojsonPath != "" {
		if err := writeFile(geojsonPath, func(w io.Writer) error { return render.WriteGeoJSON(w, res) }); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "wrote %s\n", geojsonPath)
	}
	a.log.Info(ctx, "layout rendered",
		logging.String("label", res.Label),
		logging.Int("cells", res.Metrics.TotalCells))
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// sweepRow is one radius of a sweep. Err is set when that radius failed.
type sweepRow struct {
	Radius  float64
	Metrics coverage.Metrics
	Err     error
}

func (a *app) runSweep(ctx context.Context, projectPath string, radii []float64, workers int) error {
	s, err := a.loadSpec(projectPath)
	if err != nil {
		return err
	}
	if len(radii) == 0 {
		radii = s.Sweep.Radii
	}
	if len(radii) == 0 {
		return errors.New("no radii to sweep; set sweep.radii or pass --radii")
	}

	rows, err := sweep(ctx, s, radii, workers)
	if err != nil {
		return err
	}
	printSweep(a.out, s.Name, rows)

	for _, row := range rows {
		if row.Err != nil {
			a.log.Warn(ctx, "sweep radius failed",
				logging.Float64("radius", row.Radius), logging.Err(row.Err))
		}
	}
	return nil
}

// sweep plans s at every radius with at most workers plans in flight. Rows
// come back sorted by descending radius. A failing radius is reported in its
// row; only cancellation aborts the sweep.
func sweep(ctx context.Context, s *spec.PlanSpec, radii []float64, workers int) ([]sweepRow, error) {
	if workers < 1 {
		workers = 1
	}
	rows := make([]sweepRow, len(radii))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, r := range radii {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, _, err := project.Plan(project.WithRadius(s, r))
			rows[i] = sweepRow{Radius: r, Err: err}
			if err == nil {
				rows[i].Metrics = res.Metrics
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Radius > rows[j].Radius })
	return rows, nil
}
