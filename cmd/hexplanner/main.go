package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/LeulDagnachew-hub/Hex-sim/internal/logging"
	"github.com/LeulDagnachew-hub/Hex-sim/internal/observability"
	"github.com/LeulDagnachew-hub/Hex-sim/internal/server"
)

// envPrefix namespaces the environment variables bound to flags, e.g.
// HEXPLAN_LOG_LEVEL or HEXPLAN_PORT.
const envPrefix = "HEXPLAN"

// app carries state shared by the subcommands.
type app struct {
	v   *viper.Viper
	log logging.Logger
	out io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), log: logging.Noop(), out: out}
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:          "hexplanner",
		Short:        "Hexagonal cell coverage planner",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			log, err := logging.New(logging.Config{
				Level:  a.v.GetString("log-level"),
				Format: a.v.GetString("log-format"),
			})
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}
	rootCmd.SetOut(out)

	pf := rootCmd.PersistentFlags()
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console or json)")
	pf.Int64("max-candidates", 0, "lattice candidate limit when the plan file sets none (negative disables)")

	rootCmd.AddCommand(planCmd(a))
	rootCmd.AddCommand(validateCmd(a))
	rootCmd.AddCommand(renderCmd(a))
	rootCmd.AddCommand(sweepCmd(a))
	rootCmd.AddCommand(serveCmd(a))
	return rootCmd
}

func planCmd(a *app) *cobra.Command {
	var (
		radius  float64
		asJSON  bool
		details bool
	)
	cmd := &cobra.Command{
		Use:   "plan [project-path]",
		Short: "Generate the hex lattice for a project and report coverage metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlan(cmd.Context(), args[0], radius, asJSON, details)
		},
	}
	cmd.Flags().Float64VarP(&radius, "radius", "r", 0, "cell radius, overriding cell.radius")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	cmd.Flags().BoolVar(&details, "details", false, "list every cell with its placement")
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a plan spec without generating the lattice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd.Context(), args[0])
		},
	}
}

func renderCmd(a *app) *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render [project-path]",
		Short: "Write the SVG layout and GeoJSON cells for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.svg, "svg", "", "SVG output path, overriding output.svg")
	cmd.Flags().StringVar(&opts.geojson, "geojson", "", "GeoJSON output path, overriding output.geojson")
	cmd.Flags().IntVar(&opts.width, "width", 0, "SVG width in pixels, overriding output.svg_width")
	return cmd
}

func sweepCmd(a *app) *cobra.Command {
	var (
		radii   []float64
		workers int
	)
	cmd := &cobra.Command{
		Use:   "sweep [project-path]",
		Short: "Plan a project at several radii and compare coverage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSweep(cmd.Context(), args[0], radii, workers)
		},
	}
	cmd.Flags().Float64SliceVar(&radii, "radii", nil, "radii to plan, overriding sweep.radii")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "plans computed in parallel")
	return cmd
}

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the HTTP planning server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics, err := observability.NewPlanCollector(nil)
			if err != nil {
				return err
			}
			srv := server.New(args[0], a.v.GetInt("port"), server.Options{
				Logger:        a.log,
				Metrics:       metrics,
				MaxCandidates: a.v.GetInt64("max-candidates"),
			})
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().IntP("port", "p", 3000, "HTTP server port")
	return cmd
}
