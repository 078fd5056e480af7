package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/LeulDagnachew-hub/Hex-sim/internal/logging"
	"github.com/LeulDagnachew-hub/Hex-sim/internal/observability"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/coverage"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/index"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/lattice"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/plan"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/project"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/region"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/render"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/spec"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/validation"
)

// maxBodyBytes caps request bodies; outlines larger than this belong in a
// project file.
const maxBodyBytes = 4 << 20

// Options configures a Server.
type Options struct {
	Logger  logging.Logger
	Metrics *observability.PlanCollector
	// MaxCandidates applies to requests that do not set cell.max_candidates.
	MaxCandidates int64
}

// Server serves coverage plans over HTTP.
type Server struct {
	projectPath string
	port        int
	opts        Options
	log         logging.Logger
}

// New creates a server for the given project directory.
func New(projectPath string, port int, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logging.Noop()
	}
	return &Server{
		projectPath: projectPath,
		port:        port,
		opts:        opts,
		log:         log,
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	s.route(mux, "POST /api/plan", s.handlePlan)
	s.route(mux, "POST /api/plan.svg", s.handlePlanSVG)
	s.route(mux, "POST /api/plan.geojson", s.handlePlanGeoJSON)
	s.route(mux, "GET /api/project", s.handleProject)
	s.route(mux, "POST /api/locate", s.handleLocate)
	s.route(mux, "GET /api/health", s.handleHealth)
	mux.Handle("GET /metrics", s.opts.Metrics.Handler())

	return mux
}

func (s *Server) route(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, s.opts.Metrics.Middleware(pattern, s.withRequestID(h)))
}

func (s *Server) withRequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if id := r.Header.Get("X-Request-ID"); id != "" {
			ctx = logging.ContextWithRequestID(ctx, id)
		}
		ctx, id := logging.EnsureRequestID(ctx)
		w.Header().Set("X-Request-ID", id)
		next(w, r.WithContext(ctx))
	}
}

// Start launches the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info(ctx, "hexplanner server starting",
		logging.String("addr", "http://localhost"+addr),
		logging.String("project", s.projectPath))

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info(ctx, "hexplanner server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// PlanRequest is the body of the POST plan endpoints.
type PlanRequest struct {
	Region spec.RegionDef `json:"region"`
	Cell   spec.CellDef   `json:"cell"`
}

// PlanResponse carries a finished plan plus its validation findings.
type PlanResponse struct {
	Result     *plan.Result       `json:"result,omitempty"`
	Validation *validation.Report `json:"validation"`
	Error      string             `json:"error,omitempty"`
}

// LocateRequest asks for the serving cell of each point.
type LocateRequest struct {
	PlanRequest
	Points []geo.Point2D `json:"points"`
}

// Location is the answer for one point. Found is false outside the plan.
type Location struct {
	Point  geo.Point2D    `json:"point"`
	Found  bool           `json:"found"`
	Index  *lattice.Index `json:"index,omitempty"`
	Center *geo.Point2D   `json:"center,omitempty"`
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	res, report, ok := s.planFromBody(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, PlanResponse{Result: res, Validation: report})
}

func (s *Server) handlePlanSVG(w http.ResponseWriter, r *http.Request) {
	res, _, ok := s.planFromBody(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := render.SVG(w, res, 0); err != nil {
		s.log.Error(r.Context(), "rendering SVG", logging.Err(err))
	}
}

func (s *Server) handlePlanGeoJSON(w http.ResponseWriter, r *http.Request) {
	res, _, ok := s.planFromBody(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	if err := render.WriteGeoJSON(w, res); err != nil {
		s.log.Error(r.Context(), "writing GeoJSON", logging.Err(err))
	}
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	ps, err := spec.LoadProject(s.projectPath)
	if err != nil {
		s.log.Error(r.Context(), "loading project", logging.Err(err))
		writeJSON(w, http.StatusInternalServerError, PlanResponse{Error: err.Error()})
		return
	}
	res, report, ok := s.runPlan(w, r, ps)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, PlanResponse{Result: res, Validation: report})
}

func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	var req LocateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, _, ok := s.runPlan(w, r, s.requestSpec(req.PlanRequest))
	if !ok {
		return
	}

	ix := index.New(res.Cells)
	out := make([]Location, len(req.Points))
	for i, pt := range req.Points {
		out[i] = Location{Point: pt}
		if c, found := ix.Locate(pt); found {
			idx, center := c.Index, c.Center
			out[i].Found = true
			out[i].Index = &idx
			out[i].Center = &center
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"radius":    res.Radius,
		"locations": out,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) planFromBody(w http.ResponseWriter, r *http.Request) (*plan.Result, *validation.Report, bool) {
	var req PlanRequest
	if !decodeBody(w, r, &req) {
		return nil, nil, false
	}
	return s.runPlan(w, r, s.requestSpec(req))
}

// requestSpec wraps a request in a spec. Request regions never read files.
func (s *Server) requestSpec(req PlanRequest) *spec.PlanSpec {
	ps := &spec.PlanSpec{
		SpecVersion: validation.SupportedVersion,
		Region:      req.Region,
		Cell:        req.Cell,
	}
	ps.Region.Shape = strings.ToLower(strings.TrimSpace(ps.Region.Shape))
	if ps.Cell.MaxCandidates == 0 {
		ps.Cell.MaxCandidates = s.opts.MaxCandidates
	}
	return ps
}

// runPlan plans ps and writes an error response on failure.
func (s *Server) runPlan(w http.ResponseWriter, r *http.Request, ps *spec.PlanSpec) (*plan.Result, *validation.Report, bool) {
	ctx := r.Context()
	if ps.Dir == "" && ps.Region.Shape == spec.ShapeGeoJSON {
		writeJSON(w, http.StatusBadRequest, PlanResponse{
			Error: "geojson regions are only read from the project file; send the outline as region.vertices",
		})
		return nil, nil, false
	}

	start := time.Now()
	res, report, err := project.Plan(ps)
	elapsed := time.Since(start)
	if err != nil {
		status, outcome := classify(err)
		s.opts.Metrics.ObservePlan(outcome, elapsed, coverage.Metrics{})
		s.log.Warn(ctx, "plan rejected",
			logging.String("shape", ps.Region.Shape),
			logging.Float64("radius", ps.Cell.Radius),
			logging.Int("status", status),
			logging.Err(err))
		writeJSON(w, status, PlanResponse{Validation: report, Error: err.Error()})
		return nil, nil, false
	}

	s.opts.Metrics.ObservePlan(observability.OutcomeOK, elapsed, res.Metrics)
	s.log.Info(ctx, "plan computed",
		logging.String("label", res.Label),
		logging.Float64("radius", res.Radius),
		logging.Int("cells", res.Metrics.TotalCells),
		logging.Float64("coverage_ratio", res.Metrics.CoverageRatio),
		logging.Any("elapsed", elapsed.String()))
	return res, report, true
}

// classify maps a planning error to an HTTP status and metrics outcome.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, validation.ErrInvalidSpec),
		errors.Is(err, region.ErrInvalidParameter),
		errors.Is(err, spec.ErrUnknownShape),
		errors.Is(err, lattice.ErrInvalidRadius):
		return http.StatusBadRequest, observability.OutcomeInvalid
	case errors.Is(err, lattice.ErrTooManyCandidates):
		return http.StatusUnprocessableEntity, observability.OutcomeInvalid
	default:
		return http.StatusInternalServerError, observability.OutcomeFailed
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, PlanResponse{Error: "decoding request: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
