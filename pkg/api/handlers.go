package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dd0wney/cluso-retrofit/pkg/converter"
	"github.com/dd0wney/cluso-retrofit/pkg/distance"
	"github.com/dd0wney/cluso-retrofit/pkg/export"
	"github.com/dd0wney/cluso-retrofit/pkg/feasibility"
	"github.com/dd0wney/cluso-retrofit/pkg/layout"
	"github.com/dd0wney/cluso-retrofit/pkg/navgraph"
	"github.com/dd0wney/cluso-retrofit/pkg/objective"
)

var errMissingWarehouse = errors.New("warehouse is required")

// converterFor honours an ?algorithm= override for one request.
func (s *Server) converterFor(r *http.Request) (*converter.Converter, error) {
	name := r.URL.Query().Get("algorithm")
	if name == "" {
		return s.current(), nil
	}
	algo, err := distance.ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}
	opts := s.current().Options()
	opts.Distance.Algorithm = algo
	return converter.New(opts), nil
}

// handleConvert runs the full pipeline. ?view=export answers with the
// interchange document instead of the raw result.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	const op = "convert"
	view := r.URL.Query().Get("view")
	if view != "" && view != "export" {
		s.respondError(w, http.StatusBadRequest, "view must be empty or \"export\"")
		return
	}
	c, err := s.converterFor(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	lw, ok := s.decodeLayout(w, r, op)
	if !ok {
		return
	}

	out, err := c.Convert(r.Context(), lw)
	if err != nil {
		s.fail(w, r, op, err, http.StatusInternalServerError)
		return
	}
	if view == "export" {
		doc, err := export.Build(out, export.DefaultOptions())
		if err != nil {
			s.fail(w, r, op, err, http.StatusInternalServerError)
			return
		}
		s.respondJSON(w, http.StatusOK, doc)
		return
	}
	s.respondJSON(w, http.StatusOK, out)
}

// handleFeasibility scores a layout without building its navigation graph.
func (s *Server) handleFeasibility(w http.ResponseWriter, r *http.Request) {
	lw, ok := s.decodeLayout(w, r, "feasibility")
	if !ok {
		return
	}
	a := feasibility.Score(lw, s.current().Options().Thresholds)
	s.metricsRegistry.RecordFeasibility(a.Score, string(a.Grade))
	s.respondJSON(w, http.StatusOK, a)
}

// DistanceMatrixResponse wraps the matrix export with the run that made it.
type DistanceMatrixResponse struct {
	RunID     string `json:"run_id"`
	Algorithm string `json:"algorithm"`
	export.DistanceDocument
}

// handleDistanceMatrix answers with all-pairs distances, optionally
// restricted by ?nodes=a,b,c and laid out by ?format=nested|flat.
func (s *Server) handleDistanceMatrix(w http.ResponseWriter, r *http.Request) {
	const op = "distance-matrix"
	q := r.URL.Query()
	format, err := export.ParseMatrixFormat(q.Get("format"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var ids []string
	if v := q.Get("nodes"); v != "" {
		ids = strings.Split(v, ",")
	}
	c, err := s.converterFor(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	lw, ok := s.decodeLayout(w, r, op)
	if !ok {
		return
	}

	out, err := c.Convert(r.Context(), lw)
	if err != nil {
		s.fail(w, r, op, err, http.StatusInternalServerError)
		return
	}
	doc, err := export.DistanceMatrix(out.DistanceMatrix, ids, format)
	if err != nil {
		s.fail(w, r, op, err, http.StatusInternalServerError)
		return
	}
	s.respondJSON(w, http.StatusOK, DistanceMatrixResponse{
		RunID:            out.RunID,
		Algorithm:        out.Matrix.Algorithm().String(),
		DistanceDocument: doc,
	})
}

// handleObjective evaluates a schedule against the layout's shortest paths.
func (s *Server) handleObjective(w http.ResponseWriter, r *http.Request) {
	const op = "objective"
	var req ObjectiveRequest
	if !s.decodeJSON(w, r, op, &req) {
		return
	}
	if len(req.Warehouse) == 0 {
		s.respondError(w, http.StatusBadRequest, errMissingWarehouse.Error())
		return
	}
	lw, err := layout.DecodeBytes(req.Warehouse, layout.JSON)
	if err != nil {
		s.fail(w, r, op, err, http.StatusBadRequest)
		return
	}

	weights := objective.DefaultWeights()
	if req.Weights != nil {
		weights = *req.Weights
	}
	costs := objective.DefaultCosts()
	if req.Costs != nil {
		costs = *req.Costs
	}
	// Bad weights fail before the conversion runs.
	if err := weights.Validate(); err != nil {
		s.metricsRegistry.RecordObjective(0, err)
		s.fail(w, r, op, err, http.StatusBadRequest)
		return
	}

	out, err := s.current().Convert(r.Context(), lw)
	if err != nil {
		s.fail(w, r, op, err, http.StatusInternalServerError)
		return
	}
	res, err := objective.Evaluate(req.Schedule, weights, costs, out.Matrix)
	s.metricsRegistry.RecordObjective(res.Total, err)
	if err != nil {
		s.fail(w, r, op, err, http.StatusBadRequest)
		return
	}
	s.respondJSON(w, http.StatusOK, ObjectiveResponse{
		RunID:   out.RunID,
		Result:  res,
		Weights: weights,
		Costs:   costs,
	})
}

// handleReferenceLayout returns a generated parallel-aisle layout. Query
// parameters override the default dimensions.
func (s *Server) handleReferenceLayout(w http.ResponseWriter, r *http.Request) {
	cfg := navgraph.DefaultReferenceConfig()
	var err error
	if cfg.Aisles, err = queryInt(r, "aisles", cfg.Aisles); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"width", &cfg.Width},
		{"length", &cfg.Length},
		{"aisle_width", &cfg.AisleWidth},
		{"aisle_length", &cfg.AisleLength},
	} {
		if *p.dst, err = queryFloat(r, p.name, *p.dst); err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if name := r.URL.Query().Get("name"); name != "" {
		cfg.Name = name
	}

	lw, err := navgraph.BuildReference(cfg)
	if err != nil {
		s.fail(w, r, "reference-layout", err, http.StatusUnprocessableEntity)
		return
	}
	s.respondJSON(w, http.StatusOK, lw)
}
