package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dd0wney/cluso-retrofit/pkg/api/middleware"
	"github.com/dd0wney/cluso-retrofit/pkg/converter"
	"github.com/dd0wney/cluso-retrofit/pkg/distance"
	"github.com/dd0wney/cluso-retrofit/pkg/layout"
	"github.com/dd0wney/cluso-retrofit/pkg/logging"
	"github.com/dd0wney/cluso-retrofit/pkg/navgraph"
	"github.com/dd0wney/cluso-retrofit/pkg/objective"
	"github.com/dd0wney/cluso-retrofit/pkg/validation"
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

// unprocessable are well-formed requests the pipeline refuses.
var unprocessable = []error{
	validation.ErrInvalid,
	warehouse.ErrDuplicateZoneID,
	warehouse.ErrDuplicateNodeID,
	warehouse.ErrDuplicateEdgeID,
	warehouse.ErrUnknownEndpoint,
	warehouse.ErrInvalidDimension,
	warehouse.ErrNegativeCoordinate,
	warehouse.ErrNonPositiveDistance,
	warehouse.ErrInvalidEnum,
	distance.ErrTooManyNodes,
	distance.ErrDuplicateNode,
	distance.ErrInvalidEdge,
	navgraph.ErrInvalidSpacing,
	navgraph.ErrInvalidGeometry,
	navgraph.ErrGridTooLarge,
	navgraph.ErrInvalidLayout,
	objective.ErrWeightsSum,
	objective.ErrNegativeCost,
	objective.ErrUnknownNode,
	objective.ErrUnreachableLeg,
	converter.ErrEmptyGraph,
}

// statusFor maps an error to its HTTP status. fallback covers errors that
// are neither size, validation nor cancellation failures.
func statusFor(err error, fallback int) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	for _, target := range unprocessable {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity
		}
	}
	return fallback
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encode response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

// fail logs err and answers with its mapped status. Internal errors are
// not echoed to the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, operation string, err error, fallback int) {
	status := statusFor(err, fallback)
	log := s.logger.With(logging.Operation(operation), logging.String("request_id", middleware.GetRequestID(r)))
	if status >= http.StatusInternalServerError {
		log.Error("request failed", logging.Error(err))
		s.respondError(w, status, fmt.Sprintf("%s failed", operation))
		return
	}
	log.Debug("request rejected", logging.Error(err), logging.Int("status", status))
	s.respondError(w, status, err.Error())
}

// decodeLayout reads a strict JSON layout document from the body.
func (s *Server) decodeLayout(w http.ResponseWriter, r *http.Request, operation string) (*warehouse.LegacyWarehouse, bool) {
	lw, err := layout.Decode(r.Body, layout.JSON)
	if err != nil {
		s.fail(w, r, operation, err, http.StatusBadRequest)
		return nil, false
	}
	return lw, true
}

// decodeJSON decodes the body into v, rejecting unknown fields.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, operation string, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.fail(w, r, operation, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return false
	}
	return true
}

// queryFloat parses an optional positive float query parameter.
func queryFloat(r *http.Request, name string, def float64) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || !(f > 0) {
		return 0, fmt.Errorf("query parameter %s must be a positive number, got %q", name, v)
	}
	return f, nil
}

// queryInt parses an optional positive int query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("query parameter %s must be a positive integer, got %q", name, v)
	}
	return n, nil
}
