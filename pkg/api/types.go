package api

import (
	"encoding/json"

	"github.com/dd0wney/cluso-retrofit/pkg/objective"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ObjectiveRequest scores a schedule against a layout's shortest distances.
// Weights and Costs default when omitted.
type ObjectiveRequest struct {
	// Warehouse is a layout document in the same form /api/v1/convert takes.
	Warehouse json.RawMessage    `json:"warehouse"`
	Schedule  objective.Input    `json:"schedule"`
	Weights   *objective.Weights `json:"weights,omitempty"`
	Costs     *objective.Costs   `json:"costs,omitempty"`
}

// ObjectiveResponse carries the score and the weights actually used.
type ObjectiveResponse struct {
	RunID   string            `json:"run_id"`
	Result  objective.Result  `json:"result"`
	Weights objective.Weights `json:"weights"`
	Costs   objective.Costs   `json:"costs"`
}
