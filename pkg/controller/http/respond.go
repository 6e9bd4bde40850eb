package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vigil-lab/argus/pkg/usecase"
	"github.com/vigil-lab/argus/pkg/utils/errutil"
	"github.com/vigil-lab/argus/pkg/utils/safe"
)

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, data)
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleError maps use case sentinels to HTTP status codes: validation
// failures are 400, missing entities 404, state conflicts 409, and a missing
// handler 422 since the request was well-formed but cannot be acted on.
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, usecase.ErrInvalidProposal),
		errors.Is(err, usecase.ErrInvalidFeedback),
		errors.Is(err, usecase.ErrInvalidReinforcement):
		status = http.StatusBadRequest

	case errors.Is(err, usecase.ErrActionNotFound),
		errors.Is(err, usecase.ErrDecisionNotFound),
		errors.Is(err, usecase.ErrPreferenceNotFound):
		status = http.StatusNotFound

	case errors.Is(err, usecase.ErrInvalidState),
		errors.Is(err, usecase.ErrAlreadyExecuted),
		errors.Is(err, usecase.ErrImmutableFeedback):
		status = http.StatusConflict

	case errors.Is(err, usecase.ErrNoHandler):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		errutil.HandleHTTP(ctx, w, err, status)
		return
	}

	writeJSON(ctx, w, status, errorResponse{Error: err.Error()})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func badRequest(ctx context.Context, w http.ResponseWriter, msg string) {
	writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: msg})
}
