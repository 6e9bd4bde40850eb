package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vigil-lab/argus/pkg/domain/interfaces"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
	"github.com/vigil-lab/argus/pkg/usecase"
)

type proposeRequest struct {
	Type      string           `json:"type"`
	Priority  string           `json:"priority,omitempty"`
	GoalID    string           `json:"goal_id,omitempty"`
	Details   actionDetailsDTO `json:"details"`
	Reasoning string           `json:"reasoning,omitempty"`
}

func (s *Server) proposeAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope := chi.URLParam(r, "scope")

	var req proposeRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(ctx, w, "invalid request body: "+err.Error())
		return
	}

	action, err := s.uc.Action.Propose(ctx, scope, usecase.ProposeInput{
		Type:      types.ActionType(req.Type),
		Priority:  types.Priority(req.Priority),
		GoalID:    model.GoalID(req.GoalID),
		Details:   req.Details.toModel(),
		Reasoning: req.Reasoning,
	})
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, actionDTO(action))
}

func (s *Server) listActions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope := chi.URLParam(r, "scope")

	var opts []interfaces.ListActionOption
	q := r.URL.Query()

	if v := q.Get("status"); v != "" {
		status, err := types.ParseActionStatus(v)
		if err != nil {
			badRequest(ctx, w, err.Error())
			return
		}
		opts = append(opts, interfaces.WithActionStatus(status))
	}
	if v := q.Get("type"); v != "" {
		t, err := types.ParseActionType(v)
		if err != nil {
			badRequest(ctx, w, err.Error())
			return
		}
		opts = append(opts, interfaces.WithActionType(t))
	}
	if v := q.Get("since"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			badRequest(ctx, w, "invalid since timestamp: "+err.Error())
			return
		}
		opts = append(opts, interfaces.WithCreatedSince(ts))
	}
	if v := q.Get("before"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			badRequest(ctx, w, "invalid before timestamp: "+err.Error())
			return
		}
		opts = append(opts, interfaces.WithCreatedBefore(ts))
	}

	actions, err := s.uc.Action.List(ctx, scope, opts...)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	resp := make([]actionResponse, len(actions))
	for i, a := range actions {
		resp[i] = actionDTO(a)
	}
	writeJSON(ctx, w, http.StatusOK, map[string]any{"actions": resp})
}

func (s *Server) getAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope := chi.URLParam(r, "scope")
	id := model.ActionID(chi.URLParam(r, "actionID"))

	action, err := s.uc.Action.Get(ctx, scope, id)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, actionDTO(action))
}

type editRequest struct {
	Details   actionDetailsDTO `json:"details"`
	Reasoning *string          `json:"reasoning,omitempty"`
}

func (s *Server) editAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope := chi.URLParam(r, "scope")
	id := model.ActionID(chi.URLParam(r, "actionID"))

	var req editRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(ctx, w, "invalid request body: "+err.Error())
		return
	}

	action, err := s.uc.Action.Edit(ctx, scope, id, req.Details.toModel(), req.Reasoning)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, actionDTO(action))
}

func (s *Server) approveAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope := chi.URLParam(r, "scope")
	id := model.ActionID(chi.URLParam(r, "actionID"))

	action, err := s.uc.Action.Approve(ctx, scope, id)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, actionDTO(action))
}

func (s *Server) rejectAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope := chi.URLParam(r, "scope")
	id := model.ActionID(chi.URLParam(r, "actionID"))

	action, err := s.uc.Action.Reject(ctx, scope, id)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, actionDTO(action))
}

func (s *Server) executeAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope := chi.URLParam(r, "scope")
	id := model.ActionID(chi.URLParam(r, "actionID"))

	action, err := s.uc.Exec.Execute(ctx, scope, id)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, actionDTO(action))
}

func (s *Server) actionSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope := chi.URLParam(r, "scope")

	summary, err := s.uc.Action.Summarize(ctx, scope)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"by_status": summary.ByStatus,
		"by_type":   summary.ByType,
	})
}

type bulkRequest struct {
	ActionIDs []string `json:"action_ids"`
}

func (r bulkRequest) ids() []model.ActionID {
	ids := make([]model.ActionID, len(r.ActionIDs))
	for i, id := range r.ActionIDs {
		ids[i] = model.ActionID(id)
	}
	return ids
}

func (s *Server) bulkApprove(w http.ResponseWriter, r *http.Request) {
	s.bulk(w, r, s.uc.Bulk.Approve)
}

func (s *Server) bulkReject(w http.ResponseWriter, r *http.Request) {
	s.bulk(w, r, s.uc.Bulk.Reject)
}

// bulkExecute dispatches every approved action in the scope. It takes no
// body: the candidate set is derived server-side at call time so the client
// cannot execute against a stale view.
func (s *Server) bulkExecute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope := chi.URLParam(r, "scope")

	result, err := s.uc.Bulk.Execute(ctx, scope)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, bulkDTO(result))
}

func (s *Server) bulk(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, scope string, ids []model.ActionID) (*usecase.BulkResult, error)) {
	ctx := r.Context()
	scope := chi.URLParam(r, "scope")

	var req bulkRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(ctx, w, "invalid request body: "+err.Error())
		return
	}

	result, err := op(ctx, scope, req.ids())
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	// Partial failure is still a 200: the per-item results carry the errors
	writeJSON(ctx, w, http.StatusOK, bulkDTO(result))
}
