package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vigil-lab/argus/pkg/domain/interfaces"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
	"github.com/vigil-lab/argus/pkg/usecase"
)

func (s *Server) listDecisions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope := chi.URLParam(r, "scope")

	var filter interfaces.DecisionFilter
	q := r.URL.Query()

	if v := q.Get("type"); v != "" {
		dt := types.DecisionType(v)
		if !dt.IsValid() {
			badRequest(ctx, w, "invalid decision type: "+v)
			return
		}
		filter.Type = &dt
	}
	if v := q.Get("action_id"); v != "" {
		id := model.ActionID(v)
		filter.ActionID = &id
	}
	if v := q.Get("feedback"); v != "" {
		fb, err := types.ParseOwnerFeedback(v)
		if err != nil {
			badRequest(ctx, w, err.Error())
			return
		}
		filter.Feedback = &fb
	}
	if v := q.Get("feedback_pending"); v != "" {
		pending, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(ctx, w, "invalid feedback_pending value: "+v)
			return
		}
		filter.FeedbackPending = pending
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			badRequest(ctx, w, "invalid limit value: "+v)
			return
		}
		filter.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			badRequest(ctx, w, "invalid offset value: "+v)
			return
		}
		filter.Offset = offset
	}

	decisions, err := s.uc.Decision.List(ctx, scope, filter)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	resp := make([]decisionResponse, len(decisions))
	for i, d := range decisions {
		resp[i] = decisionDTO(d)
	}
	writeJSON(ctx, w, http.StatusOK, map[string]any{"decisions": resp})
}

func (s *Server) getDecision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope := chi.URLParam(r, "scope")
	id := model.DecisionID(chi.URLParam(r, "decisionID"))

	decision, err := s.uc.Decision.Get(ctx, scope, id)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, decisionDTO(decision))
}

type feedbackHint struct {
	Category   string `json:"category"`
	Preference string `json:"preference"`
	Example    string `json:"example,omitempty"`
}

type feedbackRequest struct {
	Feedback string         `json:"feedback"`
	Hints    []feedbackHint `json:"hints,omitempty"`
}

func (s *Server) submitFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope := chi.URLParam(r, "scope")
	id := model.DecisionID(chi.URLParam(r, "decisionID"))

	var req feedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(ctx, w, "invalid request body: "+err.Error())
		return
	}

	hints := make([]usecase.PreferenceHint, len(req.Hints))
	for i, h := range req.Hints {
		hints[i] = usecase.PreferenceHint{
			Category:   types.PreferenceCategory(h.Category),
			Preference: h.Preference,
			Example:    h.Example,
		}
	}

	decision, err := s.uc.Feedback.Submit(ctx, scope, usecase.SubmitInput{
		DecisionID: id,
		Feedback:   types.OwnerFeedback(req.Feedback),
		Hints:      hints,
	})
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, decisionDTO(decision))
}
