package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
)

func (s *Server) listPreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope := chi.URLParam(r, "scope")

	var category *types.PreferenceCategory
	if v := r.URL.Query().Get("category"); v != "" {
		c, err := types.ParsePreferenceCategory(v)
		if err != nil {
			badRequest(ctx, w, err.Error())
			return
		}
		category = &c
	}

	prefs, err := s.uc.Preference.List(ctx, scope, category)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	resp := make([]preferenceResponse, len(prefs))
	for i, p := range prefs {
		resp[i] = preferenceDTO(p)
	}
	writeJSON(ctx, w, http.StatusOK, map[string]any{"preferences": resp})
}

func (s *Server) forgetPreference(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope := chi.URLParam(r, "scope")
	id := model.PreferenceID(chi.URLParam(r, "preferenceID"))

	if err := s.uc.Preference.Forget(ctx, scope, id); err != nil {
		handleError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
