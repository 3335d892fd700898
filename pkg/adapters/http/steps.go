package http

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

type recordRequest struct {
	Order int `json:"order"`
}

type stepEntry struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// ListSteps handles the GET /steps request. The response has the shape of the
// admin's own listing, so the index can stand in for it.
func (s *Server) ListSteps(w http.ResponseWriter, r *http.Request) {
	if s.Index == nil {
		s.writeError(w, http.StatusNotImplemented, errIndexDisabled.Error())
		return
	}

	var scenarioID string
	if err := runtime.BindQueryParameter("form", true, true, "scenario_id", r.URL.Query(), &scenarioID); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	byID, err := s.Index.StepOrdersByID(r.Context(), scenarioID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to list steps")
		s.logger.Error("ListSteps failed", "scenario_id", scenarioID, "error", err)
		return
	}

	out := make([]stepEntry, 0, len(byID))
	for id, o := range byID {
		out = append(out, stepEntry{ID: id, Order: o})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	s.writeJSON(w, http.StatusOK, out)
}

// RecordStep handles the PUT /scenarios/{scenario_id}/steps/{step_id} request.
func (s *Server) RecordStep(w http.ResponseWriter, r *http.Request) {
	if s.Index == nil {
		s.writeError(w, http.StatusNotImplemented, errIndexDisabled.Error())
		return
	}
	scenarioID, stepID, ok := s.stepPath(w, r)
	if !ok {
		return
	}

	var body recordRequest
	if !s.decode(w, r, "RecordStep", &body) {
		return
	}
	if body.Order < 1 {
		s.writeError(w, http.StatusBadRequest, "order must be a positive integer")
		return
	}

	if err := s.Index.Record(r.Context(), scenarioID, stepID, body.Order); err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to record step")
		s.logger.Error("RecordStep failed", "scenario_id", scenarioID, "step_id", stepID, "error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveStep handles the DELETE /scenarios/{scenario_id}/steps/{step_id} request.
func (s *Server) RemoveStep(w http.ResponseWriter, r *http.Request) {
	if s.Index == nil {
		s.writeError(w, http.StatusNotImplemented, errIndexDisabled.Error())
		return
	}
	scenarioID, stepID, ok := s.stepPath(w, r)
	if !ok {
		return
	}

	if err := s.Index.Remove(r.Context(), scenarioID, stepID); err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to remove step")
		s.logger.Error("RemoveStep failed", "scenario_id", scenarioID, "step_id", stepID, "error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) stepPath(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	opts := runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true}

	var scenarioID, stepID string
	if err := runtime.BindStyledParameterWithOptions("simple", "scenario_id", chi.URLParam(r, "scenario_id"), &scenarioID, opts); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return "", "", false
	}
	if err := runtime.BindStyledParameterWithOptions("simple", "step_id", chi.URLParam(r, "step_id"), &stepID, opts); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return "", "", false
	}
	return scenarioID, stepID, true
}
