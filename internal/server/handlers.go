package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finsim/finsim/internal/calculation"
	"github.com/finsim/finsim/internal/domain"
	"github.com/finsim/finsim/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "finsim",
	})
}

// handleProjection runs a projection for a plan supplied in the request
// body. The plan is not persisted.
func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	var plan domain.Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid plan JSON: "+err.Error())
		return
	}
	if err := s.parser.ValidatePlan(&plan); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.runProjection(w, &plan)
}

// handlePlanProjection runs a projection for a stored plan.
func (s *Server) handlePlanProjection(w http.ResponseWriter, r *http.Request) {
	sp, ok := s.loadPlan(w, r)
	if !ok {
		return
	}
	s.runProjection(w, &sp.Plan)
}

func (s *Server) runProjection(w http.ResponseWriter, plan *domain.Plan) {
	proj, err := s.engine.Project(plan)
	if err != nil {
		if errors.Is(err, calculation.ErrNotConfigured) {
			s.writeError(w, http.StatusUnprocessableEntity, "plan has no start date")
			return
		}
		s.log.Error().Err(err).Msg("projection failed")
		s.writeError(w, http.StatusInternalServerError, "projection failed")
		return
	}
	s.writeJSON(w, http.StatusOK, proj)
}

// createPlanRequest wraps a plan with its storage name.
type createPlanRequest struct {
	Name string      `json:"name"`
	Plan domain.Plan `json:"plan"`
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.store.ListPlans()
	if err != nil {
		s.log.Error().Err(err).Msg("list plans failed")
		s.writeError(w, http.StatusInternalServerError, "list plans failed")
		return
	}
	if plans == nil {
		plans = []store.StoredPlan{}
	}
	s.writeJSON(w, http.StatusOK, plans)
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req createPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request JSON: "+err.Error())
		return
	}
	if req.Name == "" {
		s.writeError(w, http.StatusBadRequest, "plan name is required")
		return
	}
	if err := s.parser.ValidatePlan(&req.Plan); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.store.SavePlan(req.Name, req.Plan)
	if err != nil {
		s.log.Error().Err(err).Str("name", req.Name).Msg("save plan failed")
		s.writeError(w, http.StatusConflict, "save plan failed: "+err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	sp, ok := s.loadPlan(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, sp)
}

func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	var plan domain.Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid plan JSON: "+err.Error())
		return
	}
	if err := s.parser.ValidatePlan(&plan); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.store.UpdatePlan(id, plan); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "plan not found")
			return
		}
		s.log.Error().Err(err).Str("id", id).Msg("update plan failed")
		s.writeError(w, http.StatusInternalServerError, "update plan failed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeletePlan(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "plan not found")
			return
		}
		s.log.Error().Err(err).Str("id", id).Msg("delete plan failed")
		s.writeError(w, http.StatusInternalServerError, "delete plan failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) loadPlan(w http.ResponseWriter, r *http.Request) (*store.StoredPlan, bool) {
	id := chi.URLParam(r, "id")
	sp, err := s.store.GetPlan(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "plan not found")
			return nil, false
		}
		s.log.Error().Err(err).Str("id", id).Msg("load plan failed")
		s.writeError(w, http.StatusInternalServerError, "load plan failed")
		return nil, false
	}
	return sp, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
