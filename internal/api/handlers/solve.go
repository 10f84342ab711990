package handlers

import (
	"net/http"
	"vrp-visualizer-service/internal/api/dto"
	"vrp-visualizer-service/internal/services"
)

// SolveHandler runs the generator and route builder on behalf of the visualizer.
type SolveHandler struct {
	Solver *services.Solver
}

func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.SolveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Parameters == nil {
		writeError(w, r, http.StatusBadRequest, "parameters are required")
		return
	}

	res, err := h.Solver.Solve(r.Context(), services.SolveRequest{
		VRPType:     req.VRPType,
		AlgorithmID: req.AlgorithmID,
		Parameters:  req.Parameters.Domain(),
		Seed:        req.Seed,
	})
	if err != nil {
		writeServiceError(w, r, "solve", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewSolveResponse(res, h.Solver.Field.Depot))
}

func (h *SolveHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.CompareRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Parameters == nil {
		writeError(w, r, http.StatusBadRequest, "parameters are required")
		return
	}

	entries, err := h.Solver.Compare(r.Context(), services.CompareRequest{
		VRPType:      req.VRPType,
		AlgorithmIDs: req.AlgorithmIDs,
		Parameters:   req.Parameters.Domain(),
		Seed:         req.Seed,
	})
	if err != nil {
		writeServiceError(w, r, "compare", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewCompareResponse(entries))
}

func (h *SolveHandler) Trials(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.TrialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Parameters == nil {
		writeError(w, r, http.StatusBadRequest, "parameters are required")
		return
	}

	stats, err := h.Solver.RunTrials(r.Context(), services.TrialsRequest{
		VRPType:      req.VRPType,
		AlgorithmIDs: req.AlgorithmIDs,
		Parameters:   req.Parameters.Domain(),
		Trials:       req.Trials,
		Seed:         req.Seed,
	})
	if err != nil {
		writeServiceError(w, r, "trials", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewTrialsResponse(stats))
}
