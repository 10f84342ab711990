package handlers

import (
	"net/http"
	"vrp-visualizer-service/internal/api/dto"
	"vrp-visualizer-service/internal/ports"
)

// AlgorithmHandler exposes the read-only algorithm catalog.
type AlgorithmHandler struct {
	Catalog ports.AlgorithmCatalog
}

func (h *AlgorithmHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewAlgorithmsResponse(h.Catalog.List()))
}
