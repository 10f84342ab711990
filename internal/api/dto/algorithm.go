package dto

import "vrp-visualizer-service/internal/domain"

type AlgorithmResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Keyed by VRP type.
type ListAlgorithmsResponse map[string][]AlgorithmResponse

func NewAlgorithmsResponse(all map[string][]domain.Algorithm) ListAlgorithmsResponse {
	res := ListAlgorithmsResponse{}
	for vrpType, algos := range all {
		out := make([]AlgorithmResponse, 0, len(algos))
		for _, a := range algos {
			out = append(out, AlgorithmResponse{ID: a.ID, Name: a.Name, Score: a.Score})
		}
		res[vrpType] = out
	}
	return res
}
