package dto

import "vrp-visualizer-service/internal/domain"

type ListRunsResponse struct {
	Runs []domain.RunSummary `json:"runs"`
}
