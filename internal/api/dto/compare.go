package dto

import "vrp-visualizer-service/internal/services"

type CompareRequest struct {
	VRPType      string             `json:"vrpType"`
	AlgorithmIDs []string           `json:"algorithmIds"`
	Parameters   *ParametersRequest `json:"parameters"`
	Seed         uint64             `json:"seed"`
}

type CompareResultResponse struct {
	AlgorithmID     string  `json:"algorithmId"`
	Name            string  `json:"name"`
	QualityScore    float64 `json:"qualityScore"`
	ExecutionTime   float64 `json:"executionTime"`
	TotalDistance   float64 `json:"totalDistance"`
	NumRoutes       int     `json:"numRoutes"`
	CustomersServed int     `json:"customersServed"`
	IsBest          bool    `json:"isBest"`
}

type CompareResponse struct {
	Results []CompareResultResponse `json:"results"`
}

type TrialsRequest struct {
	VRPType      string             `json:"vrpType"`
	AlgorithmIDs []string           `json:"algorithmIds"`
	Parameters   *ParametersRequest `json:"parameters"`
	Trials       int                `json:"trials"`
	Seed         uint64             `json:"seed"`
}

type TrialStatsResponse struct {
	AlgorithmID         string  `json:"algorithmId"`
	QualityScore        float64 `json:"qualityScore"`
	Trials              int     `json:"trials"`
	MeanDistance        float64 `json:"meanDistance"`
	MinDistance         float64 `json:"minDistance"`
	MaxDistance         float64 `json:"maxDistance"`
	MeanTrueDistance    float64 `json:"meanTrueDistance"`
	MeanCustomersServed float64 `json:"meanCustomersServed"`
}

type TrialsResponse struct {
	Results []TrialStatsResponse `json:"results"`
}

func NewCompareResponse(entries []services.CompareEntry) CompareResponse {
	res := CompareResponse{Results: make([]CompareResultResponse, 0, len(entries))}
	for _, e := range entries {
		res.Results = append(res.Results, CompareResultResponse{
			AlgorithmID:     e.Algorithm.ID,
			Name:            e.Algorithm.Name,
			QualityScore:    e.Algorithm.Score,
			ExecutionTime:   Millis(e.ExecutionTime),
			TotalDistance:   e.TotalDistance,
			NumRoutes:       e.NumRoutes,
			CustomersServed: e.CustomersServed,
			IsBest:          e.IsBest,
		})
	}
	return res
}

func NewTrialsResponse(stats []services.TrialStats) TrialsResponse {
	res := TrialsResponse{Results: make([]TrialStatsResponse, 0, len(stats))}
	for _, s := range stats {
		res.Results = append(res.Results, TrialStatsResponse{
			AlgorithmID:         s.Algorithm.ID,
			QualityScore:        s.Algorithm.Score,
			Trials:              s.Trials,
			MeanDistance:        s.MeanDistance,
			MinDistance:         s.MinDistance,
			MaxDistance:         s.MaxDistance,
			MeanTrueDistance:    s.MeanTrueDistance,
			MeanCustomersServed: s.MeanCustomersServed,
		})
	}
	return res
}
