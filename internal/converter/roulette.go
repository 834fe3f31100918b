package converter

import (
	"errors"
	"fmt"

	"roulette_backend/internal/api/dto/roulette"
	"roulette_backend/internal/model"
	"roulette_backend/internal/predictor"
)

var ErrMissingNumber = errors.New("number is required")

func ToOutcome(req roulette.AddSpinRequest) (predictor.Outcome, error) {
	if req.Number == nil {
		return predictor.Outcome{}, ErrMissingNumber
	}
	return *req.Number, nil
}

func ToHotNumbers(req roulette.HotNumbersRequest) ([]model.HotNumber, error) {
	res := make([]model.HotNumber, 0, len(req.Numbers))
	for i, h := range req.Numbers {
		if h.Number == nil {
			return nil, fmt.Errorf("numbers[%d]: %w", i, ErrMissingNumber)
		}
		res = append(res, model.HotNumber{
			Outcome: *h.Number,
			Count:   h.Count,
		})
	}
	return res, nil
}

func ToPredictionResponse(v *model.PredictionView) roulette.PredictionResponse {
	analyzers := make([]roulette.AnalyzerResponse, 0, len(v.Analyzers))
	for _, a := range v.Analyzers {
		predictions := a.Predictions
		if predictions == nil {
			predictions = []predictor.Outcome{}
		}
		analyzers = append(analyzers, roulette.AnalyzerResponse{
			Name:        a.Name,
			Weight:      a.Weight,
			Predictions: predictions,
		})
	}

	// Нулевые баллы не несут информации
	votes := make([]roulette.VoteResponse, 0)
	for _, vt := range v.Votes {
		if vt.Score <= 0 {
			continue
		}
		votes = append(votes, roulette.VoteResponse{Number: vt.Outcome, Score: vt.Score})
	}

	return roulette.PredictionResponse{
		Predictions: nonNil(v.Predictions),
		Analyzers:   analyzers,
		Votes:       votes,
		HistoryLen:  v.HistoryLen,
		RecentHits:  nonNil(v.RecentHits),
		Checks:      v.Checks,
		Hits:        v.Hits,
		SuccessRate: v.SuccessRate,
	}
}

func ToAddSpinResponse(out *model.AddResultOutput) roulette.AddSpinResponse {
	res := roulette.AddSpinResponse{
		Number:     out.Spin.Outcome,
		Color:      string(out.Spin.Outcome.Color()),
		Prediction: ToPredictionResponse(out.Prediction),
	}
	if out.Check != nil {
		res.Check = &roulette.CheckResponse{
			Number:    out.Check.Outcome,
			Predicted: out.Check.Predicted,
		}
	}
	return res
}

func ToHistoryResponse(h *model.History) roulette.HistoryResponse {
	items := make([]roulette.HistoryItem, len(h.Results))
	for i, it := range h.Results {
		items[i] = roulette.HistoryItem{
			Number: it.Outcome,
			Color:  string(it.Color),
		}
	}

	return roulette.HistoryResponse{
		Results:    items,
		TotalSpins: h.TotalSpins,
		Colors: roulette.ColorStats{
			Red:          h.Colors.RedCount,
			Black:        h.Colors.BlackCount,
			Total:        h.Colors.Total,
			RedPercent:   h.Colors.RedPercent,
			BlackPercent: h.Colors.BlackPercent,
		},
	}
}

func ToStatsResponse(s model.AccuracyStats) roulette.StatsResponse {
	return roulette.StatsResponse{
		TotalChecks:   s.TotalChecks,
		Hits:          s.Hits,
		HitRate:       s.HitRate,
		WindowSize:    s.WindowSize,
		WindowChecks:  s.WindowChecks,
		WindowHitRate: s.WindowHitRate,
		BaselineRate:  s.BaselineRate,
	}
}

func nonNil(outcomes []predictor.Outcome) []predictor.Outcome {
	if outcomes == nil {
		return []predictor.Outcome{}
	}
	return outcomes
}
