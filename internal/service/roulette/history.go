package roulette

import (
	"context"
	"math"

	"roulette_backend/internal/model"
	"roulette_backend/internal/predictor"
	"roulette_backend/internal/service"
)

// History последние limit результатов и статистика цветов по всей истории.
// limit == 0 берёт значение из конфига
func (s *serv) History(ctx context.Context, userID int, limit int) (*model.History, error) {
	if limit < 0 {
		return nil, service.ErrInvalidLimit
	}
	if limit == 0 {
		limit = s.cfg.HistoryLimit()
	}

	spins, err := s.spinRepo.ListSpins(ctx, userID, model.SpinKindResult)
	if err != nil {
		return nil, err
	}

	outcomes := make([]predictor.Outcome, len(spins))
	for i, sp := range spins {
		outcomes[i] = sp.Outcome
	}

	recent := outcomes
	if len(recent) > limit {
		recent = recent[len(recent)-limit:]
	}

	items := make([]model.HistoryItem, len(recent))
	for i, o := range recent {
		items[i] = model.HistoryItem{Outcome: o, Color: o.Color()}
	}

	return &model.History{
		Results:    items,
		TotalSpins: len(outcomes),
		Colors:     colorStats(outcomes),
	}, nil
}

// colorStats доли красного и чёрного, зеро не считаются
func colorStats(outcomes []predictor.Outcome) model.ColorStats {
	var st model.ColorStats
	for _, o := range outcomes {
		switch o.Color() {
		case predictor.Red:
			st.RedCount++
		case predictor.Black:
			st.BlackCount++
		}
	}

	st.Total = st.RedCount + st.BlackCount
	if st.Total > 0 {
		st.RedPercent = int(math.Round(float64(st.RedCount) / float64(st.Total) * 100))
		st.BlackPercent = int(math.Round(float64(st.BlackCount) / float64(st.Total) * 100))
	}
	return st
}
