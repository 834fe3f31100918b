package roulette

import (
	"context"
	"fmt"

	"roulette_backend/internal/model"
	"roulette_backend/internal/predictor"
	"roulette_backend/internal/service"
)

// AddHotNumbers горячие номера от казино: каждый добавляется Count раз.
// В историю отображения они не попадают, только в предсказания
func (s *serv) AddHotNumbers(ctx context.Context, userID int, hot []model.HotNumber) (*model.PredictionView, error) {
	if len(hot) == 0 || len(hot) > maxHotNumbers {
		return nil, fmt.Errorf("%w: expected 1..%d numbers", service.ErrInvalidHotNumbers, maxHotNumbers)
	}

	outcomes := make([]predictor.Outcome, 0)
	for _, h := range hot {
		if !s.cfg.Variant().Contains(h.Outcome) {
			return nil, fmt.Errorf("%w: %s", service.ErrOutcomeNotOnTable, h.Outcome)
		}

		count := h.Count
		if count == 0 {
			count = 1
		}
		if count < 1 || count > s.cfg.MaxHotFrequency() {
			return nil, fmt.Errorf("%w: count must be in 1..%d", service.ErrInvalidHotNumbers, s.cfg.MaxHotFrequency())
		}

		for i := 0; i < count; i++ {
			outcomes = append(outcomes, h.Outcome)
		}
	}

	var (
		res        predictor.Result
		historyLen int
	)
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.spinRepo.AddSpins(txCtx, userID, model.SpinKindHot, outcomes); err != nil {
			return err
		}

		var err error
		res, historyLen, err = s.refreshPrediction(txCtx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveSpins(model.SpinKindHot, len(outcomes))

	return s.view(ctx, userID, res, historyLen)
}
