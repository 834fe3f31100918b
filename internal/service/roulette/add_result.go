package roulette

import (
	"context"

	"roulette_backend/internal/model"
	"roulette_backend/internal/predictor"
	"roulette_backend/internal/service"

	"github.com/rs/zerolog/log"
)

// AddResult добавляет результат стола, сверяет его с прошлым предсказанием
// и пересчитывает новое. Всё в одной транзакции
func (s *serv) AddResult(ctx context.Context, userID int, outcome predictor.Outcome) (*model.AddResultOutput, error) {
	if !s.cfg.Variant().Contains(outcome) {
		return nil, service.ErrOutcomeNotOnTable
	}

	var (
		check      *model.PredictionCheck
		res        predictor.Result
		historyLen int
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Сверка с предыдущим набором, 00 и 0 различаются
		current, err := s.predictionRepo.GetCurrent(txCtx, userID)
		if err != nil {
			return err
		}
		if current != nil {
			check = &model.PredictionCheck{
				UserID:    userID,
				Outcome:   outcome,
				Predicted: containsOutcome(current.Outcomes, outcome),
			}
			if err := s.predictionRepo.AddCheck(txCtx, check); err != nil {
				return err
			}
		}

		if err := s.spinRepo.AddSpins(txCtx, userID, model.SpinKindResult, []predictor.Outcome{outcome}); err != nil {
			return err
		}

		res, historyLen, err = s.refreshPrediction(txCtx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveSpins(model.SpinKindResult, 1)
	if check != nil {
		s.accuracyRepo.Record(check.Predicted)
		s.accuracyRepo.CheckDrift()
		s.metrics.ObserveCheck(check.Predicted)
		s.metrics.SetAccuracy(s.accuracyRepo.Stats())

		log.Debug().
			Int("user_id", userID).
			Stringer("outcome", outcome).
			Bool("predicted", check.Predicted).
			Msg("prediction checked")
	}

	view, err := s.view(ctx, userID, res, historyLen)
	if err != nil {
		return nil, err
	}

	return &model.AddResultOutput{
		Spin: model.Spin{
			UserID:  userID,
			Outcome: outcome,
			Kind:    model.SpinKindResult,
		},
		Check:      check,
		Prediction: view,
	}, nil
}
