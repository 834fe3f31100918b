package roulette

import (
	"context"
	"time"

	"roulette_backend/internal/model"
	"roulette_backend/internal/predictor"
)

// sequence История для движка: сначала результаты, затем горячие номера
func (s *serv) sequence(ctx context.Context, userID int) ([]predictor.Outcome, error) {
	results, err := s.spinRepo.ListSpins(ctx, userID, model.SpinKindResult)
	if err != nil {
		return nil, err
	}
	hot, err := s.spinRepo.ListSpins(ctx, userID, model.SpinKindHot)
	if err != nil {
		return nil, err
	}

	seq := make([]predictor.Outcome, 0, len(results)+len(hot))
	for _, sp := range results {
		seq = append(seq, sp.Outcome)
	}
	for _, sp := range hot {
		seq = append(seq, sp.Outcome)
	}
	return seq, nil
}

func (s *serv) predict(seq []predictor.Outcome) predictor.Result {
	started := time.Now()
	res := s.engine.Predict(seq, s.cfg.Count(), s.cfg.Variant())
	s.metrics.ObservePredict(started, len(res.Predictions) > 0)
	return res
}

// replay повторяет сохранённый расчёт по его seed
func (s *serv) replay(seq []predictor.Outcome, seed int64) predictor.Result {
	started := time.Now()
	res := s.engine.PredictWithSeed(seq, s.cfg.Count(), s.cfg.Variant(), seed)
	s.metrics.ObservePredict(started, len(res.Predictions) > 0)
	return res
}

// refreshPrediction пересчитывает и сохраняет текущее предсказание.
// При нехватке истории старое предсказание удаляется
func (s *serv) refreshPrediction(ctx context.Context, userID int) (predictor.Result, int, error) {
	seq, err := s.sequence(ctx, userID)
	if err != nil {
		return predictor.Result{}, 0, err
	}

	res := s.predict(seq)
	if len(res.Predictions) == 0 {
		return res, len(seq), s.predictionRepo.DeleteCurrent(ctx, userID)
	}

	err = s.predictionRepo.SaveCurrent(ctx, &model.Prediction{
		UserID:     userID,
		Outcomes:   res.Predictions,
		HistoryLen: len(seq),
		Seed:       res.Seed,
	})
	return res, len(seq), err
}

// view собирает ответ клиенту вместе со статистикой сверок
func (s *serv) view(ctx context.Context, userID int, res predictor.Result, historyLen int) (*model.PredictionView, error) {
	checks, err := s.predictionRepo.ListChecks(ctx, userID)
	if err != nil {
		return nil, err
	}

	v := &model.PredictionView{
		Predictions: res.Predictions,
		Analyzers:   res.Analyzers,
		Votes:       res.Votes,
		HistoryLen:  historyLen,
		Checks:      len(checks),
		RecentHits:  make([]predictor.Outcome, 0),
	}

	for _, c := range checks {
		if c.Predicted {
			v.Hits++
			v.RecentHits = append(v.RecentHits, c.Outcome)
		}
	}
	if len(v.RecentHits) > recentHitsLimit {
		v.RecentHits = v.RecentHits[len(v.RecentHits)-recentHitsLimit:]
	}
	if v.Checks > 0 {
		v.SuccessRate = float64(v.Hits) / float64(v.Checks)
	}

	return v, nil
}

// Predictions текущее предсказание и разбивка по методам.
// Набор берётся из сохранённого, чтобы совпадать с тем, что будет сверяться;
// разбивка пересчитывается с тем же seed
func (s *serv) Predictions(ctx context.Context, userID int) (*model.PredictionView, error) {
	seq, err := s.sequence(ctx, userID)
	if err != nil {
		return nil, err
	}

	current, err := s.predictionRepo.GetCurrent(ctx, userID)
	if err != nil {
		return nil, err
	}

	var res predictor.Result
	if current != nil && current.HistoryLen == len(seq) {
		res = s.replay(seq, current.Seed)
		res.Predictions = current.Outcomes
	} else {
		res = s.predict(seq)
	}

	return s.view(ctx, userID, res, len(seq))
}

func (s *serv) Accuracy() model.AccuracyStats {
	return s.accuracyRepo.Stats()
}

func containsOutcome(set []predictor.Outcome, o predictor.Outcome) bool {
	for _, x := range set {
		if x == o {
			return true
		}
	}
	return false
}
