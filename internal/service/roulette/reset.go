package roulette

import "context"

// Reset удаляет историю, предсказание и сверки пользователя
func (s *serv) Reset(ctx context.Context, userID int) error {
	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.spinRepo.DeleteSpins(txCtx, userID); err != nil {
			return err
		}
		if err := s.predictionRepo.DeleteCurrent(txCtx, userID); err != nil {
			return err
		}
		return s.predictionRepo.DeleteChecks(txCtx, userID)
	})
}
