package auth

import (
	"context"

	"roulette_backend/internal/model"
	"roulette_backend/pkg/pass"
)

func (s *serv) Register(ctx context.Context, user *model.User) (*model.AuthData, error) {
	// Хэширование пароля пользователя
	passwordHash, err := pass.HashPassword(user.Password)
	if err != nil {
		return nil, err
	}
	user.Password = passwordHash

	var data *model.AuthData

	// Пользователь и сессия создаются в одной транзакции
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		id, err := s.userRepo.CreateUser(ctx, user)
		if err != nil {
			return err
		}
		user.ID = id

		data, err = s.newSession(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}
