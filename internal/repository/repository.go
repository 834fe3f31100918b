package repository

import (
	"context"
	"errors"

	"roulette_backend/internal/model"
	"roulette_backend/internal/predictor"
)

var ErrNotFound = errors.New("not found")

type SpinRepository interface {
	AddSpins(ctx context.Context, userID int, kind model.SpinKind, outcomes []predictor.Outcome) error
	ListSpins(ctx context.Context, userID int, kind model.SpinKind) ([]model.Spin, error)
	DeleteSpins(ctx context.Context, userID int) error
}

type PredictionRepository interface {
	GetCurrent(ctx context.Context, userID int) (*model.Prediction, error)
	SaveCurrent(ctx context.Context, prediction *model.Prediction) error
	DeleteCurrent(ctx context.Context, userID int) error

	AddCheck(ctx context.Context, check *model.PredictionCheck) error
	ListChecks(ctx context.Context, userID int) ([]model.PredictionCheck, error)
	DeleteChecks(ctx context.Context, userID int) error
}

// AccuracyRepository in-memory статистика точности по всем пользователям
type AccuracyRepository interface {
	Record(predicted bool)
	Stats() model.AccuracyStats
	CheckDrift() bool
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (refreshToken string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)
}
