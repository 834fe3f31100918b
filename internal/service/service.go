package service

import (
	"context"
	"errors"

	"roulette_backend/internal/model"
	"roulette_backend/internal/predictor"
)

var (
	ErrOutcomeNotOnTable = errors.New("outcome is not on this table")
	ErrInvalidHotNumbers = errors.New("invalid hot numbers")
	ErrInvalidLimit      = errors.New("limit must be positive")

	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrInvalidSession     = errors.New("invalid session")
)

type RouletteService interface {
	AddResult(ctx context.Context, userID int, outcome predictor.Outcome) (*model.AddResultOutput, error)
	AddHotNumbers(ctx context.Context, userID int, hot []model.HotNumber) (*model.PredictionView, error)
	Predictions(ctx context.Context, userID int) (*model.PredictionView, error)
	History(ctx context.Context, userID int, limit int) (*model.History, error)
	Accuracy() model.AccuracyStats
	Reset(ctx context.Context, userID int) error
}

type AuthService interface {
	Register(ctx context.Context, user *model.User) (*model.AuthData, error)
	Login(ctx context.Context, login, password string) (*model.AuthData, error)
	Refresh(ctx context.Context, data *model.AuthData) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
}
