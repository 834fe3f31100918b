package prediction_repo

import (
	"context"
	"errors"
	"fmt"

	"roulette_backend/internal/model"
	"roulette_backend/internal/predictor"
	"roulette_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	predictionsTable = "predictions"
	checksTable      = "prediction_checks"

	colID         = "id"
	colUserID     = "user_id"
	colOutcomes   = "outcomes"
	colHistoryLen = "history_len"
	colSeed       = "seed"
	colOutcome    = "outcome"
	colPredicted  = "predicted"
	colCreatedAt  = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewPredictionRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.PredictionRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// GetCurrent - текущее предсказание пользователя.
// Возвращает nil без ошибки, если записи нет
func (r *repo) GetCurrent(ctx context.Context, userID int) (*model.Prediction, error) {
	query := sq.Select(colUserID, colOutcomes, colHistoryLen, colSeed, colCreatedAt).
		From(predictionsTable).
		Where(sq.Eq{colUserID: userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		p   model.Prediction
		raw []string
	)
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).
		Scan(&p.UserID, &raw, &p.HistoryLen, &p.Seed, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select prediction: %w", err)
	}

	p.Outcomes, err = parseOutcomes(raw)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// SaveCurrent - сохраняет предсказание, перезаписывая предыдущее
func (r *repo) SaveCurrent(ctx context.Context, prediction *model.Prediction) error {
	query := sq.Insert(predictionsTable).
		Columns(colUserID, colOutcomes, colHistoryLen, colSeed).
		Values(prediction.UserID, formatOutcomes(prediction.Outcomes), prediction.HistoryLen, prediction.Seed).
		Suffix("ON CONFLICT (" + colUserID + ") DO UPDATE SET " +
			colOutcomes + " = EXCLUDED." + colOutcomes + ", " +
			colHistoryLen + " = EXCLUDED." + colHistoryLen + ", " +
			colSeed + " = EXCLUDED." + colSeed + ", " +
			colCreatedAt + " = now()").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("upsert prediction: %w", err)
	}

	return nil
}

func (r *repo) DeleteCurrent(ctx context.Context, userID int) error {
	return r.deleteByUser(ctx, predictionsTable, userID)
}

// AddCheck - записывает сверку результата с предсказанием
func (r *repo) AddCheck(ctx context.Context, check *model.PredictionCheck) error {
	query := sq.Insert(checksTable).
		Columns(colUserID, colOutcome, colPredicted).
		Values(check.UserID, check.Outcome.String(), check.Predicted).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("insert prediction check: %w", err)
	}

	return nil
}

// ListChecks - все сверки пользователя, старые первыми
func (r *repo) ListChecks(ctx context.Context, userID int) ([]model.PredictionCheck, error) {
	query := sq.Select(colUserID, colOutcome, colPredicted, colCreatedAt).
		From(checksTable).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colID + " ASC").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("select prediction checks: %w", err)
	}
	defer rows.Close()

	checks := make([]model.PredictionCheck, 0)
	for rows.Next() {
		var (
			c       model.PredictionCheck
			outcome string
		)
		if err := rows.Scan(&c.UserID, &outcome, &c.Predicted, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Outcome, err = predictor.ParseOutcome(outcome)
		if err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}

	return checks, rows.Err()
}

func (r *repo) DeleteChecks(ctx context.Context, userID int) error {
	return r.deleteByUser(ctx, checksTable, userID)
}

func (r *repo) deleteByUser(ctx context.Context, table string, userID int) error {
	query := sq.Delete(table).
		Where(sq.Eq{colUserID: userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return nil
}

func formatOutcomes(outcomes []predictor.Outcome) []string {
	res := make([]string, len(outcomes))
	for i, o := range outcomes {
		res[i] = o.String()
	}
	return res
}

func parseOutcomes(raw []string) ([]predictor.Outcome, error) {
	res := make([]predictor.Outcome, 0, len(raw))
	for _, s := range raw {
		o, err := predictor.ParseOutcome(s)
		if err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	return res, nil
}
