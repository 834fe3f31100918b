package spin_repo

import (
	"context"
	"fmt"

	"roulette_backend/internal/model"
	"roulette_backend/internal/predictor"
	"roulette_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "spins"
	colID        = "id"
	colUserID    = "user_id"
	colOutcome   = "outcome"
	colKind      = "kind"
	colCreatedAt = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewSpinRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.SpinRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// AddSpins - добавляет номера в историю пользователя одним запросом.
// Порядок outcomes сохраняется через возрастающий id
func (r *repo) AddSpins(ctx context.Context, userID int, kind model.SpinKind, outcomes []predictor.Outcome) error {
	if len(outcomes) == 0 {
		return nil
	}

	// Формируем запрос
	query := sq.Insert(table).
		Columns(colUserID, colOutcome, colKind).
		PlaceholderFormat(sq.Dollar)
	for _, o := range outcomes {
		query = query.Values(userID, o.String(), string(kind))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("insert spins: %w", err)
	}

	return nil
}

// ListSpins - история пользователя в хронологическом порядке.
// Пустой kind возвращает все записи
func (r *repo) ListSpins(ctx context.Context, userID int, kind model.SpinKind) ([]model.Spin, error) {
	// Формируем запрос
	query := sq.Select(colID, colUserID, colOutcome, colKind, colCreatedAt).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colID + " ASC").
		PlaceholderFormat(sq.Dollar)
	if kind != "" {
		query = query.Where(sq.Eq{colKind: string(kind)})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("select spins: %w", err)
	}
	defer rows.Close()

	spins := make([]model.Spin, 0)
	for rows.Next() {
		var (
			spin    model.Spin
			outcome string
			k       string
		)
		if err := rows.Scan(&spin.ID, &spin.UserID, &outcome, &k, &spin.CreatedAt); err != nil {
			return nil, err
		}

		spin.Outcome, err = predictor.ParseOutcome(outcome)
		if err != nil {
			return nil, fmt.Errorf("spin %d: %w", spin.ID, err)
		}
		spin.Kind = model.SpinKind(k)
		spins = append(spins, spin)
	}

	return spins, rows.Err()
}

// DeleteSpins - удаляет всю историю пользователя
func (r *repo) DeleteSpins(ctx context.Context, userID int) error {
	query := sq.Delete(table).
		Where(sq.Eq{colUserID: userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete spins: %w", err)
	}

	return nil
}
