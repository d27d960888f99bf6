package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/johnboisvert/tradingview-sub001/internal/domain"
)

// PostgresSetupRepository persists qualifying setups so the harvest can be
// reviewed after the fact. The uniqueness window in the insert keeps one
// row per symbol and signal per hour even when cycles fire often.
type PostgresSetupRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSetupRepository(pool *pgxpool.Pool) *PostgresSetupRepository {
	return &PostgresSetupRepository{pool: pool}
}

func (r *PostgresSetupRepository) RecordSetup(ctx context.Context, rec *domain.SetupRecord) error {
	if rec == nil {
		return errors.New("nil setup record")
	}
	_, err := r.pool.Exec(ctx, `
		insert into setups(symbol, signal, score, price, stop_loss, take_profit, risk_reward, created_at, created_hour)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		on conflict (symbol, signal, created_hour) do nothing
	`,
		rec.Symbol,
		string(rec.Signal),
		rec.Score,
		rec.Price,
		rec.StopLoss,
		rec.TakeProfit,
		rec.RiskReward,
		rec.CreatedAt,
		rec.CreatedAt.Truncate(time.Hour),
	)
	return err
}

// RecentSetups returns setups recorded since fromTime, newest first.
func (r *PostgresSetupRepository) RecentSetups(ctx context.Context, fromTime time.Time, limit int) ([]domain.SetupRecord, error) {
	if limit < 1 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		select symbol, signal, score, price, stop_loss, take_profit, risk_reward, created_at
		from setups
		where created_at >= $1
		order by created_at desc
		limit $2
	`, fromTime, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.SetupRecord, 0)
	for rows.Next() {
		var rec domain.SetupRecord
		var signal string
		if err := rows.Scan(
			&rec.Symbol,
			&signal,
			&rec.Score,
			&rec.Price,
			&rec.StopLoss,
			&rec.TakeProfit,
			&rec.RiskReward,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.Signal = domain.Signal(signal)
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ domain.SetupRepository = (*PostgresSetupRepository)(nil)
