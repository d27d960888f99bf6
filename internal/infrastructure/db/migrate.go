package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the minimal tables needed by this app.
// This keeps setup simple (no external migration tool), but still gives persistence.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`create table if not exists setups (
			id bigserial primary key,
			symbol text not null,
			signal text not null,
			score double precision not null,
			price double precision not null,
			stop_loss double precision not null,
			take_profit double precision not null,
			risk_reward double precision not null,
			created_at timestamptz not null default now(),
			created_hour timestamptz not null
		);`,
		`create unique index if not exists setups_symbol_signal_hour_idx on setups(symbol, signal, created_hour);`,
		`create index if not exists setups_created_at_idx on setups(created_at desc);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
