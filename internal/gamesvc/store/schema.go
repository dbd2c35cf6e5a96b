package store

import (
	"context"
	"fmt"
)

// schema holds the table definitions in dependency order. Everything is
// IF NOT EXISTS so Migrate is safe to run on every boot.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		avatar TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS wallets (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(user_id),
		ttype TEXT NOT NULL,
		dr NUMERIC(14,2) NOT NULL DEFAULT 0,
		cr NUMERIC(14,2) NOT NULL DEFAULT 0,
		tref TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'completed',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS tiles (
		id BIGSERIAL PRIMARY KEY,
		position INT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		color_group TEXT NOT NULL DEFAULT '',
		price BIGINT NOT NULL DEFAULT 0,
		rent_base BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS cards (
		id BIGSERIAL PRIMARY KEY,
		deck_type TEXT NOT NULL,
		card_order INT NOT NULL,
		message TEXT NOT NULL,
		action_type TEXT NOT NULL,
		amount BIGINT NOT NULL DEFAULT 0,
		move_to INT NOT NULL DEFAULT 0,
		collect_go BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (deck_type, card_order)
	)`,
	`CREATE TABLE IF NOT EXISTS games (
		id BIGSERIAL PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		creator_user_id BIGINT NOT NULL REFERENCES users(user_id),
		max_players INT NOT NULL,
		starting_balance BIGINT NOT NULL,
		turn_index INT NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'waiting',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS participants (
		id BIGSERIAL PRIMARY KEY,
		game_id BIGINT NOT NULL REFERENCES games(id),
		user_id BIGINT NOT NULL REFERENCES users(user_id),
		token TEXT NOT NULL,
		cash BIGINT NOT NULL,
		position INT NOT NULL DEFAULT 0,
		in_jail BOOLEAN NOT NULL DEFAULT FALSE,
		jail_turns INT NOT NULL DEFAULT 0,
		goojf_cards INT NOT NULL DEFAULT 0,
		is_bankrupt BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (game_id, user_id),
		UNIQUE (game_id, token)
	)`,
	`CREATE TABLE IF NOT EXISTS ownerships (
		id BIGSERIAL PRIMARY KEY,
		game_id BIGINT NOT NULL REFERENCES games(id),
		tile_id BIGINT NOT NULL REFERENCES tiles(id),
		participant_id BIGINT NOT NULL REFERENCES participants(id),
		houses INT NOT NULL DEFAULT 0,
		hotels INT NOT NULL DEFAULT 0,
		is_mortgaged BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (game_id, tile_id)
	)`,
	`CREATE TABLE IF NOT EXISTS turns (
		id BIGSERIAL PRIMARY KEY,
		game_id BIGINT NOT NULL REFERENCES games(id),
		participant_id BIGINT NOT NULL REFERENCES participants(id),
		turn_number INT NOT NULL,
		die1 INT NOT NULL,
		die2 INT NOT NULL,
		is_doubles BOOLEAN NOT NULL DEFAULT FALSE,
		prev_position INT NOT NULL,
		new_position INT NOT NULL,
		action TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (game_id, turn_number)
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id BIGSERIAL PRIMARY KEY,
		game_id BIGINT NOT NULL REFERENCES games(id),
		from_participant_id BIGINT REFERENCES participants(id),
		to_participant_id BIGINT REFERENCES participants(id),
		amount BIGINT NOT NULL,
		type TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		turn_id BIGINT REFERENCES turns(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS card_decks (
		id BIGSERIAL PRIMARY KEY,
		game_id BIGINT NOT NULL REFERENCES games(id),
		deck_type TEXT NOT NULL,
		current_index INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (game_id, deck_type)
	)`,
	`CREATE TABLE IF NOT EXISTS card_draws (
		id BIGSERIAL PRIMARY KEY,
		game_id BIGINT NOT NULL REFERENCES games(id),
		card_id BIGINT NOT NULL REFERENCES cards(id),
		participant_id BIGINT NOT NULL REFERENCES participants(id),
		turn_id BIGINT NOT NULL REFERENCES turns(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS pending_actions (
		id BIGSERIAL PRIMARY KEY,
		game_id BIGINT NOT NULL REFERENCES games(id),
		participant_id BIGINT NOT NULL REFERENCES participants(id),
		action_type TEXT NOT NULL,
		payload JSONB NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS pending_actions_one_open
		ON pending_actions (game_id, participant_id) WHERE status = 'pending'`,
	`CREATE INDEX IF NOT EXISTS transactions_game_idx ON transactions (game_id)`,
	`CREATE INDEX IF NOT EXISTS turns_game_idx ON turns (game_id, turn_number DESC)`,
}

// Migrate creates any missing tables and indexes.
func Migrate(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
