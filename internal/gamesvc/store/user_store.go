package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

type UserStore struct {
	db Querier
}

func NewUserStore(db Querier) *UserStore {
	return &UserStore{db: db}
}

func (r *UserStore) CreateUser(ctx context.Context, user models.User) (int64, error) {
	var userId int64

	query := `
        INSERT INTO users (user_id, name, email, phone, avatar, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING user_id;
    `

	err := r.db.QueryRow(ctx, query, user.UserId, user.Name, user.Email, user.Phone, user.Avatar, user.Status).Scan(&userId)
	if err != nil {
		return 0, fmt.Errorf("could not create user: %w", err)
	}

	return userId, nil
}

func (r *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
        SELECT user_id, name, email, phone, avatar, status, created_at, updated_at
        FROM users
        WHERE user_id = $1
    `, id)

	u := &models.User{}
	err := row.Scan(
		&u.UserId,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.Avatar,
		&u.Status,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return u, nil
}
