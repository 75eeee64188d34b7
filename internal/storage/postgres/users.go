package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/model"
)

const userColumns = `id, name, login, password_hash, avatar_url, balance, role, created_at`

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = model.DefaultRole
	}

	const query = `INSERT INTO users (id, name, login, password_hash, avatar_url, balance, role)
                   VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		user.ID, user.Name, user.Login, user.PasswordHash, user.AvatarURL, user.Balance, string(user.Role),
	).Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE login=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id, avatarURL string) error {
	const query = `UPDATE users SET avatar_url=$1 WHERE id=$2`
	return r.exec(ctx, query, avatarURL, id)
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE users SET password_hash=$1 WHERE id=$2`
	return r.exec(ctx, query, passwordHash, id)
}

func (r *userRepository) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.storage.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE role=$1 ORDER BY name ASC, id ASC`
	rows, err := r.storage.pool.Query(ctx, query, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByRole removes the user only when it holds role. Events cascade.
func (r *userRepository) DeleteByRole(ctx context.Context, id string, role model.Role) error {
	const query = `DELETE FROM users WHERE id=$1 AND role=$2`
	return r.exec(ctx, query, id, string(role))
}

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		u    model.User
		role string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Login, &u.PasswordHash, &u.AvatarURL, &u.Balance, &role, &u.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	u.Role = model.Role(role)
	return &u, nil
}
