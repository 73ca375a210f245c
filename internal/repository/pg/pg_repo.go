package pg

import (
	"context"
	_ "embed"
	"errors"
	"strconv"
	"time"

	"github.com/you/user-dashboard/internal/domain"
	"github.com/you/user-dashboard/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ repository.Repo = (*PGRepo)(nil)

//go:embed schema.sql
var schemaSQL string

type PGRepo struct {
	pool *pgxpool.Pool
}

func NewPGRepo(pool *pgxpool.Pool) *PGRepo {
	return &PGRepo{pool: pool}
}

// EnsureSchema creates the users table if it does not exist yet.
func (p *PGRepo) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schemaSQL)
	return err
}

func (p *PGRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := p.pool.Query(ctx, "SELECT id, username, email FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (p *PGRepo) CreateUser(ctx context.Context, draft domain.UserDraft) (domain.User, error) {
	row := p.pool.QueryRow(ctx,
		"INSERT INTO users (username, email) VALUES ($1, $2) RETURNING id, username, email",
		draft.Username, draft.Email)
	return scanUser(row)
}

func (p *PGRepo) UpdateUser(ctx context.Context, id domain.UserID, draft domain.UserDraft) (domain.User, error) {
	key, ok := parseID(id)
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	row := p.pool.QueryRow(ctx, `
        UPDATE users SET username=$1, email=$2, updated_at=$3
        WHERE id=$4
        RETURNING id, username, email
    `, draft.Username, draft.Email, time.Now().UTC(), key)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, repository.ErrNotFound
	}
	return u, err
}

func (p *PGRepo) DeleteUser(ctx context.Context, id domain.UserID) error {
	key, ok := parseID(id)
	if !ok {
		return repository.ErrNotFound
	}
	tag, err := p.pool.Exec(ctx, "DELETE FROM users WHERE id=$1", key)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u  domain.User
		id int64
	)
	if err := row.Scan(&id, &u.Username, &u.Email); err != nil {
		return domain.User{}, err
	}
	u.ID = domain.UserID(strconv.FormatInt(id, 10))
	return u, nil
}

func parseID(id domain.UserID) (int64, bool) {
	n, err := strconv.ParseInt(id.String(), 10, 64)
	return n, err == nil
}
