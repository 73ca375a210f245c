package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/you/user-dashboard/internal/domain"
	"github.com/you/user-dashboard/internal/repository"
)

var _ repository.Repo = (*Repo)(nil)

type userRow struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Email    string `db:"email"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:       domain.UserID(strconv.FormatInt(r.ID, 10)),
		Username: r.Username,
		Email:    r.Email,
	}
}

// Repo stores users in a SQLite file. Meant for local development and tests.
type Repo struct {
	db *sqlx.DB
}

// Open opens (or creates) the database at path and applies pending migrations.
func Open(path string) (*Repo, error) {
	if path == "" {
		path = "users.db"
	}
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Repo{db: db}, nil
}

func (r *Repo) Close() error { return r.db.Close() }

func (r *Repo) ListUsers(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, username, email FROM users ORDER BY id`); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toDomain())
	}
	return users, nil
}

func (r *Repo) CreateUser(ctx context.Context, draft domain.UserDraft) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO users (username, email) VALUES (?, ?)`, draft.Username, draft.Email)
	if err != nil {
		return domain.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}
	return userRow{ID: id, Username: draft.Username, Email: draft.Email}.toDomain(), nil
}

func (r *Repo) UpdateUser(ctx context.Context, id domain.UserID, draft domain.UserDraft) (domain.User, error) {
	key, err := strconv.ParseInt(id.String(), 10, 64)
	if err != nil {
		return domain.User{}, repository.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = ?, email = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		draft.Username, draft.Email, key)
	if err != nil {
		return domain.User{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return domain.User{}, err
	} else if n == 0 {
		return domain.User{}, repository.ErrNotFound
	}

	var row userRow
	err = r.db.GetContext(ctx, &row, `SELECT id, username, email FROM users WHERE id = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, repository.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return row.toDomain(), nil
}

func (r *Repo) DeleteUser(ctx context.Context, id domain.UserID) error {
	key, err := strconv.ParseInt(id.String(), 10, 64)
	if err != nil {
		return repository.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, key)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
