package repository

import (
	"context"
	"errors"

	"github.com/you/user-dashboard/internal/domain"
)

var ErrNotFound = errors.New("not found")

// Repo is the persistence behind the /users resource.
type Repo interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, draft domain.UserDraft) (domain.User, error)
	UpdateUser(ctx context.Context, id domain.UserID, draft domain.UserDraft) (domain.User, error)
	DeleteUser(ctx context.Context, id domain.UserID) error
}
