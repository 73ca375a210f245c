package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/you/user-dashboard/internal/domain"
	"github.com/you/user-dashboard/internal/repository"
)

var (
	ErrInvalidUser = errors.New("username and email are required")
	ErrNotFound    = errors.New("not found")
)

type UserUsecase struct {
	Repo repository.Repo
}

func NewUserUsecase(r repository.Repo) *UserUsecase {
	return &UserUsecase{Repo: r}
}

func (u *UserUsecase) List(ctx context.Context) ([]domain.User, error) {
	users, err := u.Repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (u *UserUsecase) Create(ctx context.Context, draft domain.UserDraft) (domain.User, error) {
	draft = normalize(draft)
	if !draft.Complete() {
		return domain.User{}, ErrInvalidUser
	}
	return u.Repo.CreateUser(ctx, draft)
}

func (u *UserUsecase) Update(ctx context.Context, id domain.UserID, draft domain.UserDraft) (domain.User, error) {
	draft = normalize(draft)
	if !draft.Complete() {
		return domain.User{}, ErrInvalidUser
	}
	user, err := u.Repo.UpdateUser(ctx, id, draft)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.User{}, ErrNotFound
	}
	return user, err
}

func (u *UserUsecase) Delete(ctx context.Context, id domain.UserID) error {
	if err := u.Repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func normalize(d domain.UserDraft) domain.UserDraft {
	return domain.UserDraft{
		Username: strings.TrimSpace(d.Username),
		Email:    strings.TrimSpace(d.Email),
	}
}
