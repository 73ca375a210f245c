// Package dashboard holds the dashboard's local state: the user list mirrored from
// the remote store and the create/edit form.
package dashboard

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/you/user-dashboard/internal/client"
	"github.com/you/user-dashboard/internal/domain"
)

// RemoteStore is the REST collection the dashboard mirrors.
type RemoteStore interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, draft domain.UserDraft) error
	UpdateUser(ctx context.Context, id domain.UserID, draft domain.UserDraft) error
	DeleteUser(ctx context.Context, id domain.UserID) error
}

// Sync keeps a local, optimistically patched copy of the remote user list.
// Every operation calls the remote store first and touches local state only
// after that call succeeds. The lock is never held across a remote call.
type Sync struct {
	remote RemoteStore
	now    func() time.Time

	mu    sync.Mutex
	users []domain.User
}

type SyncOption func(*Sync)

// WithClock sets the time source for placeholder ids of created users.
func WithClock(now func() time.Time) SyncOption {
	return func(s *Sync) {
		s.now = now
	}
}

func NewSync(remote RemoteStore, opts ...SyncOption) *Sync {
	s := &Sync{remote: remote, now: time.Now, users: []domain.User{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List replaces local state with the remote list. On error the previous state stays.
func (s *Sync) List(ctx context.Context) error {
	users, err := s.remote.ListUsers(ctx)
	if err != nil {
		return err
	}
	fresh := make([]domain.User, len(users))
	copy(fresh, users)

	s.mu.Lock()
	s.users = fresh
	s.mu.Unlock()
	return nil
}

// Create posts the draft and appends a local copy whose id is a client timestamp.
// The placeholder is only replaced by the server id on the next List.
func (s *Sync) Create(ctx context.Context, draft domain.UserDraft) (domain.User, error) {
	if err := s.remote.CreateUser(ctx, draft); err != nil {
		return domain.User{}, err
	}
	u := domain.User{
		ID:       domain.UserID(strconv.FormatInt(s.now().UnixMilli(), 10)),
		Username: draft.Username,
		Email:    draft.Email,
	}

	s.mu.Lock()
	s.users = append(s.users, u)
	s.mu.Unlock()
	return u, nil
}

// Update puts the draft and merges it into the matching local record, if any.
// A 404 still patches the local record: a placeholder id is unknown to the server.
func (s *Sync) Update(ctx context.Context, id domain.UserID, draft domain.UserDraft) error {
	if err := s.remote.UpdateUser(ctx, id, draft); err != nil && !client.IsNotFound(err) {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users[i] = u.Apply(draft)
		}
	}
	return nil
}

// Delete removes the user remotely, then drops it locally keeping the order of the rest.
// A 404 counts as success, so placeholder records can always be removed.
func (s *Sync) Delete(ctx context.Context, id domain.UserID) error {
	if err := s.remote.DeleteUser(ctx, id); err != nil && !client.IsNotFound(err) {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.users = kept
	return nil
}

// Users returns a copy of the local list.
func (s *Sync) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

// Find looks a user up in local state.
func (s *Sync) Find(id domain.UserID) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

func (s *Sync) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}
