package dashboard

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/you/user-dashboard/internal/client"
	"github.com/you/user-dashboard/internal/domain"
)

var errRemoteDown = errors.New("remote down")

// fakeRemote mimics the /users resource: ids are assigned server side.
type fakeRemote struct {
	mu     sync.Mutex
	users  []domain.User
	nextID int
	fail   bool
	calls  []string
}

func newFakeRemote(users ...domain.User) *fakeRemote {
	return &fakeRemote{users: users, nextID: 100}
}

func (f *fakeRemote) record(call string) error {
	f.calls = append(f.calls, call)
	if f.fail {
		return errRemoteDown
	}
	return nil
}

func (f *fakeRemote) notFound(method string, id domain.UserID) error {
	for _, u := range f.users {
		if u.ID == id {
			return nil
		}
	}
	return &client.StatusError{Method: method, Path: "/users/" + id.String(), StatusCode: http.StatusNotFound}
}

func (f *fakeRemote) ListUsers(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("list"); err != nil {
		return nil, err
	}
	return append([]domain.User(nil), f.users...), nil
}

func (f *fakeRemote) CreateUser(ctx context.Context, draft domain.UserDraft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("create"); err != nil {
		return err
	}
	f.users = append(f.users, domain.User{ID: domain.UserID(strconv.Itoa(f.nextID)), Username: draft.Username, Email: draft.Email})
	f.nextID++
	return nil
}

func (f *fakeRemote) UpdateUser(ctx context.Context, id domain.UserID, draft domain.UserDraft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("update " + id.String()); err != nil {
		return err
	}
	if err := f.notFound(http.MethodPut, id); err != nil {
		return err
	}
	for i, u := range f.users {
		if u.ID == id {
			f.users[i] = u.Apply(draft)
		}
	}
	return nil
}

func (f *fakeRemote) DeleteUser(ctx context.Context, id domain.UserID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("delete " + id.String()); err != nil {
		return err
	}
	if err := f.notFound(http.MethodDelete, id); err != nil {
		return err
	}
	kept := f.users[:0]
	for _, u := range f.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	f.users = kept
	return nil
}
