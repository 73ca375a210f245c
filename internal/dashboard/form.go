package dashboard

import (
	"context"
	"sync"

	"github.com/samber/mo"

	"github.com/you/user-dashboard/internal/domain"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// FormState is a snapshot of the form: the edit buffer and the user being edited.
type FormState struct {
	Username  string
	Email     string
	EditingID mo.Option[domain.UserID]
}

func (f FormState) Mode() Mode {
	if f.EditingID.IsPresent() {
		return ModeEdit
	}
	return ModeCreate
}

func (f FormState) Draft() domain.UserDraft {
	return domain.UserDraft{Username: f.Username, Email: f.Email}
}

// Form is the create/edit buffer. Submissions go through a Sync.
type Form struct {
	sync *Sync

	mu    sync.Mutex
	state FormState
}

func NewForm(s *Sync) *Form {
	return &Form{sync: s, state: FormState{EditingID: mo.None[domain.UserID]()}}
}

func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form) SetUsername(v string) {
	f.mu.Lock()
	f.state.Username = v
	f.mu.Unlock()
}

func (f *Form) SetEmail(v string) {
	f.mu.Lock()
	f.state.Email = v
	f.mu.Unlock()
}

// Edit loads u into the buffer and switches to edit mode.
func (f *Form) Edit(u domain.User) {
	f.mu.Lock()
	d := u.Draft()
	f.state = FormState{Username: d.Username, Email: d.Email, EditingID: mo.Some(u.ID)}
	f.mu.Unlock()
}

// Cancel clears the buffer and leaves edit mode.
func (f *Form) Cancel() {
	f.mu.Lock()
	f.reset()
	f.mu.Unlock()
}

func (f *Form) reset() {
	f.state = FormState{EditingID: mo.None[domain.UserID]()}
}

// Submit creates or updates depending on the mode. With an empty username or email
// it does nothing and reports false. A failed remote call keeps the buffer intact.
func (f *Form) Submit(ctx context.Context) (bool, error) {
	snapshot := f.State()
	draft := snapshot.Draft()
	if !draft.Complete() {
		return false, nil
	}

	var err error
	if id, ok := snapshot.EditingID.Get(); ok {
		err = f.sync.Update(ctx, id, draft)
	} else {
		_, err = f.sync.Create(ctx, draft)
	}
	if err != nil {
		return false, err
	}

	f.mu.Lock()
	f.reset()
	f.mu.Unlock()
	return true, nil
}
