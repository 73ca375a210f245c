package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/user-dashboard/internal/domain"
)

func seedUsers() []domain.User {
	return []domain.User{
		{ID: "1", Username: "alex", Email: "alex@x.com"},
		{ID: "2", Username: "sam", Email: "sam@x.com"},
		{ID: "3", Username: "kim", Email: "kim@x.com"},
	}
}

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestSync_ListMatchesServer(t *testing.T) {
	remote := newFakeRemote(seedUsers()...)
	s := NewSync(remote)

	require.NoError(t, s.List(context.Background()))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, seedUsers(), s.Users())
}

func TestSync_ListFailureKeepsPriorState(t *testing.T) {
	remote := newFakeRemote(seedUsers()...)
	s := NewSync(remote)
	require.NoError(t, s.List(context.Background()))

	remote.fail = true
	assert.ErrorIs(t, s.List(context.Background()), errRemoteDown)
	assert.Equal(t, seedUsers(), s.Users())
}

func TestSync_CreateAppendsPlaceholder(t *testing.T) {
	remote := newFakeRemote()
	s := NewSync(remote, WithClock(fixedClock(1700000000123)))

	u, err := s.Create(context.Background(), domain.UserDraft{Username: "Alex", Email: "alex@x.com"})
	require.NoError(t, err)

	assert.Equal(t, domain.UserID("1700000000123"), u.ID)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, u, s.Users()[0])
}

func TestSync_CreateThenListReconciles(t *testing.T) {
	remote := newFakeRemote(seedUsers()...)
	s := NewSync(remote, WithClock(fixedClock(42)))
	ctx := context.Background()
	require.NoError(t, s.List(ctx))

	_, err := s.Create(ctx, domain.UserDraft{Username: "Alex", Email: "alex2@x.com"})
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())
	_, ok := s.Find("42")
	assert.True(t, ok)

	require.NoError(t, s.List(ctx))
	assert.Equal(t, 4, s.Len())
	_, ok = s.Find("42")
	assert.False(t, ok, "placeholder id replaced by server id")
	_, ok = s.Find("100")
	assert.True(t, ok)
}

func TestSync_CreateFailureLeavesState(t *testing.T) {
	remote := newFakeRemote()
	remote.fail = true
	s := NewSync(remote)

	_, err := s.Create(context.Background(), domain.UserDraft{Username: "Alex", Email: "alex@x.com"})
	assert.ErrorIs(t, err, errRemoteDown)
	assert.Equal(t, 0, s.Len())
}

func TestSync_UpdateMergesFields(t *testing.T) {
	remote := newFakeRemote(seedUsers()...)
	s := NewSync(remote)
	ctx := context.Background()
	require.NoError(t, s.List(ctx))

	require.NoError(t, s.Update(ctx, "2", domain.UserDraft{Username: "samantha", Email: "samantha@x.com"}))

	got := s.Users()
	assert.Equal(t, domain.User{ID: "2", Username: "samantha", Email: "samantha@x.com"}, got[1])
	assert.Equal(t, seedUsers()[0], got[0])
	assert.Equal(t, seedUsers()[2], got[2])
}

func TestSync_UpdateUnknownIDIsLocalNoop(t *testing.T) {
	remote := newFakeRemote(seedUsers()...)
	s := NewSync(remote)
	ctx := context.Background()
	require.NoError(t, s.List(ctx))

	require.NoError(t, s.Update(ctx, "99", domain.UserDraft{Username: "x", Email: "y"}))
	assert.Equal(t, seedUsers(), s.Users())
}

func TestSync_DeleteRemovesExactlyOne(t *testing.T) {
	remote := newFakeRemote(seedUsers()...)
	s := NewSync(remote)
	ctx := context.Background()
	require.NoError(t, s.List(ctx))

	require.NoError(t, s.Delete(ctx, "2"))

	seed := seedUsers()
	assert.Equal(t, []domain.User{seed[0], seed[2]}, s.Users())
	assert.Equal(t, []string{"list", "delete 2"}, remote.calls)
}

func TestSync_DeleteFailureKeepsUser(t *testing.T) {
	remote := newFakeRemote(seedUsers()...)
	s := NewSync(remote)
	ctx := context.Background()
	require.NoError(t, s.List(ctx))

	remote.fail = true
	assert.ErrorIs(t, s.Delete(ctx, "2"), errRemoteDown)
	assert.Equal(t, 3, s.Len())
}

func TestSync_UsersReturnsCopy(t *testing.T) {
	s := NewSync(newFakeRemote(seedUsers()...))
	require.NoError(t, s.List(context.Background()))

	got := s.Users()
	got[0].Username = "mutated"
	assert.Equal(t, "alex", s.Users()[0].Username)
}

func TestSync_DeletePlaceholderDropsLocalCopy(t *testing.T) {
	remote := newFakeRemote(seedUsers()...)
	s := NewSync(remote, WithClock(fixedClock(1700000000123)))
	ctx := context.Background()
	require.NoError(t, s.List(ctx))

	u, err := s.Create(ctx, domain.UserDraft{Username: "Alex", Email: "alex2@x.com"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, u.ID))
	assert.Equal(t, seedUsers(), s.Users())

	// the server record was never addressed, so it comes back on reload
	require.NoError(t, s.List(ctx))
	_, ok := s.Find("100")
	assert.True(t, ok)
}

func TestSync_UpdatePlaceholderPatchesLocalCopy(t *testing.T) {
	remote := newFakeRemote()
	s := NewSync(remote, WithClock(fixedClock(1700000000123)))
	ctx := context.Background()

	u, err := s.Create(ctx, domain.UserDraft{Username: "Alex", Email: "alex@x.com"})
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, u.ID, domain.UserDraft{Username: "Alexandra", Email: "alex@x.com"}))
	got, ok := s.Find(u.ID)
	require.True(t, ok)
	assert.Equal(t, "Alexandra", got.Username)
	assert.Equal(t, []string{"create", "update 1700000000123"}, remote.calls)
}

func TestSync_ConcurrentCreateAndDelete(t *testing.T) {
	var clock atomic.Int64
	clock.Store(1700000000000)
	remote := newFakeRemote()
	s := NewSync(remote, WithClock(func() time.Time { return time.UnixMilli(clock.Add(1)) }))
	ctx := context.Background()

	const n = 20
	ids := make(chan domain.UserID, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			u, err := s.Create(ctx, domain.UserDraft{Username: "u", Email: "u@x.com"})
			assert.NoError(t, err)
			ids <- u.ID
		}()
		go func() {
			defer wg.Done()
			_ = s.Users()
			_ = s.Len()
		}()
	}
	wg.Wait()
	close(ids)
	require.Equal(t, n, s.Len())

	for id := range ids {
		wg.Add(1)
		go func(id domain.UserID) {
			defer wg.Done()
			assert.NoError(t, s.Delete(ctx, id))
			_, _ = s.Find(id)
		}(id)
	}
	wg.Wait()
	assert.Equal(t, 0, s.Len())
}
