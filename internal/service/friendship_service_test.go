package service

import (
	"context"
	"testing"
	"time"

	"buddylist/backend/internal/models"
	"buddylist/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestFriendship_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")

	_, err := env.friendships.RequestFriendship(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfReference)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = env.friendships.RequestFriendship(ctx, alice.ID, 9999)
	assert.ErrorIs(t, err, ErrUnknownTarget)

	assert.Zero(t, env.edgeCount(t))
}

func TestRequestFriendship_UniqueInBothDirections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	edge, err := env.friendships.RequestFriendship(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, edge.Status)
	assert.Equal(t, alice.ID, edge.UserID)
	assert.Equal(t, bob.ID, edge.FriendID)
	assert.Equal(t, env.clock.Now(), edge.CreatedAt)
	_, err = uuid.Parse(edge.ID)
	assert.NoError(t, err)

	for _, tc := range []struct {
		name     string
		from, to uint
	}{
		{"same direction", alice.ID, bob.ID},
		{"opposite direction", bob.ID, alice.ID},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.friendships.RequestFriendship(ctx, tc.from, tc.to)
			require.ErrorIs(t, err, ErrDuplicateEdge)

			var svcErr *Error
			require.True(t, errors.As(err, &svcErr))
			assert.Equal(t, models.StatusPending, svcErr.Status)
			assert.Equal(t, KindConflict, svcErr.Kind)
		})
	}
	assert.EqualValues(t, 1, env.edgeCount(t))

	_, err = env.friendships.AcceptFriendship(ctx, edge.ID, bob.ID)
	require.NoError(t, err)

	_, err = env.friendships.RequestFriendship(ctx, bob.ID, alice.ID)
	svcErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, models.StatusAccepted, svcErr.Status)
	assert.Equal(t, "already friends", svcErr.Message)

	require.NoError(t, env.friendships.RemoveFriendship(ctx, Criteria{CounterpartID: alice.ID}, bob.ID))
	_, err = env.friendships.RequestFriendship(ctx, bob.ID, alice.ID)
	assert.NoError(t, err)
}

func TestRequestFriendship_BlockedPair(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	require.NoError(t, env.friendRepo.Create(ctx, &models.Friendship{
		ID:        uuid.NewString(),
		UserID:    bob.ID,
		FriendID:  alice.ID,
		Status:    models.StatusBlocked,
		CreatedAt: env.clock.Now(),
	}))

	_, err := env.friendships.RequestFriendship(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.NotErrorIs(t, err, ErrDuplicateEdge)

	_, err = env.friendships.RequestFriendship(ctx, bob.ID, alice.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.EqualValues(t, 1, env.edgeCount(t))
}

// racingFriendshipRepo lets a competing request for the opposite direction
// land between the pair lookup and the insert.
type racingFriendshipRepo struct {
	repository.FriendshipRepository
	competitor *models.Friendship
	lookups    int
}

func (r *racingFriendshipRepo) FindByPair(ctx context.Context, a, b uint) (*models.Friendship, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, repository.ErrFriendshipNotFound
	}
	return r.FriendshipRepository.FindByPair(ctx, a, b)
}

func (r *racingFriendshipRepo) Create(ctx context.Context, f *models.Friendship) error {
	if r.competitor != nil {
		if err := r.FriendshipRepository.Create(ctx, r.competitor); err != nil {
			return err
		}
		r.competitor = nil
	}
	return r.FriendshipRepository.Create(ctx, f)
}

func TestRequestFriendship_LosingRaceReportsWinner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	winner := &models.Friendship{
		ID:        uuid.NewString(),
		UserID:    bob.ID,
		FriendID:  alice.ID,
		Status:    models.StatusPending,
		CreatedAt: env.clock.Now(),
	}
	racing := &racingFriendshipRepo{FriendshipRepository: env.friendRepo, competitor: winner}
	svc := NewFriendshipService(racing, env.userRepo, env.presence)

	_, err := svc.RequestFriendship(ctx, alice.ID, bob.ID)
	require.ErrorIs(t, err, ErrDuplicateEdge)
	svcErr, _ := AsError(err)
	assert.Equal(t, models.StatusPending, svcErr.Status)
	assert.EqualValues(t, 1, env.edgeCount(t))

	// The loser converges by accepting the winner's request.
	accepted, err := env.friendships.AcceptFriendship(ctx, winner.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, accepted.Status)
}

func TestAcceptFriendship(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	carol := env.user(t, "carol")

	edge, err := env.friendships.RequestFriendship(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	t.Run("initiator is refused", func(t *testing.T) {
		_, err := env.friendships.AcceptFriendship(ctx, edge.ID, alice.ID)
		assert.ErrorIs(t, err, ErrNotAuthorized)
		assert.Equal(t, KindAuthorization, KindOf(err))

		stored, err := env.friendRepo.FindByID(ctx, edge.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, stored.Status)
		assert.Nil(t, stored.AcceptedAt)
	})

	t.Run("outsider is refused", func(t *testing.T) {
		_, err := env.friendships.AcceptFriendship(ctx, edge.ID, carol.ID)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("unknown edge", func(t *testing.T) {
		_, err := env.friendships.AcceptFriendship(ctx, uuid.NewString(), bob.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("target accepts", func(t *testing.T) {
		env.clock.Advance(time.Minute)
		got, err := env.friendships.AcceptFriendship(ctx, edge.ID, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusAccepted, got.Status)
		require.NotNil(t, got.AcceptedAt)
		assert.Equal(t, env.clock.Now(), *got.AcceptedAt)

		stored, err := env.friendRepo.FindByID(ctx, edge.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusAccepted, stored.Status)
		require.NotNil(t, stored.AcceptedAt)
	})

	t.Run("second accept signals already accepted", func(t *testing.T) {
		_, err := env.friendships.AcceptFriendship(ctx, edge.ID, bob.ID)
		assert.ErrorIs(t, err, ErrAlreadyAccepted)
		assert.Equal(t, KindConflict, KindOf(err))
	})
}

func TestAcceptFriendship_BlockedEdge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	blocked := &models.Friendship{
		ID:        uuid.NewString(),
		UserID:    alice.ID,
		FriendID:  bob.ID,
		Status:    models.StatusBlocked,
		CreatedAt: env.clock.Now(),
	}
	require.NoError(t, env.friendRepo.Create(ctx, blocked))

	_, err := env.friendships.AcceptFriendship(ctx, blocked.ID, bob.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	stored, err := env.friendRepo.FindByID(ctx, blocked.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusBlocked, stored.Status)
}

func TestRemoveFriendship(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	carol := env.user(t, "carol")

	t.Run("invalid criteria", func(t *testing.T) {
		err := env.friendships.RemoveFriendship(ctx, Criteria{}, alice.ID)
		assert.ErrorIs(t, err, ErrInvalidCriteria)
	})

	t.Run("request id wins over counterpart", func(t *testing.T) {
		toBob, err := env.friendships.RequestFriendship(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		_, err = env.friendships.RequestFriendship(ctx, alice.ID, carol.ID)
		require.NoError(t, err)

		require.NoError(t, env.friendships.RemoveFriendship(ctx, Criteria{EdgeID: toBob.ID, CounterpartID: carol.ID}, alice.ID))

		_, err = env.friendships.GetFriendship(ctx, Criteria{CounterpartID: bob.ID}, alice.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = env.friendships.GetFriendship(ctx, Criteria{CounterpartID: carol.ID}, alice.ID)
		require.NoError(t, err)

		require.NoError(t, env.friendships.RemoveFriendship(ctx, Criteria{CounterpartID: carol.ID}, alice.ID))
		assert.Zero(t, env.edgeCount(t))
	})

	t.Run("initiator cancels by request id", func(t *testing.T) {
		edge, err := env.friendships.RequestFriendship(ctx, alice.ID, bob.ID)
		require.NoError(t, err)

		require.NoError(t, env.friendships.RemoveFriendship(ctx, Criteria{EdgeID: edge.ID}, alice.ID))
		err = env.friendships.RemoveFriendship(ctx, Criteria{EdgeID: edge.ID}, alice.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Zero(t, env.edgeCount(t))
	})

	t.Run("target rejects by counterpart", func(t *testing.T) {
		_, err := env.friendships.RequestFriendship(ctx, alice.ID, bob.ID)
		require.NoError(t, err)

		require.NoError(t, env.friendships.RemoveFriendship(ctx, Criteria{CounterpartID: alice.ID}, bob.ID))
		err = env.friendships.RemoveFriendship(ctx, Criteria{CounterpartID: alice.ID}, bob.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("either side unfriends", func(t *testing.T) {
		edge, err := env.friendships.RequestFriendship(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		_, err = env.friendships.AcceptFriendship(ctx, edge.ID, bob.ID)
		require.NoError(t, err)

		err = env.friendships.RemoveFriendship(ctx, Criteria{EdgeID: edge.ID}, carol.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.EqualValues(t, 1, env.edgeCount(t))

		require.NoError(t, env.friendships.RemoveFriendship(ctx, Criteria{EdgeID: edge.ID}, bob.ID))
		ids, err := env.friendships.ListFriendIDs(ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("blocked edge is removable", func(t *testing.T) {
		blocked := &models.Friendship{
			ID:        uuid.NewString(),
			UserID:    carol.ID,
			FriendID:  alice.ID,
			Status:    models.StatusBlocked,
			CreatedAt: env.clock.Now(),
		}
		require.NoError(t, env.friendRepo.Create(ctx, blocked))
		require.NoError(t, env.friendships.RemoveFriendship(ctx, Criteria{CounterpartID: carol.ID}, alice.ID))
	})
}

func TestGetFriendship(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	carol := env.user(t, "carol")

	edge, err := env.friendships.RequestFriendship(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	got, err := env.friendships.GetFriendship(ctx, Criteria{CounterpartID: alice.ID}, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, edge.ID, got.ID)

	got, err = env.friendships.GetFriendship(ctx, Criteria{EdgeID: edge.ID}, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.Counterpart(alice.ID))

	_, err = env.friendships.GetFriendship(ctx, Criteria{EdgeID: edge.ID}, carol.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.friendships.GetFriendship(ctx, Criteria{CounterpartID: carol.ID}, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.friendships.GetFriendship(ctx, Criteria{}, alice.ID)
	assert.ErrorIs(t, err, ErrInvalidCriteria)
}

func TestListPendingRequests(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	carol := env.user(t, "carol")
	dave := env.user(t, "dave")

	fromBob, err := env.friendships.RequestFriendship(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	env.clock.Advance(time.Second)
	fromCarol, err := env.friendships.RequestFriendship(ctx, carol.ID, alice.ID)
	require.NoError(t, err)
	toDave, err := env.friendships.RequestFriendship(ctx, alice.ID, dave.ID)
	require.NoError(t, err)

	got, err := env.friendships.ListPendingRequests(ctx, alice.ID)
	require.NoError(t, err)

	require.Len(t, got.Received, 2)
	assert.Equal(t, fromCarol.ID, got.Received[0].RequestID)
	assert.Equal(t, "carol", got.Received[0].Username)
	assert.Equal(t, fromBob.ID, got.Received[1].RequestID)
	assert.Equal(t, bob.ID, got.Received[1].ID)

	require.Len(t, got.Sent, 1)
	assert.Equal(t, toDave.ID, got.Sent[0].RequestID)
	assert.Equal(t, dave.ID, got.Sent[0].ID)

	_, err = env.friendships.AcceptFriendship(ctx, fromBob.ID, alice.ID)
	require.NoError(t, err)
	got, err = env.friendships.ListPendingRequests(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, got.Received, 1)
}

func TestScenario_RequestAcceptThenPresence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "a")
	b := env.user(t, "b")

	edge, err := env.friendships.RequestFriendship(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, edge.Status)
	assert.Equal(t, b.ID, edge.FriendID)

	accepted, err := env.friendships.AcceptFriendship(ctx, edge.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, accepted.Status)
	assert.NotNil(t, accepted.AcceptedAt)

	env.clock.Advance(time.Second)
	_, err = env.presence.UpdateStatus(ctx, a.ID, models.StatusOnline, "back")
	require.NoError(t, err)

	friends, err := env.friendships.ListFriends(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, a.ID, friends[0].ID)
	assert.Equal(t, models.StatusOnline, friends[0].StatusType)
	assert.Equal(t, "back", friends[0].StatusText)
	assert.Equal(t, models.BucketOnline, friends[0].Bucket)
}

func TestScenario_CrossedRequests(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "a")
	b := env.user(t, "b")

	_, err := env.friendships.RequestFriendship(ctx, a.ID, b.ID)
	require.NoError(t, err)

	_, err = env.friendships.RequestFriendship(ctx, b.ID, a.ID)
	svcErr, ok := AsError(err)
	require.True(t, ok)
	assert.ErrorIs(t, err, ErrDuplicateEdge)
	assert.Equal(t, models.StatusPending, svcErr.Status)
	assert.EqualValues(t, 1, env.edgeCount(t))
}
