package service

import (
	"context"
	"time"

	"buddylist/backend/internal/models"
	"buddylist/backend/internal/repository"
	pkglog "buddylist/backend/pkg/log"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// friendshipService implements FriendshipService.
type friendshipService struct {
	friendships repository.FriendshipRepository
	users       repository.UserRepository
	presence    PresenceService
	now         func() time.Time
}

// NewFriendshipService creates a new FriendshipService instance.
func NewFriendshipService(
	friendships repository.FriendshipRepository,
	users repository.UserRepository,
	presence PresenceService,
) FriendshipService {
	return &friendshipService{
		friendships: friendships,
		users:       users,
		presence:    presence,
		now:         time.Now,
	}
}

// existingEdgeError explains why a request cannot be created when an edge
// for the pair is already stored.
func existingEdgeError(existing *models.Friendship) error {
	if existing.Status == models.StatusBlocked {
		return ErrPermissionDenied
	}
	return duplicateEdge(existing.Status)
}

// RequestFriendship creates a pending edge from initiatorID to targetID.
//
// The pair lookup only serves error messages. Two concurrent requests for
// the same pair are decided by the unique pair key: the loser re-reads the
// winning edge and reports its status.
func (s *friendshipService) RequestFriendship(ctx context.Context, initiatorID, targetID uint) (*models.Friendship, error) {
	l := pkglog.Ctx(ctx).With().
		Uint(pkglog.FieldUserID, initiatorID).
		Uint(pkglog.FieldTargetID, targetID).
		Logger()

	if initiatorID == targetID {
		return nil, ErrSelfReference
	}

	exists, err := s.users.UserExists(ctx, targetID)
	if err != nil {
		l.Error().Err(err).Msg("failed to check target user")
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownTarget
	}

	existing, err := s.friendships.FindByPair(ctx, initiatorID, targetID)
	switch {
	case err == nil:
		return nil, existingEdgeError(existing)
	case !errors.Is(err, repository.ErrFriendshipNotFound):
		l.Error().Err(err).Msg("failed to look up existing friendship")
		return nil, err
	}

	edge := &models.Friendship{
		ID:        uuid.NewString(),
		UserID:    initiatorID,
		FriendID:  targetID,
		Status:    models.StatusPending,
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.friendships.Create(ctx, edge); err != nil {
		if !errors.Is(err, repository.ErrDuplicatePair) {
			l.Error().Err(err).Msg("failed to create friendship")
			return nil, err
		}

		winner, findErr := s.friendships.FindByPair(ctx, initiatorID, targetID)
		if findErr != nil {
			// The winning edge was removed again before we could read it.
			l.Warn().Err(findErr).Msg("lost friend request race, winner not readable")
			return nil, ErrDuplicateEdge
		}
		l.Info().
			Str(pkglog.FieldFriendshipID, winner.ID).
			Str(pkglog.FieldEdgeStatus, string(winner.Status)).
			Msg("lost friend request race")
		return nil, existingEdgeError(winner)
	}

	l.Info().Str(pkglog.FieldFriendshipID, edge.ID).Msg("friend request sent")
	return edge, nil
}

// acceptError checks whether actingUserID may accept edge in its current
// state.
func acceptError(edge *models.Friendship, actingUserID uint) error {
	if edge.FriendID != actingUserID {
		return ErrNotAuthorized
	}
	switch edge.Status {
	case models.StatusAccepted:
		return ErrAlreadyAccepted
	case models.StatusBlocked:
		return ErrPermissionDenied
	}
	return nil
}

// AcceptFriendship moves a pending edge to accepted. Only the stored target
// may accept.
func (s *friendshipService) AcceptFriendship(ctx context.Context, edgeID string, actingUserID uint) (*models.Friendship, error) {
	l := pkglog.Ctx(ctx).With().
		Uint(pkglog.FieldUserID, actingUserID).
		Str(pkglog.FieldFriendshipID, edgeID).
		Logger()

	edge, err := s.loadEdge(ctx, edgeID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			l.Error().Err(err).Msg("failed to load friend request")
		}
		return nil, err
	}
	if err := acceptError(edge, actingUserID); err != nil {
		return nil, err
	}

	at := s.now().UTC().Truncate(time.Microsecond)
	n, err := s.friendships.MarkAccepted(ctx, edgeID, actingUserID, at)
	if err != nil {
		l.Error().Err(err).Msg("failed to accept friend request")
		return nil, err
	}
	if n == 0 {
		// Changed between the read and the update; report the fresh state.
		fresh, err := s.loadEdge(ctx, edgeID)
		if err != nil {
			return nil, err
		}
		if err := acceptError(fresh, actingUserID); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}

	edge.Status = models.StatusAccepted
	edge.AcceptedAt = &at
	l.Info().Msg("friend request accepted")
	return edge, nil
}

func (s *friendshipService) loadEdge(ctx context.Context, edgeID string) (*models.Friendship, error) {
	edge, err := s.friendships.FindByID(ctx, edgeID)
	if err != nil {
		if errors.Is(err, repository.ErrFriendshipNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return edge, nil
}

// RemoveFriendship deletes the selected edge whatever its status. It covers
// cancelling a sent request, rejecting a received one and unfriending.
func (s *friendshipService) RemoveFriendship(ctx context.Context, c Criteria, actingUserID uint) error {
	if err := c.validate(); err != nil {
		return err
	}

	n, err := s.friendships.Delete(ctx, c.toRepository(), actingUserID)
	if err != nil {
		pkglog.Ctx(ctx).Error().Err(err).
			Uint(pkglog.FieldUserID, actingUserID).
			Msg("failed to remove friendship")
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	pkglog.Ctx(ctx).Info().
		Uint(pkglog.FieldUserID, actingUserID).
		Str(pkglog.FieldFriendshipID, c.EdgeID).
		Uint(pkglog.FieldTargetID, c.CounterpartID).
		Msg("friendship removed")
	return nil
}

// GetFriendship returns the selected edge if viewerID participates in it.
// Edges of other users are reported as not found.
func (s *friendshipService) GetFriendship(ctx context.Context, c Criteria, viewerID uint) (*models.Friendship, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	var (
		edge *models.Friendship
		err  error
	)
	if c.EdgeID != "" {
		edge, err = s.friendships.FindByID(ctx, c.EdgeID)
	} else {
		edge, err = s.friendships.FindByPair(ctx, viewerID, c.CounterpartID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrFriendshipNotFound) {
			return nil, ErrNotFound
		}
		pkglog.Ctx(ctx).Error().Err(err).Uint(pkglog.FieldUserID, viewerID).Msg("failed to get friendship")
		return nil, err
	}
	if !edge.Involves(viewerID) {
		return nil, ErrNotFound
	}
	return edge, nil
}

// ListFriendIDs returns the ids of every accepted friend of userID.
func (s *friendshipService) ListFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids, err := s.friendships.ListCounterparts(ctx, userID, models.StatusAccepted)
	if err != nil {
		pkglog.Ctx(ctx).Error().Err(err).Uint(pkglog.FieldUserID, userID).Msg("failed to list friend ids")
		return nil, err
	}
	return ids, nil
}

// ListPendingRequests returns the requests userID has received and sent,
// newest first, with the other user's public profile.
func (s *friendshipService) ListPendingRequests(ctx context.Context, userID uint) (*PendingRequests, error) {
	l := pkglog.Ctx(ctx)

	pending, err := s.friendships.ListPending(ctx, userID)
	if err != nil {
		l.Error().Err(err).Uint(pkglog.FieldUserID, userID).Msg("failed to list pending requests")
		return nil, err
	}

	ids := make([]uint, 0, len(pending.Received)+len(pending.Sent))
	for i := range pending.Received {
		ids = append(ids, pending.Received[i].UserID)
	}
	for i := range pending.Sent {
		ids = append(ids, pending.Sent[i].FriendID)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		l.Error().Err(err).Uint(pkglog.FieldUserID, userID).Msg("failed to load request profiles")
		return nil, err
	}

	return &PendingRequests{
		Received: pendingViews(pending.Received, users, userID),
		Sent:     pendingViews(pending.Sent, users, userID),
	}, nil
}

func pendingViews(edges []models.Friendship, users map[uint]models.User, viewerID uint) []PendingRequest {
	out := make([]PendingRequest, 0, len(edges))
	for i := range edges {
		u, ok := users[edges[i].Counterpart(viewerID)]
		if !ok {
			continue
		}
		out = append(out, PendingRequest{
			PublicUser: toPublicUser(&u),
			RequestID:  edges[i].ID,
			CreatedAt:  edges[i].CreatedAt,
		})
	}
	return out
}

// ListFriends returns the friends of userID with their presence.
func (s *friendshipService) ListFriends(ctx context.Context, userID uint) ([]FriendPresence, error) {
	return s.presence.FriendsWithPresence(ctx, userID)
}

var _ FriendshipService = (*friendshipService)(nil)
