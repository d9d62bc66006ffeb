package service

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"buddylist/backend/internal/models"
	"buddylist/backend/internal/repository"
	pkglog "buddylist/backend/pkg/log"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// IDGenerator hands out unique, increasing event ids.
type IDGenerator interface {
	Next() int64
}

// presenceService implements PresenceService.
type presenceService struct {
	friendships repository.FriendshipRepository
	statuses    repository.StatusRepository
	users       repository.UserRepository
	ids         IDGenerator
	now         func() time.Time
}

// NewPresenceService creates a new PresenceService instance.
func NewPresenceService(
	friendships repository.FriendshipRepository,
	statuses repository.StatusRepository,
	users repository.UserRepository,
	ids IDGenerator,
) PresenceService {
	return &presenceService{
		friendships: friendships,
		statuses:    statuses,
		users:       users,
		ids:         ids,
		now:         time.Now,
	}
}

// offlineSnapshot is the presence of a user who never published a status.
func offlineSnapshot() Snapshot {
	return Snapshot{
		StatusType: models.StatusOffline,
		StatusText: "",
		Bucket:     models.BucketOffline,
	}
}

func snapshotOf(s *models.StatusUpdate) Snapshot {
	at := s.CreatedAt
	return Snapshot{
		StatusType:  s.StatusType,
		StatusText:  s.StatusText,
		LastUpdated: &at,
		Bucket:      s.StatusType.Bucket(),
	}
}

// UpdateStatus appends a status event for userID. Earlier events are kept.
func (s *presenceService) UpdateStatus(ctx context.Context, userID uint, statusType models.StatusType, text string) (*StatusEvent, error) {
	l := pkglog.Ctx(ctx)

	if !statusType.Valid() {
		return nil, ErrInvalidType
	}
	if utf8.RuneCountInString(text) > models.MaxStatusTextLength {
		return nil, ErrTextTooLong
	}

	event := &models.StatusUpdate{
		ID:         s.ids.Next(),
		UserID:     userID,
		StatusType: statusType,
		StatusText: text,
		CreatedAt:  s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.statuses.Append(ctx, event); err != nil {
		l.Error().Err(err).
			Uint(pkglog.FieldUserID, userID).
			Str(pkglog.FieldStatusType, string(statusType)).
			Msg("failed to append status")
		return nil, err
	}

	l.Debug().
		Uint(pkglog.FieldUserID, userID).
		Str(pkglog.FieldStatusType, string(statusType)).
		Msg("status updated")

	return &StatusEvent{
		ID:         event.ID,
		StatusType: event.StatusType,
		StatusText: event.StatusText,
		CreatedAt:  event.CreatedAt,
	}, nil
}

// CurrentStatus returns the newest status of userID, or offline if the user
// never published one.
func (s *presenceService) CurrentStatus(ctx context.Context, userID uint) (*Snapshot, error) {
	latest, err := s.statuses.Latest(ctx, userID)
	if err != nil {
		pkglog.Ctx(ctx).Error().Err(err).Uint(pkglog.FieldUserID, userID).Msg("failed to read current status")
		return nil, err
	}

	snap := offlineSnapshot()
	if latest != nil {
		snap = snapshotOf(latest)
	}
	return &snap, nil
}

// FriendsWithPresence lists every accepted friend of userID with their
// current status. The list is ordered by username compared byte-wise, then
// by user id.
func (s *presenceService) FriendsWithPresence(ctx context.Context, userID uint) ([]FriendPresence, error) {
	l := pkglog.Ctx(ctx)

	friendIDs, err := s.friendships.ListCounterparts(ctx, userID, models.StatusAccepted)
	if err != nil {
		l.Error().Err(err).Uint(pkglog.FieldUserID, userID).Msg("failed to list friends")
		return nil, err
	}
	out := make([]FriendPresence, 0, len(friendIDs))
	if len(friendIDs) == 0 {
		return out, nil
	}

	users, err := s.users.FindByIDs(ctx, friendIDs)
	if err != nil {
		l.Error().Err(err).Uint(pkglog.FieldUserID, userID).Msg("failed to load friend profiles")
		return nil, err
	}
	latest, err := s.statuses.LatestForUsers(ctx, friendIDs)
	if err != nil {
		l.Error().Err(err).Uint(pkglog.FieldUserID, userID).Msg("failed to load friend statuses")
		return nil, err
	}

	for _, id := range friendIDs {
		u, ok := users[id]
		if !ok {
			continue
		}
		snap := offlineSnapshot()
		if ev, ok := latest[id]; ok {
			snap = snapshotOf(&ev)
		}
		out = append(out, FriendPresence{PublicUser: toPublicUser(&u), Snapshot: snap})
	}

	slices.SortFunc(out, func(a, b FriendPresence) int {
		if c := strings.Compare(a.Username, b.Username); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

// History returns the newest status events of userID. limit is clamped to
// 1..MaxHistoryLimit, with zero meaning DefaultHistoryLimit.
func (s *presenceService) History(ctx context.Context, userID uint, limit int) ([]StatusEvent, error) {
	switch {
	case limit == 0:
		limit = DefaultHistoryLimit
	case limit < 1:
		limit = 1
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}

	rows, err := s.statuses.History(ctx, userID, limit)
	if err != nil {
		pkglog.Ctx(ctx).Error().Err(err).
			Uint(pkglog.FieldUserID, userID).
			Int(pkglog.FieldHistoryLimit, limit).
			Msg("failed to read status history")
		return nil, err
	}

	out := make([]StatusEvent, 0, len(rows))
	for _, r := range rows {
		out = append(out, StatusEvent{
			ID:         r.ID,
			StatusType: r.StatusType,
			StatusText: r.StatusText,
			CreatedAt:  r.CreatedAt,
		})
	}
	return out, nil
}

var _ PresenceService = (*presenceService)(nil)
