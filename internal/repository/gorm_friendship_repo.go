package repository

import (
	"context"
	"time"

	"buddylist/backend/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// isUniqueViolation reports whether err is a unique-constraint violation.
// Requires gorm.Config.TranslateError.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// GormFriendshipRepository implements FriendshipRepository using GORM.
type GormFriendshipRepository struct {
	db *gorm.DB
}

// NewGormFriendshipRepository creates a GORM-backed friendship repository.
func NewGormFriendshipRepository(db *gorm.DB) *GormFriendshipRepository {
	return &GormFriendshipRepository{db: db}
}

// Create inserts a new edge. PairKey is always derived here so callers
// cannot bypass the uniqueness check. A second edge for the same pair, in
// either direction, fails with ErrDuplicatePair.
func (r *GormFriendshipRepository) Create(ctx context.Context, f *models.Friendship) error {
	f.PairKey = models.PairKey(f.UserID, f.FriendID)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(f).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePair
		}
		return errors.Wrap(err, "insert friendship failed")
	}
	return nil
}

// FindByID returns the edge with the given id.
func (r *GormFriendshipRepository) FindByID(ctx context.Context, id string) (*models.Friendship, error) {
	var f models.Friendship
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrFriendshipNotFound
		}
		return nil, errors.Wrap(err, "find friendship by id failed")
	}
	return &f, nil
}

// FindByPair returns the edge between a and b regardless of direction.
func (r *GormFriendshipRepository) FindByPair(ctx context.Context, a, b uint) (*models.Friendship, error) {
	var f models.Friendship
	if err := r.db.WithContext(ctx).Where("pair_key = ?", models.PairKey(a, b)).First(&f).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrFriendshipNotFound
		}
		return nil, errors.Wrap(err, "find friendship by pair failed")
	}
	return &f, nil
}

// MarkAccepted moves a pending edge to accepted in one conditional UPDATE.
// Only the stored target can match. It returns the number of rows changed,
// so zero means the edge is gone, belongs to someone else, or is no longer
// pending.
func (r *GormFriendshipRepository) MarkAccepted(ctx context.Context, id string, targetID uint, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("id = ? AND friend_id = ? AND status = ?", id, targetID, models.StatusPending).
		Updates(map[string]interface{}{
			"status":      models.StatusAccepted,
			"accepted_at": at,
		})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "accept friendship failed")
	}
	return result.RowsAffected, nil
}

// Delete removes the edge matched by c whatever its status, but only if
// actingUserID participates in it.
func (r *GormFriendshipRepository) Delete(ctx context.Context, c Criteria, actingUserID uint) (int64, error) {
	q := r.db.WithContext(ctx)
	switch {
	case c.FriendshipID != "":
		q = q.Where("id = ? AND (user_id = ? OR friend_id = ?)", c.FriendshipID, actingUserID, actingUserID)
	case c.CounterpartID != 0:
		if c.CounterpartID == actingUserID {
			return 0, nil
		}
		q = q.Where("pair_key = ?", models.PairKey(actingUserID, c.CounterpartID))
	default:
		return 0, errors.New("delete friendship: empty criteria")
	}

	result := q.Delete(&models.Friendship{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "delete friendship failed")
	}
	return result.RowsAffected, nil
}

// ListCounterparts returns the other participant of every edge of userID in
// the given status.
func (r *GormFriendshipRepository) ListCounterparts(ctx context.Context, userID uint, status models.FriendshipStatus) ([]uint, error) {
	var edges []models.Friendship
	err := r.db.WithContext(ctx).
		Select("user_id", "friend_id").
		Where("(user_id = ? OR friend_id = ?) AND status = ?", userID, userID, status).
		Find(&edges).Error
	if err != nil {
		return nil, errors.Wrap(err, "list counterparts failed")
	}

	ids := make([]uint, 0, len(edges))
	for i := range edges {
		ids = append(ids, edges[i].Counterpart(userID))
	}
	return ids, nil
}

// ListPending returns the pending requests userID has received and sent,
// newest first.
func (r *GormFriendshipRepository) ListPending(ctx context.Context, userID uint) (*PendingRequests, error) {
	var out PendingRequests
	db := r.db.WithContext(ctx)

	err := db.Where("friend_id = ? AND status = ?", userID, models.StatusPending).
		Order("created_at DESC").Order("id").
		Find(&out.Received).Error
	if err != nil {
		return nil, errors.Wrap(err, "list received requests failed")
	}

	err = db.Where("user_id = ? AND status = ?", userID, models.StatusPending).
		Order("created_at DESC").Order("id").
		Find(&out.Sent).Error
	if err != nil {
		return nil, errors.Wrap(err, "list sent requests failed")
	}
	return &out, nil
}

var _ FriendshipRepository = (*GormFriendshipRepository)(nil)
