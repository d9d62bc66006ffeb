package repository

import (
	"context"

	"buddylist/backend/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// latestStatusCondition keeps only the newest row of each user. Ties on
// created_at are broken by the larger id, which is time-ordered.
const latestStatusCondition = `id = (
	SELECT s2.id FROM status_updates s2
	WHERE s2.user_id = status_updates.user_id
	ORDER BY s2.created_at DESC, s2.id DESC
	LIMIT 1
)`

// GormStatusRepository implements StatusRepository using GORM.
type GormStatusRepository struct {
	db *gorm.DB
}

// NewGormStatusRepository creates a GORM-backed status log.
func NewGormStatusRepository(db *gorm.DB) *GormStatusRepository {
	return &GormStatusRepository{db: db}
}

// Append adds an entry to the log. Existing rows are never touched.
func (r *GormStatusRepository) Append(ctx context.Context, s *models.StatusUpdate) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return errors.Wrap(err, "append status failed")
	}
	return nil
}

// Latest returns the newest entry of userID, or nil if it has none.
func (r *GormStatusRepository) Latest(ctx context.Context, userID uint) (*models.StatusUpdate, error) {
	var rows []models.StatusUpdate
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "find latest status failed")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// LatestForUsers returns the newest entry of every given user in a single
// query. Users without entries are absent from the map.
func (r *GormStatusRepository) LatestForUsers(ctx context.Context, userIDs []uint) (map[uint]models.StatusUpdate, error) {
	out := make(map[uint]models.StatusUpdate, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	var rows []models.StatusUpdate
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Where(latestStatusCondition).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "find latest statuses failed")
	}
	for _, row := range rows {
		out[row.UserID] = row
	}
	return out, nil
}

// History returns up to limit entries of userID, newest first.
func (r *GormStatusRepository) History(ctx context.Context, userID uint, limit int) ([]models.StatusUpdate, error) {
	rows := make([]models.StatusUpdate, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list status history failed")
	}
	return rows, nil
}

var _ StatusRepository = (*GormStatusRepository)(nil)
