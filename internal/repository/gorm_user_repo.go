package repository

import (
	"context"
	"strings"

	"buddylist/backend/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a GORM-backed user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUser
		}
		return errors.Wrap(err, "insert user failed")
	}
	return nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "find user by id failed")
	}
	return &u, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "find user by email failed")
	}
	return &u, nil
}

// ExistsByUsernameOrEmail reports which of the two identifiers is in use.
func (r *GormUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, bool, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Select("username", "email").
		Where("username = ? OR email = ?", username, email).
		Find(&users).Error
	if err != nil {
		return false, false, errors.Wrap(err, "check user existence failed")
	}

	var usernameTaken, emailTaken bool
	for _, u := range users {
		if u.Username == username {
			usernameTaken = true
		}
		if u.Email == email {
			emailTaken = true
		}
	}
	return usernameTaken, emailTaken, nil
}

func (r *GormUserRepository) UserExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "count users failed")
	}
	return count > 0, nil
}

// DisplayName returns the name shown to other users. It is the username.
func (r *GormUserRepository) DisplayName(ctx context.Context, id uint) (string, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// FindByIDs loads the given users in one query. Unknown ids are skipped.
func (r *GormUserRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]models.User, error) {
	out := make(map[uint]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "find users by ids failed")
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// Search matches query case-insensitively against username and email,
// excluding excludeID. Results are ordered by username.
func (r *GormUserRepository) Search(ctx context.Context, query string, excludeID uint, page, limit int) (*Page[models.User], error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	q := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id <> ?", excludeID).
		Where("(LOWER(username) LIKE ? ESCAPE '!' OR LOWER(email) LIKE ? ESCAPE '!')", pattern, pattern).
		Order("username").Order("id")

	result, err := Paginate[models.User](q, page, limit)
	if err != nil {
		return nil, errors.Wrap(err, "search users failed")
	}
	return result, nil
}

var likeEscaper = strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)

// escapeLike makes query match literally inside a LIKE pattern.
func escapeLike(query string) string {
	return likeEscaper.Replace(query)
}

var _ UserRepository = (*GormUserRepository)(nil)
