package repository

import (
	"context"
	"time"

	"buddylist/backend/internal/models"

	"github.com/pkg/errors"
)

var (
	ErrFriendshipNotFound = errors.New("friendship not found")
	ErrDuplicatePair      = errors.New("friendship already exists for this pair")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("username or email already exists")
)

// Criteria selects one edge: by its id, or by the counterpart of the acting
// user. Exactly one field is set.
type Criteria struct {
	FriendshipID  string
	CounterpartID uint
}

// PendingRequests are the pending edges a user has received and sent.
type PendingRequests struct {
	Received []models.Friendship
	Sent     []models.Friendship
}

// FriendshipRepository persists friendship edges.
type FriendshipRepository interface {
	Create(ctx context.Context, f *models.Friendship) error
	FindByID(ctx context.Context, id string) (*models.Friendship, error)
	FindByPair(ctx context.Context, a, b uint) (*models.Friendship, error)
	MarkAccepted(ctx context.Context, id string, targetID uint, at time.Time) (int64, error)
	Delete(ctx context.Context, c Criteria, actingUserID uint) (int64, error)
	ListCounterparts(ctx context.Context, userID uint, status models.FriendshipStatus) ([]uint, error)
	ListPending(ctx context.Context, userID uint) (*PendingRequests, error)
}

// StatusRepository is the append-only presence log.
type StatusRepository interface {
	Append(ctx context.Context, s *models.StatusUpdate) error
	Latest(ctx context.Context, userID uint) (*models.StatusUpdate, error)
	LatestForUsers(ctx context.Context, userIDs []uint) (map[uint]models.StatusUpdate, error)
	History(ctx context.Context, userID uint, limit int) ([]models.StatusUpdate, error)
}

// UserRepository stores accounts and answers identity lookups.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (usernameTaken, emailTaken bool, err error)
	UserExists(ctx context.Context, id uint) (bool, error)
	DisplayName(ctx context.Context, id uint) (string, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]models.User, error)
	Search(ctx context.Context, query string, excludeID uint, page, limit int) (*Page[models.User], error)
}
