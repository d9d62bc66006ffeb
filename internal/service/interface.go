package service

import (
	"context"
	"time"

	"buddylist/backend/internal/models"
	"buddylist/backend/internal/repository"
)

// Criteria selects one edge for lookup or removal. At least one field must
// be set; EdgeID wins when both are.
type Criteria struct {
	EdgeID        string
	CounterpartID uint
}

func (c Criteria) validate() error {
	if c.EdgeID == "" && c.CounterpartID == 0 {
		return ErrInvalidCriteria
	}
	return nil
}

func (c Criteria) toRepository() repository.Criteria {
	if c.EdgeID != "" {
		return repository.Criteria{FriendshipID: c.EdgeID}
	}
	return repository.Criteria{CounterpartID: c.CounterpartID}
}

// PublicUser is the identity other users may see.
type PublicUser struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

func toPublicUser(u *models.User) PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}
}

// Snapshot is the derived current presence of one user.
type Snapshot struct {
	StatusType  models.StatusType     `json:"status_type"`
	StatusText  string                `json:"status_text"`
	LastUpdated *time.Time            `json:"last_updated"`
	Bucket      models.PresenceBucket `json:"bucket"`
}

// FriendPresence is one row of a friend list.
type FriendPresence struct {
	PublicUser
	Snapshot
}

// PendingRequest is one side of a pending edge as seen by a participant.
type PendingRequest struct {
	PublicUser
	RequestID string    `json:"request_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PendingRequests groups pending edges by direction.
type PendingRequests struct {
	Received []PendingRequest `json:"received"`
	Sent     []PendingRequest `json:"sent"`
}

// StatusEvent is one published status.
type StatusEvent struct {
	ID         int64             `json:"id,string"`
	StatusType models.StatusType `json:"status_type"`
	StatusText string            `json:"status_text"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Profile is the signed-in user together with their own presence.
type Profile struct {
	PublicUser
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Status    Snapshot  `json:"status"`
}

// FriendshipService runs the friend request lifecycle.
type FriendshipService interface {
	RequestFriendship(ctx context.Context, initiatorID, targetID uint) (*models.Friendship, error)
	AcceptFriendship(ctx context.Context, edgeID string, actingUserID uint) (*models.Friendship, error)
	RemoveFriendship(ctx context.Context, c Criteria, actingUserID uint) error
	GetFriendship(ctx context.Context, c Criteria, viewerID uint) (*models.Friendship, error)
	ListFriendIDs(ctx context.Context, userID uint) ([]uint, error)
	ListPendingRequests(ctx context.Context, userID uint) (*PendingRequests, error)
	ListFriends(ctx context.Context, userID uint) ([]FriendPresence, error)
}

// PresenceService records and aggregates status events.
type PresenceService interface {
	UpdateStatus(ctx context.Context, userID uint, statusType models.StatusType, text string) (*StatusEvent, error)
	CurrentStatus(ctx context.Context, userID uint) (*Snapshot, error)
	FriendsWithPresence(ctx context.Context, userID uint) ([]FriendPresence, error)
	History(ctx context.Context, userID uint, limit int) ([]StatusEvent, error)
}

// UserService handles accounts and the user directory.
type UserService interface {
	Register(ctx context.Context, email, username, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Profile(ctx context.Context, userID uint) (*Profile, error)
	Search(ctx context.Context, query string, excludeID uint) ([]PublicUser, error)
}
