package models

import (
	"strconv"
	"time"
)

// FriendshipStatus defines the state of a relationship between two users.
type FriendshipStatus string

const (
	// StatusPending means a friend request has been sent but not yet accepted.
	StatusPending FriendshipStatus = "pending"

	// StatusAccepted means the target accepted the request and the users are friends.
	StatusAccepted FriendshipStatus = "accepted"

	// StatusBlocked is set only by moderation tooling outside this service.
	// While present it prevents either user from sending a new request.
	StatusBlocked FriendshipStatus = "blocked"
)

// Friendship is one edge of the friend graph. UserID is the initiator and
// FriendID the target. PairKey is the same for both directions, and its
// unique index guarantees a single row per pair of users.
type Friendship struct {
	ID         string           `gorm:"type:varchar(36);primaryKey"`
	UserID     uint             `gorm:"not null;index"`
	FriendID   uint             `gorm:"not null;index"`
	PairKey    string           `gorm:"type:varchar(64);not null;uniqueIndex"`
	Status     FriendshipStatus `gorm:"type:varchar(20);not null;index"`
	CreatedAt  time.Time        `gorm:"not null"`
	AcceptedAt *time.Time

	User   User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Friend User `gorm:"foreignKey:FriendID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// PairKey returns the canonical key of the unordered pair {a, b}.
func PairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return strconv.FormatUint(uint64(a), 10) + ":" + strconv.FormatUint(uint64(b), 10)
}

// Involves reports whether userID is the initiator or the target.
func (f *Friendship) Involves(userID uint) bool {
	return f.UserID == userID || f.FriendID == userID
}

// Counterpart returns the other participant as seen from userID.
func (f *Friendship) Counterpart(userID uint) uint {
	if f.UserID == userID {
		return f.FriendID
	}
	return f.UserID
}
