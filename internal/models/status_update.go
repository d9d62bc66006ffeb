package models

import "time"

// StatusType is the presence a user publishes.
type StatusType string

const (
	StatusOnline        StatusType = "online"
	StatusAway          StatusType = "away"
	StatusBusy          StatusType = "busy"
	StatusBRB           StatusType = "brb"
	StatusPhone         StatusType = "phone"
	StatusLunch         StatusType = "lunch"
	StatusOffline       StatusType = "offline"
	StatusAppearOffline StatusType = "appear_offline"
)

// StatusTypes lists every accepted status type.
var StatusTypes = []StatusType{
	StatusOnline,
	StatusAway,
	StatusBusy,
	StatusBRB,
	StatusPhone,
	StatusLunch,
	StatusOffline,
	StatusAppearOffline,
}

// Valid reports whether t is one of StatusTypes.
func (t StatusType) Valid() bool {
	for _, s := range StatusTypes {
		if s == t {
			return true
		}
	}
	return false
}

// PresenceBucket groups status types for display.
type PresenceBucket string

const (
	BucketOnline  PresenceBucket = "online"
	BucketAway    PresenceBucket = "away"
	BucketOffline PresenceBucket = "offline"
)

// Bucket maps a status type to its display group. Busy is shown with the
// away group. Unknown types are treated as offline.
func (t StatusType) Bucket() PresenceBucket {
	switch t {
	case StatusOnline:
		return BucketOnline
	case StatusAway, StatusBRB, StatusPhone, StatusLunch, StatusBusy:
		return BucketAway
	default:
		return BucketOffline
	}
}

// MaxStatusTextLength is the longest status text, in characters.
const MaxStatusTextLength = 128

// StatusUpdate is one entry of the append-only presence log. Rows are never
// updated or deleted; the newest row per user is that user's presence.
type StatusUpdate struct {
	ID         int64      `gorm:"primaryKey;autoIncrement:false;index:idx_status_updates_latest,priority:3,sort:desc"`
	UserID     uint       `gorm:"not null;index:idx_status_updates_latest,priority:1"`
	StatusText string     `gorm:"size:512;not null;default:''"`
	StatusType StatusType `gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time  `gorm:"not null;index:idx_status_updates_latest,priority:2,sort:desc"`
}
