package artists

import (
	"time"

	"music-platform/internal/domain/users"
)

const (
	ProfileActive   = "ACTIVE"
	ProfileInactive = "INACTIVE"
)

const (
	ApplicationPending  = "PENDING"
	ApplicationApproved = "APPROVED"
	ApplicationRejected = "REJECTED"
)

// ArtistProfile is never hard-deleted. Demoting an artist flips Status to
// INACTIVE so their tracks and albums keep a valid owner.
type ArtistProfile struct {
	ID     uint        `gorm:"primaryKey" json:"id"`
	UserID uint        `gorm:"not null;uniqueIndex:idx_artist_profiles_user_id" json:"userId"`
	User   *users.User `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`

	StageName   string  `gorm:"not null" json:"stageName"`
	Bio         *string `json:"bio,omitempty"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
	SocialLinks *string `json:"socialLinks,omitempty"`

	Status string `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ArtistApplication is immutable once its status leaves PENDING.
type ArtistApplication struct {
	ID     uint        `gorm:"primaryKey" json:"id"`
	UserID uint        `gorm:"not null;index" json:"userId"`
	User   *users.User `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`

	StageName   string  `gorm:"not null" json:"stageName"`
	Bio         *string `json:"bio,omitempty"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
	SocialLinks *string `json:"socialLinks,omitempty"`

	Status          string  `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	RejectionReason *string `json:"rejectionReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
