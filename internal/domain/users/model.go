package users

import (
	"time"
)

const (
	RoleUser   = "USER"
	RoleArtist = "ARTIST"
	RoleAdmin  = "ADMIN"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleUser, RoleArtist, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	Email    string  `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	Password *string `json:"-"`

	Role     string `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`

	// Soft delete marker. Deleted accounts stay in the table so historical
	// votes, reports and playlists keep a valid owner.
	IsDeleted bool `gorm:"not null;default:false;index" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
