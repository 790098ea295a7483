package moderation

import (
	"time"

	"music-platform/internal/domain/music"
	"music-platform/internal/domain/playlists"
	"music-platform/internal/domain/users"
)

const (
	TargetMusic    = "MUSIC"
	TargetUser     = "USER"
	TargetComment  = "COMMENT"
	TargetPlaylist = "PLAYLIST"
)

const (
	StatusPending  = "PENDING"
	StatusResolved = "RESOLVED"
)

func IsValidTargetType(t string) bool {
	switch t {
	case TargetMusic, TargetUser, TargetComment, TargetPlaylist:
		return true
	}
	return false
}

// Report targets one of {track, user, playlist}. Exactly one reported-* column
// is set, chosen by TargetType.
type Report struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	ReporterUserID uint        `gorm:"not null;index" json:"reporterUserId"`
	Reporter       *users.User `gorm:"foreignKey:ReporterUserID;constraint:OnDelete:CASCADE;" json:"reporter,omitempty"`

	TargetType string `gorm:"type:varchar(20);not null;index" json:"targetType"`

	ReportedTrackID    *uint               `gorm:"index" json:"reportedTrackId,omitempty"`
	ReportedTrack      *music.Track        `gorm:"foreignKey:ReportedTrackID;constraint:OnDelete:CASCADE;" json:"reportedTrack,omitempty"`
	ReportedUserID     *uint               `gorm:"index" json:"reportedUserId,omitempty"`
	ReportedUser       *users.User         `gorm:"foreignKey:ReportedUserID;constraint:OnDelete:CASCADE;" json:"reportedUser,omitempty"`
	ReportedPlaylistID *uint               `gorm:"index" json:"reportedPlaylistId,omitempty"`
	ReportedPlaylist   *playlists.Playlist `gorm:"foreignKey:ReportedPlaylistID;constraint:OnDelete:CASCADE;" json:"reportedPlaylist,omitempty"`

	Reason          string  `gorm:"not null" json:"reason"`
	Status          string  `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	ResolutionNotes *string `json:"resolutionNotes,omitempty"`

	ReportDate time.Time `gorm:"autoCreateTime" json:"reportDate"`
}
