package playlists

import (
	"time"

	"music-platform/internal/domain/music"
	"music-platform/internal/domain/users"
)

type Playlist struct {
	ID     uint        `gorm:"primaryKey" json:"id"`
	UserID uint        `gorm:"not null;index" json:"userId"`
	User   *users.User `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`

	Name string `gorm:"not null" json:"name"`

	Tracks []PlaylistTrack `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE;" json:"tracks,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// PlaylistTrack carries the same dense 1..N TrackOrder invariant as
// music.AlbumTrack, scoped per playlist.
type PlaylistTrack struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	PlaylistID uint         `gorm:"not null;uniqueIndex:idx_playlist_tracks_pair,priority:1" json:"playlistId"`
	TrackID    uint         `gorm:"not null;uniqueIndex:idx_playlist_tracks_pair,priority:2" json:"trackId"`
	Track      *music.Track `gorm:"foreignKey:TrackID;constraint:OnDelete:CASCADE;" json:"track,omitempty"`

	TrackOrder int       `gorm:"not null;index:idx_playlist_tracks_order" json:"trackOrder"`
	AddedAt    time.Time `gorm:"autoCreateTime" json:"addedAt"`
}
