package music

import (
	"time"

	"music-platform/internal/domain/artists"
)

type Track struct {
	ID       uint                   `gorm:"primaryKey" json:"id"`
	ArtistID uint                   `gorm:"not null;index" json:"artistId"`
	Artist   *artists.ArtistProfile `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE;" json:"artist,omitempty"`

	Title       string  `gorm:"not null" json:"title"`
	Genre       string  `gorm:"index" json:"genre"`
	Description *string `json:"description,omitempty"`
	FileURL     string  `gorm:"not null" json:"fileUrl"`

	// Denormalized count of Vote rows for this track, kept in step with
	// atomic increments/decrements on vote and unvote.
	VoteCount int `gorm:"not null;default:0;index" json:"voteCount"`

	Stats *TrackStats `gorm:"foreignKey:TrackID;constraint:OnDelete:CASCADE;" json:"stats,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type TrackStats struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	TrackID uint `gorm:"not null;uniqueIndex:idx_track_stats_track_id" json:"trackId"`

	Listens int `gorm:"not null;default:0" json:"listens"`
	Shares  int `gorm:"not null;default:0" json:"shares"`

	UpdatedAt time.Time `json:"updatedAt"`
}

type Album struct {
	ID       uint                   `gorm:"primaryKey" json:"id"`
	ArtistID uint                   `gorm:"not null;index" json:"artistId"`
	Artist   *artists.ArtistProfile `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE;" json:"artist,omitempty"`

	Title       string  `gorm:"not null" json:"title"`
	Description *string `json:"description,omitempty"`
	CoverURL    *string `json:"coverUrl,omitempty"`

	Tracks []AlbumTrack `gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE;" json:"tracks,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// AlbumTrack links a track into an album. TrackOrder is a dense 1..N sequence
// per album: no gaps, no duplicates after any mutation completes.
type AlbumTrack struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	AlbumID uint   `gorm:"not null;uniqueIndex:idx_album_tracks_pair,priority:1" json:"albumId"`
	TrackID uint   `gorm:"not null;uniqueIndex:idx_album_tracks_pair,priority:2" json:"trackId"`
	Track   *Track `gorm:"foreignKey:TrackID;constraint:OnDelete:CASCADE;" json:"track,omitempty"`

	TrackOrder int `gorm:"not null;index:idx_album_tracks_order" json:"trackOrder"`
}
