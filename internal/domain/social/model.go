package social

import (
	"time"

	"music-platform/internal/domain/artists"
	"music-platform/internal/domain/music"
	"music-platform/internal/domain/users"
)

const (
	VoteLike   = "LIKE"
	VoteUpvote = "UPVOTE"
)

func IsValidVoteType(t string) bool {
	return t == VoteLike || t == VoteUpvote
}

type Vote struct {
	ID      uint         `gorm:"primaryKey" json:"id"`
	UserID  uint         `gorm:"not null;uniqueIndex:idx_votes_pair,priority:1" json:"userId"`
	User    *users.User  `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	TrackID uint         `gorm:"not null;uniqueIndex:idx_votes_pair,priority:2" json:"trackId"`
	Track   *music.Track `gorm:"foreignKey:TrackID;constraint:OnDelete:CASCADE;" json:"track,omitempty"`

	VoteType string `gorm:"type:varchar(10);not null" json:"voteType"`

	CreatedAt time.Time `json:"createdAt"`
}

type Follow struct {
	ID             uint                   `gorm:"primaryKey" json:"id"`
	FollowerUserID uint                   `gorm:"not null;uniqueIndex:idx_follows_pair,priority:1" json:"followerUserId"`
	Follower       *users.User            `gorm:"foreignKey:FollowerUserID;constraint:OnDelete:CASCADE;" json:"follower,omitempty"`
	ArtistID       uint                   `gorm:"not null;uniqueIndex:idx_follows_pair,priority:2" json:"artistId"`
	Artist         *artists.ArtistProfile `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE;" json:"artist,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
