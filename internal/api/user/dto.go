package user

type CreatePlaylistRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdatePlaylistRequest struct {
	Name *string `json:"name"`
}

type AddPlaylistTrackRequest struct {
	TrackID uint `json:"trackId" binding:"required"`
}

// ConfirmRequest guards destructive playlist operations.
type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

type VoteRequest struct {
	VoteType string `json:"voteType" binding:"required,oneof=LIKE UPVOTE"`
}

type CreateReportRequest struct {
	TargetType string `json:"targetType" binding:"required,oneof=MUSIC USER COMMENT PLAYLIST"`
	TargetID   uint   `json:"targetId" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

type ApplyRequest struct {
	StageName   string  `json:"stageName" binding:"required"`
	Bio         *string `json:"bio"`
	PhotoURL    *string `json:"photoUrl"`
	SocialLinks *string `json:"socialLinks"`
}
