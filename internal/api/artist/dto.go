package artist

type UploadMusicRequest struct {
	Title       string  `form:"title" binding:"required"`
	Genre       string  `form:"genre" binding:"required"`
	Description *string `form:"description"`
}

type UpdateMusicRequest struct {
	Title       *string `json:"title"`
	Genre       *string `json:"genre"`
	Description *string `json:"description"`
}

type CreateAlbumRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

type UpdateAlbumRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CoverURL    *string `json:"coverUrl"`
}

type AddTracksRequest struct {
	TrackIDs []uint `json:"trackIds" binding:"required,min=1"`
	// TrackOrder entries are caller-supplied position hints; positions without
	// one fall back to appending at the end.
	TrackOrder []int `json:"trackOrder"`
}

type UpdateProfileRequest struct {
	StageName   *string `json:"stageName"`
	Bio         *string `json:"bio"`
	PhotoURL    *string `json:"photoUrl"`
	SocialLinks *string `json:"socialLinks"`
}
