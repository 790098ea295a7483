package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"music-platform/database"
	"music-platform/internal/apperrors"
	"music-platform/internal/domain/artists"
	"music-platform/internal/domain/moderation"
	"music-platform/internal/domain/music"
	"music-platform/internal/domain/playlists"
	"music-platform/internal/domain/social"
	"music-platform/internal/domain/users"
	"music-platform/internal/ordering"
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// mustOwnPlaylist loads the playlist only if the caller owns it.
func mustOwnPlaylist(c *gin.Context, userID, playlistID uint) (*playlists.Playlist, bool) {
	var pl playlists.Playlist
	if err := database.DB.First(&pl, "id = ? AND user_id = ?", playlistID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Playlist not found"})
		return nil, false
	}
	return &pl, true
}

// ------------------------------
// GET /user/me
// ------------------------------
func GetMe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var user users.User
	if err := database.DB.First(&user, "id = ? AND is_deleted = ?", userID, false).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	resp := gin.H{"user": user}

	var profile artists.ArtistProfile
	if err := database.DB.First(&profile, "user_id = ?", userID).Error; err == nil {
		resp["artistProfile"] = profile
	}

	var pending artists.ArtistApplication
	if err := database.DB.
		First(&pending, "user_id = ? AND status = ?", userID, artists.ApplicationPending).Error; err == nil {
		resp["pendingApplication"] = pending
	}

	var playlistCount, followingCount int64
	database.DB.Model(&playlists.Playlist{}).Where("user_id = ?", userID).Count(&playlistCount)
	database.DB.Model(&social.Follow{}).Where("follower_user_id = ?", userID).Count(&followingCount)
	resp["playlistCount"] = playlistCount
	resp["followingCount"] = followingCount

	c.JSON(http.StatusOK, resp)
}

// ------------------------------
// POST /user/playlists
// ------------------------------
func CreatePlaylist(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pl := playlists.Playlist{UserID: userID, Name: req.Name}
	if err := database.DB.Create(&pl).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create playlist"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Playlist created successfully", "playlist": pl})
}

// ------------------------------
// GET /user/playlists
// ------------------------------
func ListPlaylists(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var pls []playlists.Playlist
	err := database.DB.
		// First three tracks as a preview.
		Preload("Tracks", func(db *gorm.DB) *gorm.DB {
			return db.Order("track_order ASC").Limit(3)
		}).
		Preload("Tracks.Track.Artist").
		Order("created_at DESC").
		Find(&pls, "user_id = ?", userID).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load playlists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": pls})
}

// ------------------------------
// GET /user/playlists/:playlistId
// ------------------------------
func GetPlaylistDetail(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	playlistID, ok := paramID(c, "playlistId")
	if !ok {
		return
	}

	var pl playlists.Playlist
	err := database.DB.
		Preload("Tracks", func(db *gorm.DB) *gorm.DB { return db.Order("track_order ASC") }).
		Preload("Tracks.Track.Artist").
		Preload("Tracks.Track.Stats").
		First(&pl, "id = ? AND user_id = ?", playlistID, userID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Playlist not found"})
		return
	}

	c.JSON(http.StatusOK, pl)
}

// ------------------------------
// PUT /user/playlists/:playlistId
// ------------------------------
func UpdatePlaylist(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	playlistID, ok := paramID(c, "playlistId")
	if !ok {
		return
	}

	var req UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	res := database.DB.Model(&playlists.Playlist{}).
		Where("id = ? AND user_id = ?", playlistID, userID).
		Update("name", *req.Name)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update playlist"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Playlist not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Playlist updated successfully"})
}

// ------------------------------
// DELETE /user/playlists/:playlistId
// ------------------------------
func DeletePlaylist(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	playlistID, ok := paramID(c, "playlistId")
	if !ok {
		return
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Confirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please confirm playlist deletion"})
		return
	}

	pl, ok := mustOwnPlaylist(c, userID, playlistID)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := ordering.RemoveAll(tx, ordering.PlaylistTracks, pl.ID); err != nil {
			return err
		}
		return tx.Delete(&playlists.Playlist{}, "id = ?", pl.ID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete playlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Playlist deleted successfully"})
}

// ------------------------------
// POST /user/playlists/:playlistId/tracks
// ------------------------------
func AddTrackToPlaylist(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	playlistID, ok := paramID(c, "playlistId")
	if !ok {
		return
	}

	var req AddPlaylistTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pl, ok := mustOwnPlaylist(c, userID, playlistID)
	if !ok {
		return
	}

	var track music.Track
	if err := database.DB.First(&track, "id = ?", req.TrackID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Track not found"})
		return
	}

	entries, err := ordering.Append(database.DB, ordering.PlaylistTracks, pl.ID, []uint{track.ID}, nil)
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Track added to playlist", "playlistTrack": entries[0]})
}

// ------------------------------
// DELETE /user/playlists/:playlistId/tracks/:trackId
// ------------------------------
func RemoveTrackFromPlaylist(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	playlistID, ok := paramID(c, "playlistId")
	if !ok {
		return
	}
	trackID, ok := paramID(c, "trackId")
	if !ok {
		return
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Confirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please confirm track removal"})
		return
	}

	pl, ok := mustOwnPlaylist(c, userID, playlistID)
	if !ok {
		return
	}

	if err := ordering.Remove(database.DB, ordering.PlaylistTracks, pl.ID, trackID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove track from playlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Track removed from playlist"})
}

// ------------------------------
// POST /user/music/:trackId/vote
// ------------------------------
func VoteTrack(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	trackID, ok := paramID(c, "trackId")
	if !ok {
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vote social.Vote
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var track music.Track
		if err := tx.First(&track, "id = ?", trackID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("track %d not found", trackID)
			}
			return err
		}

		var existing int64
		if err := tx.Model(&social.Vote{}).
			Where("user_id = ? AND track_id = ?", userID, trackID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperrors.Conflict("you have already voted for this track")
		}

		vote = social.Vote{UserID: userID, TrackID: trackID, VoteType: req.VoteType}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}

		// Atomic counter bump; never read-modify-write vote_count.
		return tx.Model(&music.Track{}).
			Where("id = ?", trackID).
			Update("vote_count", gorm.Expr("vote_count + 1")).Error
	})
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Vote recorded", "vote": vote})
}

// ------------------------------
// DELETE /user/music/:trackId/vote
// ------------------------------
func UnvoteTrack(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	trackID, ok := paramID(c, "trackId")
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var vote social.Vote
		if err := tx.First(&vote, "user_id = ? AND track_id = ?", userID, trackID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("you have not voted for this track")
			}
			return err
		}

		if err := tx.Delete(&social.Vote{}, "id = ?", vote.ID).Error; err != nil {
			return err
		}

		return tx.Model(&music.Track{}).
			Where("id = ?", trackID).
			Update("vote_count", gorm.Expr("vote_count - 1")).Error
	})
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote removed"})
}

// ------------------------------
// POST /user/artists/:artistId/follow
// ------------------------------
func FollowArtist(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	artistID, ok := paramID(c, "artistId")
	if !ok {
		return
	}

	var profile artists.ArtistProfile
	if err := database.DB.First(&profile, "id = ?", artistID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artist not found"})
		return
	}

	var existing int64
	if err := database.DB.Model(&social.Follow{}).
		Where("follower_user_id = ? AND artist_id = ?", userID, artistID).
		Count(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow artist"})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You already follow this artist"})
		return
	}

	follow := social.Follow{FollowerUserID: userID, ArtistID: artistID}
	if err := database.DB.Create(&follow).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow artist"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Now following artist", "follow": follow})
}

// ------------------------------
// DELETE /user/artists/:artistId/follow
// ------------------------------
func UnfollowArtist(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	artistID, ok := paramID(c, "artistId")
	if !ok {
		return
	}

	res := database.DB.Delete(&social.Follow{}, "follower_user_id = ? AND artist_id = ?", userID, artistID)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow artist"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "You do not follow this artist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed artist"})
}

// ------------------------------
// GET /user/following
// ------------------------------
func ListFollowing(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var follows []social.Follow
	err := database.DB.
		Preload("Artist.User").
		Order("created_at DESC").
		Find(&follows, "follower_user_id = ?", userID).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load followed artists"})
		return
	}

	followed := make([]*artists.ArtistProfile, 0, len(follows))
	for _, f := range follows {
		if f.Artist != nil {
			followed = append(followed, f.Artist)
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": followed})
}

// ------------------------------
// POST /user/reports
// ------------------------------
func CreateReport(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := moderation.CreateReport(database.DB, userID, req.TargetType, req.TargetID, req.Reason)
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	log.Info("report created", "report_id", report.ID, "target_type", report.TargetType)
	c.JSON(http.StatusCreated, gin.H{"message": "Report submitted successfully", "report": report})
}

// ------------------------------
// POST /user/apply
// ------------------------------
func ApplyForArtist(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app, err := artists.SubmitApplication(database.DB, userID, artists.ApplicationInput{
		StageName:   req.StageName,
		Bio:         req.Bio,
		PhotoURL:    req.PhotoURL,
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Application submitted", "application": app})
}
