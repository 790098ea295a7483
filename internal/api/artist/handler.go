package artist

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"music-platform/database"
	"music-platform/internal/apperrors"
	"music-platform/internal/domain/artists"
	"music-platform/internal/domain/music"
	"music-platform/internal/ordering"
	"music-platform/internal/storage"
)

const maxAudioSize = 50 * 1024 * 1024

var allowedAudioTypes = []string{"audio/mpeg", "audio/wav", "audio/mp4", "audio/ogg"}

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// mustProfile resolves the caller's artist profile; every /artist operation
// anchors its ownership checks on this row, never on ids from the request.
func mustProfile(c *gin.Context) (*artists.ArtistProfile, bool) {
	userID, ok := mustUserID(c)
	if !ok {
		return nil, false
	}
	profile, err := artists.ProfileFor(database.DB, userID)
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return nil, false
	}
	return profile, true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// ------------------------------
// POST /artist/music (multipart upload)
// ------------------------------
func UploadMusic(c *gin.Context) {
	profile, ok := mustProfile(c)
	if !ok {
		return
	}

	var req UploadMusicRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please attach an audio file"})
		return
	}

	uploaded, err := storage.Default.UploadFile(file, storage.UploadOptions{
		Bucket:           "music",
		Folder:           "tracks",
		AllowedMimeTypes: allowedAudioTypes,
		MaxFileSize:      maxAudioSize,
	})
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	var track music.Track
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		track = music.Track{
			ArtistID:    profile.ID,
			Title:       req.Title,
			Genre:       req.Genre,
			Description: req.Description,
			FileURL:     uploaded.URL,
		}
		if err := tx.Create(&track).Error; err != nil {
			return err
		}
		return tx.Create(&music.TrackStats{TrackID: track.ID}).Error
	})
	if err != nil {
		// The object is already in storage at this point; a failed row write
		// leaves it orphaned (known gap, no compensation).
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save track"})
		return
	}

	log.Info("track uploaded", "track_id", track.ID, "artist_id", profile.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Track uploaded successfully", "track": track})
}

// ------------------------------
// GET /artist/music
// ------------------------------
func ListMusic(c *gin.Context) {
	profile, ok := mustProfile(c)
	if !ok {
		return
	}

	var tracks []music.Track
	if err := database.DB.
		Preload("Stats").
		Order("created_at DESC").
		Find(&tracks, "artist_id = ?", profile.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tracks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tracks})
}

// ------------------------------
// PUT /artist/music/:trackId
// ------------------------------
func UpdateMusic(c *gin.Context) {
	profile, ok := mustProfile(c)
	if !ok {
		return
	}
	trackID, ok := paramID(c, "trackId")
	if !ok {
		return
	}

	var req UpdateMusicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Genre != nil {
		updates["genre"] = *req.Genre
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	res := database.DB.Model(&music.Track{}).
		Where("id = ? AND artist_id = ?", trackID, profile.ID).
		Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update track"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Track not found or not yours"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Track updated successfully"})
}

// ------------------------------
// DELETE /artist/music/:trackId
// ------------------------------
func DeleteMusic(c *gin.Context) {
	profile, ok := mustProfile(c)
	if !ok {
		return
	}
	trackID, ok := paramID(c, "trackId")
	if !ok {
		return
	}

	var track music.Track
	if err := database.DB.First(&track, "id = ? AND artist_id = ?", trackID, profile.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Track not found or not yours"})
		return
	}

	if err := storage.Default.DeleteFile("music", track.FileURL); err != nil {
		log.Warn("failed to delete track file", "track_id", track.ID, "err", err)
	}

	if err := database.DB.Delete(&music.Track{}, "id = ?", track.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete track"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Track deleted successfully"})
}

// ------------------------------
// POST /artist/albums
// ------------------------------
func CreateAlbum(c *gin.Context) {
	profile, ok := mustProfile(c)
	if !ok {
		return
	}

	var req CreateAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	album := music.Album{
		ArtistID:    profile.ID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := database.DB.Create(&album).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create album"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Album created successfully", "album": album})
}

// ------------------------------
// GET /artist/albums
// ------------------------------
func ListAlbums(c *gin.Context) {
	profile, ok := mustProfile(c)
	if !ok {
		return
	}

	var albums []music.Album
	if err := database.DB.
		Preload("Tracks", func(db *gorm.DB) *gorm.DB { return db.Order("track_order ASC") }).
		Preload("Tracks.Track").
		Order("created_at DESC").
		Find(&albums, "artist_id = ?", profile.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load albums"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": albums})
}

// ------------------------------
// GET /artist/albums/:albumId
// ------------------------------
func GetAlbumDetail(c *gin.Context) {
	profile, ok := mustProfile(c)
	if !ok {
		return
	}
	albumID, ok := paramID(c, "albumId")
	if !ok {
		return
	}

	var album music.Album
	err := database.DB.
		Preload("Tracks", func(db *gorm.DB) *gorm.DB { return db.Order("track_order ASC") }).
		Preload("Tracks.Track.Stats").
		First(&album, "id = ? AND artist_id = ?", albumID, profile.ID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Album not found"})
		return
	}

	c.JSON(http.StatusOK, album)
}

// ------------------------------
// PUT /artist/albums/:albumId
// ------------------------------
func UpdateAlbum(c *gin.Context) {
	profile, ok := mustProfile(c)
	if !ok {
		return
	}
	albumID, ok := paramID(c, "albumId")
	if !ok {
		return
	}

	var req UpdateAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CoverURL != nil {
		updates["cover_url"] = *req.CoverURL
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	res := database.DB.Model(&music.Album{}).
		Where("id = ? AND artist_id = ?", albumID, profile.ID).
		Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update album"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Album not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Album updated successfully"})
}

// ------------------------------
// DELETE /artist/albums/:albumId
// ------------------------------
func DeleteAlbum(c *gin.Context) {
	profile, ok := mustProfile(c)
	if !ok {
		return
	}
	albumID, ok := paramID(c, "albumId")
	if !ok {
		return
	}

	var album music.Album
	if err := database.DB.First(&album, "id = ? AND artist_id = ?", albumID, profile.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Album not found"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := ordering.RemoveAll(tx, ordering.AlbumTracks, album.ID); err != nil {
			return err
		}
		return tx.Delete(&music.Album{}, "id = ?", album.ID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete album"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Album deleted successfully"})
}

// ------------------------------
// POST /artist/albums/:albumId/tracks
// ------------------------------
func AddTracksToAlbum(c *gin.Context) {
	profile, ok := mustProfile(c)
	if !ok {
		return
	}
	albumID, ok := paramID(c, "albumId")
	if !ok {
		return
	}

	var req AddTracksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var album music.Album
	if err := database.DB.First(&album, "id = ? AND artist_id = ?", albumID, profile.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Album not found"})
		return
	}

	// Every track in the batch must belong to the same artist as the album;
	// one stray id rejects the whole batch.
	var owned []uint
	if err := database.DB.Model(&music.Track{}).
		Where("id IN ? AND artist_id = ?", req.TrackIDs, profile.ID).
		Pluck("id", &owned).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify tracks"})
		return
	}
	if len(owned) != len(req.TrackIDs) {
		ownedSet := make(map[uint]bool, len(owned))
		for _, id := range owned {
			ownedSet[id] = true
		}
		var offending []uint
		for _, id := range req.TrackIDs {
			if !ownedSet[id] {
				offending = append(offending, id)
			}
		}
		err := apperrors.Validation("tracks %v do not exist or are not yours", offending)
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	entries, err := ordering.Append(database.DB, ordering.AlbumTracks, album.ID, req.TrackIDs, req.TrackOrder)
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Tracks added to album", "albumTracks": entries})
}

// ------------------------------
// DELETE /artist/albums/:albumId/tracks/:trackId
// ------------------------------
func RemoveTrackFromAlbum(c *gin.Context) {
	profile, ok := mustProfile(c)
	if !ok {
		return
	}
	albumID, ok := paramID(c, "albumId")
	if !ok {
		return
	}
	trackID, ok := paramID(c, "trackId")
	if !ok {
		return
	}

	var album music.Album
	if err := database.DB.First(&album, "id = ? AND artist_id = ?", albumID, profile.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Album not found"})
		return
	}

	if err := ordering.Remove(database.DB, ordering.AlbumTracks, album.ID, trackID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove track from album"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Track removed from album"})
}

// ------------------------------
// GET /artist/analytics?startDate=&endDate=&trackId=
// ------------------------------
func GetAnalytics(c *gin.Context) {
	profile, ok := mustProfile(c)
	if !ok {
		return
	}

	q := database.DB.Model(&music.TrackStats{}).
		Joins("JOIN tracks ON tracks.id = track_stats.track_id").
		Where("tracks.artist_id = ?", profile.ID)

	if v := c.Query("startDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			q = q.Where("track_stats.updated_at >= ?", t)
		}
	}
	if v := c.Query("endDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			q = q.Where("track_stats.updated_at <= ?", t)
		}
	}
	if v := c.Query("trackId"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			q = q.Where("track_stats.track_id = ?", id)
		}
	}

	var stats []music.TrackStats
	if err := q.Order("track_stats.updated_at DESC").Find(&stats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics"})
		return
	}

	totalListens, totalShares := 0, 0
	for _, s := range stats {
		totalListens += s.Listens
		totalShares += s.Shares
	}
	avg := 0.0
	if len(stats) > 0 {
		avg = float64(totalListens) / float64(len(stats))
	}

	top := make([]music.TrackStats, len(stats))
	copy(top, stats)
	sort.Slice(top, func(i, j int) bool { return top[i].Listens > top[j].Listens })
	if len(top) > 5 {
		top = top[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": gin.H{
			"totalTracks":            len(stats),
			"totalListens":           totalListens,
			"totalShares":            totalShares,
			"averageListensPerTrack": avg,
		},
		"topTracks":     top,
		"detailedStats": stats,
	})
}

// ------------------------------
// PATCH /artist/profile
// ------------------------------
func UpdateProfile(c *gin.Context) {
	profile, ok := mustProfile(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.StageName != nil {
		updates["stage_name"] = *req.StageName
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.PhotoURL != nil {
		updates["photo_url"] = *req.PhotoURL
	}
	if req.SocialLinks != nil {
		updates["social_links"] = *req.SocialLinks
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&artists.ArtistProfile{}).
		Where("id = ?", profile.ID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	var updated artists.ArtistProfile
	if err := database.DB.First(&updated, "id = ?", profile.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to reload profile: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "profile": updated})
}
