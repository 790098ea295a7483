package musicapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"music-platform/config"
	"music-platform/database"
	"music-platform/internal/domain/music"
	"music-platform/internal/domain/social"
	"music-platform/internal/pagination"
)

const (
	searchTrack  = "TRACK"
	searchArtist = "ARTIST"
	searchAlbum  = "ALBUM"
)

const (
	artistNameCond = "tracks.artist_id IN (SELECT ap.id FROM artist_profiles ap JOIN users u ON u.id = ap.user_id WHERE LOWER(ap.stage_name) LIKE LOWER(?) OR LOWER(u.name) LIKE LOWER(?))"
	albumTitleCond = "tracks.id IN (SELECT lnk.track_id FROM album_tracks lnk JOIN albums alb ON alb.id = lnk.album_id WHERE LOWER(alb.title) LIKE LOWER(?))"
)

func paramTrackID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("trackId"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trackId"})
		return 0, false
	}
	return uint(id), true
}

func bumpStat(trackID uint, column string) {
	err := database.DB.Model(&music.TrackStats{}).
		Where("track_id = ?", trackID).
		Updates(map[string]interface{}{
			column:       gorm.Expr(column + " + 1"),
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		log.Warn("failed to bump track stat", "track_id", trackID, "stat", column, "err", err)
	}
}

// ------------------------------
// GET /music/search?query=&type=&genre=&page=&limit=
// ------------------------------
func Search(c *gin.Context) {
	query := c.Query("query")
	searchType := c.Query("type")
	genre := c.Query("genre")
	p := pagination.FromQuery(c)

	like := "%" + query + "%"

	q := database.DB.Model(&music.Track{})
	switch searchType {
	case searchTrack:
		q = q.Where("LOWER(tracks.title) LIKE LOWER(?)", like)
	case searchArtist:
		q = q.Where(artistNameCond, like, like)
	case searchAlbum:
		q = q.Where(albumTitleCond, like)
	default:
		// No discriminator: match any of title, genre, artist or album name.
		q = q.Where(
			"LOWER(tracks.title) LIKE LOWER(?) OR LOWER(tracks.genre) LIKE LOWER(?) OR "+artistNameCond+" OR "+albumTitleCond,
			like, like, like, like, like,
		)
	}
	if genre != "" {
		q = q.Where("tracks.genre = ?", genre)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	var tracks []music.Track
	if err := q.
		Preload("Artist.User").
		Preload("Stats").
		Order("vote_count DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&tracks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, pagination.Wrap(tracks, p, total))
}

// ------------------------------
// GET /music/:trackId
// ------------------------------
func GetDetail(c *gin.Context) {
	trackID, ok := paramTrackID(c)
	if !ok {
		return
	}

	var track music.Track
	err := database.DB.
		Preload("Artist.User").
		Preload("Stats").
		First(&track, "id = ?", trackID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Track not found"})
		return
	}

	var recentVotes []social.Vote
	database.DB.Preload("User").
		Order("created_at DESC").
		Limit(10).
		Find(&recentVotes, "track_id = ?", track.ID)

	bumpStat(track.ID, "listens")

	c.JSON(http.StatusOK, gin.H{"track": track, "recentVotes": recentVotes})
}

// ------------------------------
// GET /music/:trackId/stream (auth)
// ------------------------------
func Stream(c *gin.Context) {
	trackID, ok := paramTrackID(c)
	if !ok {
		return
	}

	var track music.Track
	if err := database.DB.First(&track, "id = ?", trackID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Track not found"})
		return
	}

	bumpStat(track.ID, "listens")

	// Streaming itself is the storage layer's job; hand the client the file.
	c.Redirect(http.StatusFound, track.FileURL)
}

// ------------------------------
// POST /music/:trackId/share
// ------------------------------
func Share(c *gin.Context) {
	trackID, ok := paramTrackID(c)
	if !ok {
		return
	}

	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var track music.Track
	if err := database.DB.Preload("Artist").First(&track, "id = ?", trackID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Track not found"})
		return
	}

	bumpStat(track.ID, "shares")

	shareURL := fmt.Sprintf("%s/music/%d", config.FRONTEND_URL, track.ID)
	platformURL := shareURL
	switch req.Platform {
	case "FACEBOOK":
		platformURL = "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(shareURL)
	case "TWITTER":
		platformURL = "https://twitter.com/intent/tweet?url=" + url.QueryEscape(shareURL) + "&text=" + url.QueryEscape(track.Title)
	case "WHATSAPP":
		platformURL = "https://wa.me/?text=" + url.QueryEscape(track.Title+" - "+shareURL)
	}

	out := gin.H{
		"message":  "Share link created",
		"shareUrl": shareURL,
		"track": gin.H{
			"id":    track.ID,
			"title": track.Title,
		},
	}
	if track.Artist != nil {
		out["track"].(gin.H)["artist"] = track.Artist.StageName
	}
	if req.Platform != "COPY" {
		out["platformUrl"] = platformURL
	}

	c.JSON(http.StatusOK, out)
}

// ------------------------------
// GET /music/trending?limit=
// ------------------------------
func Trending(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > pagination.MaxLimit {
		limit = 10
	}

	var tracks []music.Track
	if err := database.DB.
		Preload("Artist.User").
		Preload("Stats").
		Order("vote_count DESC").
		Limit(limit).
		Find(&tracks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load trending tracks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tracks})
}

// ------------------------------
// GET /music/genre/:genre?page=&limit=
// ------------------------------
func ByGenre(c *gin.Context) {
	genre := c.Param("genre")
	p := pagination.FromQuery(c)

	q := database.DB.Model(&music.Track{}).Where("genre = ?", genre)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tracks"})
		return
	}

	var tracks []music.Track
	if err := q.
		Preload("Artist.User").
		Preload("Stats").
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&tracks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tracks"})
		return
	}

	c.JSON(http.StatusOK, pagination.Wrap(tracks, p, total))
}
