package admin

import (
	"net/http"
	"strconv"
	"time"

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
	"music-platform/internal/pagination"
	"music-platform/internal/storage"
)

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// POST /admin/accounts/assign-role
func AssignRole(c *gin.Context) {
	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := artists.AssignRole(database.DB, req.UserID, req.NewRole)
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	log.Info("role assigned", "user_id", user.ID, "role", user.Role)
	c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully", "user": user})
}

// GET /admin/accounts/search?query=&page=&limit=
func SearchAccounts(c *gin.Context) {
	query := c.Query("query")
	p := pagination.FromQuery(c)

	q := database.DB.Model(&users.User{}).Where("is_deleted = ?", false)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(email) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search accounts"})
		return
	}

	var found []users.User
	if err := q.Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&found).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search accounts"})
		return
	}

	c.JSON(http.StatusOK, pagination.Wrap(found, p, total))
}

// DELETE /admin/accounts/:userId
func DeleteAccount(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}

	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Confirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please confirm account deletion"})
		return
	}

	res := database.DB.Model(&users.User{}).
		Where("id = ? AND is_deleted = ?", userID, false).
		Updates(map[string]interface{}{"is_deleted": true, "is_active": false})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

// GET /admin/artist-applications?status=&page=&limit=
func ListArtistApplications(c *gin.Context) {
	status := c.DefaultQuery("status", artists.ApplicationPending)
	p := pagination.FromQuery(c)

	q := database.DB.Model(&artists.ArtistApplication{}).Where("status = ?", status)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load applications"})
		return
	}

	var apps []artists.ArtistApplication
	if err := q.Preload("User").
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load applications"})
		return
	}

	c.JSON(http.StatusOK, pagination.Wrap(apps, p, total))
}

// PATCH /admin/artist-applications/:id/process
func ProcessArtistApplication(c *gin.Context) {
	appID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ProcessApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Action == "APPROVE" {
		if err := artists.ApproveApplication(database.DB, appID); err != nil {
			c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
			return
		}
		log.Info("artist application approved", "application_id", appID)
		c.JSON(http.StatusOK, gin.H{"message": "Application approved"})
		return
	}

	if err := artists.RejectApplication(database.DB, appID, req.Reason); err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}
	log.Info("artist application rejected", "application_id", appID)
	c.JSON(http.StatusOK, gin.H{"message": "Application rejected"})
}

// GET /admin/reports?status=&type=&startDate=&endDate=&page=&limit=
func ListReports(c *gin.Context) {
	p := pagination.FromQuery(c)

	filter := moderation.ListFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
	}
	if v := c.Query("startDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.StartDate = &t
		}
	}
	if v := c.Query("endDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.EndDate = &t
		}
	}

	reports, total, err := moderation.ListReports(database.DB, filter, p.Offset(), p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reports"})
		return
	}

	c.JSON(http.StatusOK, pagination.Wrap(reports, p, total))
}

// PATCH /admin/reports/:id/resolve
func ResolveReport(c *gin.Context) {
	reportID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := moderation.ResolveReport(database.DB, reportID, req.ResolutionNotes)
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	log.Info("report resolved", "report_id", report.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Report resolved", "report": report})
}

// DELETE /admin/music/:trackId
func DeleteMusic(c *gin.Context) {
	trackID, ok := paramID(c, "trackId")
	if !ok {
		return
	}

	var track music.Track
	if err := database.DB.First(&track, "id = ?", trackID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Track not found"})
		return
	}

	if err := storage.Default.DeleteFile("music", track.FileURL); err != nil {
		log.Warn("failed to delete track file", "track_id", track.ID, "err", err)
	}

	if err := database.DB.Delete(&music.Track{}, "id = ?", trackID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete track"})
		return
	}

	c.Status(http.StatusNoContent)
}

// GET /admin/users/:userId/details
func GetUserDetails(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}

	var user users.User
	if err := database.DB.First(&user, "id = ? AND is_deleted = ?", userID, false).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var profile *artists.ArtistProfile
	var p artists.ArtistProfile
	if err := database.DB.First(&p, "user_id = ?", userID).Error; err == nil {
		profile = &p
	}

	var userPlaylists []playlists.Playlist
	database.DB.
		Preload("Tracks", func(db *gorm.DB) *gorm.DB { return db.Order("track_order ASC") }).
		Preload("Tracks.Track").
		Find(&userPlaylists, "user_id = ?", userID)

	var recentVotes []social.Vote
	database.DB.Preload("Track").
		Order("created_at DESC").
		Limit(10).
		Find(&recentVotes, "user_id = ?", userID)

	out := gin.H{
		"user":        user,
		"profile":     profile,
		"playlists":   userPlaylists,
		"recentVotes": recentVotes,
	}

	if user.Role == users.RoleArtist && profile != nil {
		var tracks []music.Track
		database.DB.Preload("Stats").Find(&tracks, "artist_id = ?", profile.ID)
		out["tracks"] = tracks
	}

	c.JSON(http.StatusOK, out)
}
