package musicapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"music-platform/config"
	"music-platform/database"
	"music-platform/internal/domain/artists"
	"music-platform/internal/domain/music"
	"music-platform/internal/domain/social"
	"music-platform/internal/domain/users"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&artists.ArtistProfile{},
		&music.Track{},
		&music.TrackStats{},
		&social.Vote{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	config.FRONTEND_URL = "http://localhost:3000"

	r := gin.New()
	r.GET("/music/:trackId", GetDetail)
	r.GET("/music/:trackId/stream", Stream)
	r.POST("/music/:trackId/share", Share)
	return r
}

func seedTrack(t *testing.T, title string) *music.Track {
	t.Helper()
	owner := users.User{Name: "owner-" + title, Email: title + "@example.com", Role: users.RoleArtist, IsActive: true}
	require.NoError(t, database.DB.Create(&owner).Error)
	profile := artists.ArtistProfile{UserID: owner.ID, StageName: "DJ " + title, Status: artists.ProfileActive}
	require.NoError(t, database.DB.Create(&profile).Error)
	track := music.Track{ArtistID: profile.ID, Title: title, Genre: "electronic", FileURL: "/files/" + title + ".mp3"}
	require.NoError(t, database.DB.Create(&track).Error)
	require.NoError(t, database.DB.Create(&music.TrackStats{TrackID: track.ID}).Error)
	return &track
}

func statsOf(t *testing.T, trackID uint) music.TrackStats {
	t.Helper()
	var stats music.TrackStats
	require.NoError(t, database.DB.First(&stats, "track_id = ?", trackID).Error)
	return stats
}

func TestGetDetailBumpsListens(t *testing.T) {
	r := newTestRouter(t)
	track := seedTrack(t, "nightdrive")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/music/%d", track.ID), nil))
	require.Equal(t, http.StatusOK, w.Code)

	stats := statsOf(t, track.ID)
	assert.Equal(t, 1, stats.Listens)
	assert.Equal(t, 0, stats.Shares)
}

func TestStreamRedirectsAndBumpsListens(t *testing.T) {
	r := newTestRouter(t)
	track := seedTrack(t, "nightdrive")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/music/%d/stream", track.ID), nil))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, track.FileURL, w.Header().Get("Location"))

	assert.Equal(t, 1, statsOf(t, track.ID).Listens)
}

func TestShareBumpsShares(t *testing.T) {
	r := newTestRouter(t)
	track := seedTrack(t, "nightdrive")

	body, _ := json.Marshal(gin.H{"platform": "TWITTER"})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/music/%d/share", track.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ShareURL    string `json:"shareUrl"`
		PlatformURL string `json:"platformUrl"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, fmt.Sprintf("http://localhost:3000/music/%d", track.ID), resp.ShareURL)
	assert.Contains(t, resp.PlatformURL, "twitter.com/intent/tweet")

	stats := statsOf(t, track.ID)
	assert.Equal(t, 1, stats.Shares)
	assert.Equal(t, 0, stats.Listens)
}
