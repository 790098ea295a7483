package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"music-platform/internal/apperrors"
	"music-platform/internal/domain/artists"
	"music-platform/internal/domain/music"
	"music-platform/internal/domain/playlists"
	"music-platform/internal/domain/users"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&artists.ArtistProfile{},
		&music.Track{},
		&music.TrackStats{},
		&playlists.Playlist{},
		&playlists.PlaylistTrack{},
		&Report{},
	))
	return db
}

type fixture struct {
	reporter *users.User
	artist   *users.User
	track    *music.Track
	playlist *playlists.Playlist
}

func seed(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	reporter := users.User{Name: "mika", Email: "mika@example.com", Role: users.RoleUser, IsActive: true}
	require.NoError(t, db.Create(&reporter).Error)

	artist := users.User{Name: "nina", Email: "nina@example.com", Role: users.RoleArtist, IsActive: true}
	require.NoError(t, db.Create(&artist).Error)
	profile := artists.ArtistProfile{UserID: artist.ID, StageName: "DJ Nina", Status: artists.ProfileActive}
	require.NoError(t, db.Create(&profile).Error)

	track := music.Track{ArtistID: profile.ID, Title: "Night Drive", Genre: "electronic", FileURL: "/files/a.mp3"}
	require.NoError(t, db.Create(&track).Error)

	playlist := playlists.Playlist{UserID: reporter.ID, Name: "Favourites"}
	require.NoError(t, db.Create(&playlist).Error)

	return fixture{reporter: &reporter, artist: &artist, track: &track, playlist: &playlist}
}

func TestCreateReportPerTarget(t *testing.T) {
	db := newTestDB(t)
	fx := seed(t, db)

	cases := []struct {
		targetType string
		targetID   uint
	}{
		{TargetMusic, fx.track.ID},
		{TargetUser, fx.artist.ID},
		{TargetPlaylist, fx.playlist.ID},
	}
	for _, tc := range cases {
		report, err := CreateReport(db, fx.reporter.ID, tc.targetType, tc.targetID, "inappropriate")
		require.NoError(t, err, tc.targetType)
		assert.Equal(t, StatusPending, report.Status)
		assert.Equal(t, tc.targetType, report.TargetType)
	}
}

func TestCreateReportMissingTarget(t *testing.T) {
	db := newTestDB(t)
	fx := seed(t, db)

	_, err := CreateReport(db, fx.reporter.ID, TargetMusic, 9999, "inappropriate")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestCreateReportCommentAlwaysFails(t *testing.T) {
	db := newTestDB(t)
	fx := seed(t, db)

	// There is no comment entity, so any comment report misses its target.
	_, err := CreateReport(db, fx.reporter.ID, TargetComment, 1, "spam")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestCreateReportUnknownType(t *testing.T) {
	db := newTestDB(t)
	fx := seed(t, db)

	_, err := CreateReport(db, fx.reporter.ID, "ALBUM", 1, "spam")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestCreateReportDeletedUserTarget(t *testing.T) {
	db := newTestDB(t)
	fx := seed(t, db)

	require.NoError(t, db.Model(&users.User{}).
		Where("id = ?", fx.artist.ID).
		Update("is_deleted", true).Error)

	_, err := CreateReport(db, fx.reporter.ID, TargetUser, fx.artist.ID, "spam")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestResolveReport(t *testing.T) {
	db := newTestDB(t)
	fx := seed(t, db)

	report, err := CreateReport(db, fx.reporter.ID, TargetMusic, fx.track.ID, "inappropriate")
	require.NoError(t, err)

	resolved, err := ResolveReport(db, report.ID, "removed the track")
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolutionNotes)
	assert.Equal(t, "removed the track", *resolved.ResolutionNotes)
}

func TestResolveReportIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	fx := seed(t, db)

	report, err := CreateReport(db, fx.reporter.ID, TargetMusic, fx.track.ID, "inappropriate")
	require.NoError(t, err)

	_, err = ResolveReport(db, report.ID, "first pass")
	require.NoError(t, err)

	// Resolving again overwrites the notes instead of failing.
	resolved, err := ResolveReport(db, report.ID, "second pass")
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, resolved.Status)
	assert.Equal(t, "second pass", *resolved.ResolutionNotes)
}

func TestResolveMissingReport(t *testing.T) {
	db := newTestDB(t)

	_, err := ResolveReport(db, 404, "notes")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestListReportsFilters(t *testing.T) {
	db := newTestDB(t)
	fx := seed(t, db)

	trackReport, err := CreateReport(db, fx.reporter.ID, TargetMusic, fx.track.ID, "inappropriate")
	require.NoError(t, err)
	_, err = CreateReport(db, fx.reporter.ID, TargetUser, fx.artist.ID, "impersonation")
	require.NoError(t, err)
	_, err = ResolveReport(db, trackReport.ID, "done")
	require.NoError(t, err)

	pending, total, err := ListReports(db, ListFilter{Status: StatusPending}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, pending, 1)
	assert.Equal(t, TargetUser, pending[0].TargetType)

	byType, total, err := ListReports(db, ListFilter{Type: TargetMusic}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, byType, 1)
	assert.Equal(t, StatusResolved, byType[0].Status)

	all, total, err := ListReports(db, ListFilter{}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)
}
