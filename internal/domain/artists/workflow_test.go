package artists

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"music-platform/internal/apperrors"
	"music-platform/internal/domain/users"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&users.User{}, &ArtistProfile{}, &ArtistApplication{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) *users.User {
	t.Helper()
	user := users.User{Name: name, Email: name + "@example.com", Role: role, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func profileOf(t *testing.T, db *gorm.DB, userID uint) *ArtistProfile {
	t.Helper()
	var profile ArtistProfile
	require.NoError(t, db.First(&profile, "user_id = ?", userID).Error)
	return &profile
}

func TestAssignRolePromotesUserToArtist(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "nina", users.RoleUser)

	got, err := AssignRole(db, user.ID, users.RoleArtist)
	require.NoError(t, err)
	assert.Equal(t, users.RoleArtist, got.Role)

	profile := profileOf(t, db, user.ID)
	assert.Equal(t, ProfileActive, profile.Status)
	// No application in play, so the stage name falls back to the user's name.
	assert.Equal(t, "nina", profile.StageName)
}

func TestAssignRoleDemotionKeepsProfile(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "nina", users.RoleUser)

	_, err := AssignRole(db, user.ID, users.RoleArtist)
	require.NoError(t, err)
	_, err = AssignRole(db, user.ID, users.RoleUser)
	require.NoError(t, err)

	profile := profileOf(t, db, user.ID)
	assert.Equal(t, ProfileInactive, profile.Status)
}

func TestAssignRoleRoundTripReusesProfileRow(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "nina", users.RoleUser)

	_, err := AssignRole(db, user.ID, users.RoleArtist)
	require.NoError(t, err)
	first := profileOf(t, db, user.ID)

	_, err = AssignRole(db, user.ID, users.RoleUser)
	require.NoError(t, err)
	_, err = AssignRole(db, user.ID, users.RoleArtist)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&ArtistProfile{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	again := profileOf(t, db, user.ID)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, ProfileActive, again.Status)
}

func TestAssignRoleAdminHasNoProfileSideEffects(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "nina", users.RoleUser)

	_, err := AssignRole(db, user.ID, users.RoleAdmin)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&ArtistProfile{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAssignRoleRejectsUnknownRole(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "nina", users.RoleUser)

	_, err := AssignRole(db, user.ID, "SUPERUSER")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestAssignRoleMissingUser(t *testing.T) {
	db := newTestDB(t)

	_, err := AssignRole(db, 999, users.RoleArtist)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestSubmitApplication(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "nina", users.RoleUser)

	bio := "Electronic producer"
	app, err := SubmitApplication(db, user.ID, ApplicationInput{StageName: "DJ Nina", Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, ApplicationPending, app.Status)
	assert.Equal(t, "DJ Nina", app.StageName)

	// A second application while one is pending is a conflict.
	_, err = SubmitApplication(db, user.ID, ApplicationInput{StageName: "DJ Nina"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
}

func TestSubmitApplicationRejectsExistingArtist(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "nina", users.RoleArtist)

	_, err := SubmitApplication(db, user.ID, ApplicationInput{StageName: "DJ Nina"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
}

func TestApproveApplication(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "nina", users.RoleUser)

	bio := "Electronic producer"
	app, err := SubmitApplication(db, user.ID, ApplicationInput{StageName: "DJ Nina", Bio: &bio})
	require.NoError(t, err)

	require.NoError(t, ApproveApplication(db, app.ID))

	var got users.User
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, users.RoleArtist, got.Role)

	profile := profileOf(t, db, user.ID)
	assert.Equal(t, ProfileActive, profile.Status)
	assert.Equal(t, "DJ Nina", profile.StageName)
	require.NotNil(t, profile.Bio)
	assert.Equal(t, bio, *profile.Bio)

	var after ArtistApplication
	require.NoError(t, db.First(&after, "id = ?", app.ID).Error)
	assert.Equal(t, ApplicationApproved, after.Status)
}

func TestApproveRollsBackWhenProfileWriteFails(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "nina", users.RoleUser)

	app, err := SubmitApplication(db, user.ID, ApplicationInput{StageName: "DJ Nina"})
	require.NoError(t, err)

	// Fail the profile insert, which runs after the role update inside the
	// approval transaction; nothing from before it may survive.
	require.NoError(t, db.Callback().Create().Before("gorm:create").
		Register("fail_profile_insert", func(tx *gorm.DB) {
			if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "artist_profiles" {
				tx.AddError(errors.New("profile insert failed"))
			}
		}))
	t.Cleanup(func() {
		require.NoError(t, db.Callback().Create().Remove("fail_profile_insert"))
	})

	err = ApproveApplication(db, app.ID)
	require.Error(t, err)

	var got users.User
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, users.RoleUser, got.Role)

	var profiles int64
	require.NoError(t, db.Model(&ArtistProfile{}).Where("user_id = ?", user.ID).Count(&profiles).Error)
	assert.Zero(t, profiles)

	var after ArtistApplication
	require.NoError(t, db.First(&after, "id = ?", app.ID).Error)
	assert.Equal(t, ApplicationPending, after.Status)
}

func TestApproveIsTerminal(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "nina", users.RoleUser)

	app, err := SubmitApplication(db, user.ID, ApplicationInput{StageName: "DJ Nina"})
	require.NoError(t, err)
	require.NoError(t, ApproveApplication(db, app.ID))

	err = ApproveApplication(db, app.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidState))

	err = RejectApplication(db, app.ID, "changed my mind")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidState))
}

func TestRejectApplicationDefaultsReason(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "nina", users.RoleUser)

	app, err := SubmitApplication(db, user.ID, ApplicationInput{StageName: "DJ Nina"})
	require.NoError(t, err)

	require.NoError(t, RejectApplication(db, app.ID, ""))

	var after ArtistApplication
	require.NoError(t, db.First(&after, "id = ?", app.ID).Error)
	assert.Equal(t, ApplicationRejected, after.Status)
	require.NotNil(t, after.RejectionReason)
	assert.Equal(t, DefaultRejectionReason, *after.RejectionReason)

	// Rejection leaves the requester a plain user with no profile.
	var got users.User
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, users.RoleUser, got.Role)
	var count int64
	require.NoError(t, db.Model(&ArtistProfile{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRejectThenReapply(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "nina", users.RoleUser)

	app, err := SubmitApplication(db, user.ID, ApplicationInput{StageName: "DJ Nina"})
	require.NoError(t, err)
	require.NoError(t, RejectApplication(db, app.ID, "too soon"))

	// A rejected application no longer blocks a fresh one.
	second, err := SubmitApplication(db, user.ID, ApplicationInput{StageName: "DJ Nina"})
	require.NoError(t, err)
	assert.Equal(t, ApplicationPending, second.Status)
}

func TestProfileForNonArtist(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "nina", users.RoleUser)

	_, err := ProfileFor(db, user.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
}

func TestApproveMissingApplication(t *testing.T) {
	db := newTestDB(t)

	err := ApproveApplication(db, 404)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}
