package artists

import (
	"errors"

	"gorm.io/gorm"

	"music-platform/internal/apperrors"
	"music-platform/internal/domain/users"
)

// ApplicationInput carries the profile fields a user submits when applying.
type ApplicationInput struct {
	StageName   string
	Bio         *string
	PhotoURL    *string
	SocialLinks *string
}

// DefaultRejectionReason is stored when an application is rejected without one.
const DefaultRejectionReason = "Does not meet the requirements"

// AssignRole moves a user between roles and keeps the artist profile in step:
// USER→ARTIST creates the profile (stage name defaults to the user's name) or
// reactivates an INACTIVE one; ARTIST→USER deactivates it, never deletes it,
// so historical track and album ownership survives. Transitions touching ADMIN
// have no profile side effects. Role and profile writes commit together.
func AssignRole(db *gorm.DB, userID uint, newRole string) (*users.User, error) {
	if !users.IsValidRole(newRole) {
		return nil, apperrors.Validation("unknown role %q", newRole)
	}

	var user users.User
	if err := db.First(&user, "id = ? AND is_deleted = ?", userID, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user %d not found", userID)
		}
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if user.Role == users.RoleUser && newRole == users.RoleArtist {
			if err := activateProfile(tx, user.ID, ApplicationInput{StageName: user.Name}); err != nil {
				return err
			}
		}
		if user.Role == users.RoleArtist && newRole == users.RoleUser {
			if err := tx.Model(&ArtistProfile{}).
				Where("user_id = ?", user.ID).
				Update("status", ProfileInactive).Error; err != nil {
				return err
			}
		}

		return tx.Model(&users.User{}).
			Where("id = ?", user.ID).
			Update("role", newRole).Error
	})
	if err != nil {
		return nil, err
	}

	user.Role = newRole
	return &user, nil
}

// SubmitApplication opens a PENDING application for a user. Artists and users
// with an application already in flight are rejected rather than silently
// duplicated.
func SubmitApplication(db *gorm.DB, userID uint, input ApplicationInput) (*ArtistApplication, error) {
	var user users.User
	if err := db.First(&user, "id = ? AND is_deleted = ?", userID, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user %d not found", userID)
		}
		return nil, err
	}
	if user.Role == users.RoleArtist {
		return nil, apperrors.Conflict("you are already an artist")
	}

	var pending int64
	if err := db.Model(&ArtistApplication{}).
		Where("user_id = ? AND status = ?", userID, ApplicationPending).
		Count(&pending).Error; err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, apperrors.Conflict("you already have a pending application")
	}

	app := ArtistApplication{
		UserID:      userID,
		StageName:   input.StageName,
		Bio:         input.Bio,
		PhotoURL:    input.PhotoURL,
		SocialLinks: input.SocialLinks,
		Status:      ApplicationPending,
	}
	if err := db.Create(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// ApproveApplication is only legal from PENDING. The role update, the profile
// creation from the submitted fields and the status flip are one transaction:
// either the requester becomes a full artist or nothing is recorded.
func ApproveApplication(db *gorm.DB, applicationID uint) error {
	app, err := loadApplication(db, applicationID)
	if err != nil {
		return err
	}
	if app.Status != ApplicationPending {
		return apperrors.InvalidState("application %d has already been processed", applicationID)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&users.User{}).
			Where("id = ?", app.UserID).
			Update("role", users.RoleArtist).Error; err != nil {
			return err
		}

		if err := activateProfile(tx, app.UserID, ApplicationInput{
			StageName:   app.StageName,
			Bio:         app.Bio,
			PhotoURL:    app.PhotoURL,
			SocialLinks: app.SocialLinks,
		}); err != nil {
			return err
		}

		return tx.Model(&ArtistApplication{}).
			Where("id = ?", app.ID).
			Update("status", ApplicationApproved).Error
	})
}

// RejectApplication is only legal from PENDING and is terminal: the status and
// reason are written once and never revisited.
func RejectApplication(db *gorm.DB, applicationID uint, reason string) error {
	app, err := loadApplication(db, applicationID)
	if err != nil {
		return err
	}
	if app.Status != ApplicationPending {
		return apperrors.InvalidState("application %d has already been processed", applicationID)
	}

	if reason == "" {
		reason = DefaultRejectionReason
	}
	return db.Model(&ArtistApplication{}).
		Where("id = ?", app.ID).
		Updates(map[string]interface{}{
			"status":           ApplicationRejected,
			"rejection_reason": reason,
		}).Error
}

// ProfileFor returns the caller's artist profile, the ownership anchor for
// every /artist operation. Missing profile means the caller is not an artist.
func ProfileFor(db *gorm.DB, userID uint) (*ArtistProfile, error) {
	var profile ArtistProfile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Forbidden("you are not an artist")
		}
		return nil, err
	}
	return &profile, nil
}

func loadApplication(db *gorm.DB, id uint) (*ArtistApplication, error) {
	var app ArtistApplication
	if err := db.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("application %d not found", id)
		}
		return nil, err
	}
	return &app, nil
}

// activateProfile creates the user's profile or reactivates an INACTIVE one.
// A user has at most one profile row, ever.
func activateProfile(tx *gorm.DB, userID uint, input ApplicationInput) error {
	var profile ArtistProfile
	err := tx.First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = ArtistProfile{
			UserID:      userID,
			StageName:   input.StageName,
			Bio:         input.Bio,
			PhotoURL:    input.PhotoURL,
			SocialLinks: input.SocialLinks,
			Status:      ProfileActive,
		}
		return tx.Create(&profile).Error
	}
	if err != nil {
		return err
	}

	if profile.Status == ProfileInactive {
		return tx.Model(&ArtistProfile{}).
			Where("id = ?", profile.ID).
			Update("status", ProfileActive).Error
	}
	return nil
}
