package moderation

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"music-platform/internal/apperrors"
	"music-platform/internal/domain/music"
	"music-platform/internal/domain/playlists"
	"music-platform/internal/domain/users"
)

// CreateReport validates that the reported target exists before recording the
// report. COMMENT targets always fail: the data model has no comment entity.
func CreateReport(db *gorm.DB, reporterID uint, targetType string, targetID uint, reason string) (*Report, error) {
	if !IsValidTargetType(targetType) {
		return nil, apperrors.Validation("unknown report target type %q", targetType)
	}

	exists, err := targetExists(db, targetType, targetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound("reported target does not exist")
	}

	report := Report{
		ReporterUserID: reporterID,
		TargetType:     targetType,
		Reason:         reason,
		Status:         StatusPending,
	}
	switch targetType {
	case TargetMusic:
		report.ReportedTrackID = &targetID
	case TargetUser:
		report.ReportedUserID = &targetID
	case TargetPlaylist:
		report.ReportedPlaylistID = &targetID
	}

	if err := db.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// ResolveReport marks a report RESOLVED and stores the moderator's notes.
// Resolving an already-RESOLVED report overwrites the notes; the operation is
// idempotent.
func ResolveReport(db *gorm.DB, reportID uint, notes string) (*Report, error) {
	var report Report
	if err := db.First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("report %d not found", reportID)
		}
		return nil, err
	}

	if err := db.Model(&Report{}).
		Where("id = ?", report.ID).
		Updates(map[string]interface{}{
			"status":           StatusResolved,
			"resolution_notes": notes,
		}).Error; err != nil {
		return nil, err
	}

	report.Status = StatusResolved
	report.ResolutionNotes = &notes
	return &report, nil
}

// ListFilter narrows the admin report listing.
type ListFilter struct {
	Status    string
	Type      string
	StartDate *time.Time
	EndDate   *time.Time
}

func ListReports(db *gorm.DB, filter ListFilter, offset, limit int) ([]Report, int64, error) {
	q := db.Model(&Report{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("target_type = ?", filter.Type)
	}
	if filter.StartDate != nil {
		q = q.Where("report_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("report_date <= ?", *filter.EndDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []Report
	err := q.
		Preload("Reporter").
		Preload("ReportedTrack").
		Preload("ReportedUser").
		Preload("ReportedPlaylist").
		Order("report_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func targetExists(db *gorm.DB, targetType string, targetID uint) (bool, error) {
	var count int64
	switch targetType {
	case TargetMusic:
		if err := db.Model(&music.Track{}).Where("id = ?", targetID).Count(&count).Error; err != nil {
			return false, err
		}
	case TargetUser:
		if err := db.Model(&users.User{}).
			Where("id = ? AND is_deleted = ?", targetID, false).
			Count(&count).Error; err != nil {
			return false, err
		}
	case TargetPlaylist:
		if err := db.Model(&playlists.Playlist{}).Where("id = ?", targetID).Count(&count).Error; err != nil {
			return false, err
		}
	case TargetComment:
		// No comment entity exists in the schema.
		return false, nil
	}
	return count > 0, nil
}
