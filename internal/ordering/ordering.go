// Package ordering maintains the dense 1-based track_order sequence over the
// album_tracks and playlist_tracks link tables. Both tables share the same
// child columns (track_id, track_order) and differ only in the parent column,
// so one manager serves album and playlist collections alike.
package ordering

import (
	"time"

	"gorm.io/gorm"

	"music-platform/internal/apperrors"
)

// Scope selects which link table an operation works on.
type Scope struct {
	Table     string
	ParentCol string
	// Noun names the parent in error messages ("album", "playlist").
	Noun string
	// TimeCol, when set, is stamped with the insertion time on Append.
	TimeCol string
}

var (
	AlbumTracks    = Scope{Table: "album_tracks", ParentCol: "album_id", Noun: "album"}
	PlaylistTracks = Scope{Table: "playlist_tracks", ParentCol: "playlist_id", Noun: "playlist", TimeCol: "added_at"}
)

// Entry is one link row as seen by callers.
type Entry struct {
	ID         uint `gorm:"column:id" json:"id"`
	TrackID    uint `gorm:"column:track_id" json:"trackId"`
	TrackOrder int  `gorm:"column:track_order" json:"trackOrder"`
}

// Append inserts a batch of child links. Ownership of the parent and of every
// child is the calling service's responsibility; this component only enforces
// pair uniqueness and order assignment. The whole batch is one transaction
// (a savepoint when the caller already holds one): a duplicate anywhere in the
// batch rolls back every insert made before it.
//
// Order values: explicitOrders[i], when present, wins; otherwise the child is
// appended at currentCount+i+1. Returns the created rows in input order.
func Append(db *gorm.DB, sc Scope, parentID uint, trackIDs []uint, explicitOrders []int) ([]Entry, error) {
	if len(trackIDs) == 0 {
		return []Entry{}, nil
	}

	var out []Entry
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Table(sc.Table).
			Where(sc.ParentCol+" = ?", parentID).
			Count(&existing).Error; err != nil {
			return err
		}

		for i, trackID := range trackIDs {
			var dup int64
			if err := tx.Table(sc.Table).
				Where(sc.ParentCol+" = ? AND track_id = ?", parentID, trackID).
				Count(&dup).Error; err != nil {
				return err
			}
			if dup > 0 {
				return apperrors.Conflict("track %d is already in the %s", trackID, sc.Noun)
			}

			order := int(existing) + i + 1
			if i < len(explicitOrders) && explicitOrders[i] > 0 {
				order = explicitOrders[i]
			}

			row := map[string]interface{}{
				sc.ParentCol:  parentID,
				"track_id":    trackID,
				"track_order": order,
			}
			if sc.TimeCol != "" {
				row[sc.TimeCol] = time.Now()
			}
			if err := tx.Table(sc.Table).Create(row).Error; err != nil {
				return err
			}
		}

		var rows []Entry
		if err := tx.Table(sc.Table).
			Select("id, track_id, track_order").
			Where(sc.ParentCol+" = ? AND track_id IN ?", parentID, trackIDs).
			Find(&rows).Error; err != nil {
			return err
		}

		byTrack := make(map[uint]Entry, len(rows))
		for _, r := range rows {
			byTrack[r.TrackID] = r
		}
		out = make([]Entry, 0, len(trackIDs))
		for _, id := range trackIDs {
			out = append(out, byTrack[id])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Remove deletes one link if present and closes the gap it leaves: surviving
// rows are rewritten to track_order 1..N in their current order. Removing an
// absent link is a successful no-op. Delete and resequence run in a single
// transaction so readers never observe a partially renumbered collection.
func Remove(db *gorm.DB, sc Scope, parentID uint, trackID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM "+sc.Table+" WHERE "+sc.ParentCol+" = ? AND track_id = ?",
			parentID, trackID,
		).Error; err != nil {
			return err
		}
		return resequence(tx, sc, parentID)
	})
}

// RemoveAll clears a parent's collection, used when the parent itself goes
// away. Nothing survives, so nothing needs renumbering.
func RemoveAll(tx *gorm.DB, sc Scope, parentID uint) error {
	return tx.Exec("DELETE FROM "+sc.Table+" WHERE "+sc.ParentCol+" = ?", parentID).Error
}

func resequence(tx *gorm.DB, sc Scope, parentID uint) error {
	var rows []Entry
	if err := tx.Table(sc.Table).
		Select("id, track_id, track_order").
		Where(sc.ParentCol+" = ?", parentID).
		Order("track_order ASC").
		Find(&rows).Error; err != nil {
		return err
	}

	for i, r := range rows {
		if r.TrackOrder == i+1 {
			continue
		}
		if err := tx.Exec(
			"UPDATE "+sc.Table+" SET track_order = ? WHERE id = ?",
			i+1, r.ID,
		).Error; err != nil {
			return err
		}
	}
	return nil
}
