package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"music-platform/internal/apperrors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE album_tracks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		album_id INTEGER NOT NULL,
		track_id INTEGER NOT NULL,
		track_order INTEGER NOT NULL,
		UNIQUE(album_id, track_id)
	)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE playlist_tracks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		playlist_id INTEGER NOT NULL,
		track_id INTEGER NOT NULL,
		track_order INTEGER NOT NULL,
		added_at DATETIME NOT NULL,
		UNIQUE(playlist_id, track_id)
	)`).Error)
	return db
}

func orders(t *testing.T, db *gorm.DB, sc Scope, parentID uint) map[uint]int {
	t.Helper()
	var rows []Entry
	require.NoError(t, db.Table(sc.Table).
		Select("id, track_id, track_order").
		Where(sc.ParentCol+" = ?", parentID).
		Order("track_order ASC").
		Find(&rows).Error)

	out := make(map[uint]int, len(rows))
	for i, r := range rows {
		// Dense invariant: orders are exactly 1..N with no gaps.
		assert.Equal(t, i+1, r.TrackOrder)
		out[r.TrackID] = r.TrackOrder
	}
	return out
}

func TestAppendAssignsSequentialOrders(t *testing.T) {
	db := newTestDB(t)

	entries, err := Append(db, AlbumTracks, 1, []uint{10, 20, 30}, nil)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].TrackOrder)
	assert.Equal(t, 2, entries[1].TrackOrder)
	assert.Equal(t, 3, entries[2].TrackOrder)

	// A second batch continues from the current count.
	entries, err = Append(db, AlbumTracks, 1, []uint{40, 50}, nil)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 4, entries[0].TrackOrder)
	assert.Equal(t, 5, entries[1].TrackOrder)

	got := orders(t, db, AlbumTracks, 1)
	assert.Len(t, got, 5)
}

func TestAppendExplicitOrderWins(t *testing.T) {
	db := newTestDB(t)

	entries, err := Append(db, AlbumTracks, 1, []uint{10, 20, 30}, []int{3, 0, 1})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 3, entries[0].TrackOrder)
	assert.Equal(t, 2, entries[1].TrackOrder) // no explicit order, falls back to position
	assert.Equal(t, 1, entries[2].TrackOrder)
}

func TestAppendEmptyBatchIsNoop(t *testing.T) {
	db := newTestDB(t)

	entries, err := Append(db, AlbumTracks, 1, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, entries)

	var count int64
	require.NoError(t, db.Table("album_tracks").Count(&count).Error)
	assert.Zero(t, count)
}

func TestAppendDuplicateTrackConflicts(t *testing.T) {
	db := newTestDB(t)

	_, err := Append(db, AlbumTracks, 1, []uint{10}, nil)
	require.NoError(t, err)

	_, err = Append(db, AlbumTracks, 1, []uint{10}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))

	// Same track in a different album is fine.
	_, err = Append(db, AlbumTracks, 2, []uint{10}, nil)
	require.NoError(t, err)
}

func TestAppendFailedBatchLeavesNoRows(t *testing.T) {
	db := newTestDB(t)

	_, err := Append(db, AlbumTracks, 1, []uint{30}, nil)
	require.NoError(t, err)

	// The third id collides, so the first two inserts must roll back even on
	// a bare handle with no caller-held transaction.
	_, err = Append(db, AlbumTracks, 1, []uint{10, 20, 30}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))

	got := orders(t, db, AlbumTracks, 1)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[30])
}

func TestAppendInsideCallerTransaction(t *testing.T) {
	db := newTestDB(t)

	// Callers composing Append with their own writes keep working; the batch
	// becomes a savepoint inside the outer transaction.
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := Append(tx, AlbumTracks, 1, []uint{10, 20}, nil)
		return err
	})
	require.NoError(t, err)
	assert.Len(t, orders(t, db, AlbumTracks, 1), 2)
}

func TestAppendScopesAreIndependent(t *testing.T) {
	db := newTestDB(t)

	_, err := Append(db, AlbumTracks, 1, []uint{10, 20}, nil)
	require.NoError(t, err)
	entries, err := Append(db, PlaylistTracks, 1, []uint{10, 20}, nil)
	require.NoError(t, err)

	// The playlist collection starts its own sequence at 1.
	assert.Equal(t, 1, entries[0].TrackOrder)
	assert.Equal(t, 2, entries[1].TrackOrder)
}

func TestRemoveClosesTheGap(t *testing.T) {
	db := newTestDB(t)

	_, err := Append(db, AlbumTracks, 1, []uint{10, 20, 30}, nil)
	require.NoError(t, err)

	require.NoError(t, Remove(db, AlbumTracks, 1, 20))

	got := orders(t, db, AlbumTracks, 1)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[10])
	assert.Equal(t, 2, got[30])
}

func TestRemoveFirstAndLast(t *testing.T) {
	db := newTestDB(t)

	_, err := Append(db, PlaylistTracks, 1, []uint{10, 20, 30, 40}, nil)
	require.NoError(t, err)

	require.NoError(t, Remove(db, PlaylistTracks, 1, 10))
	require.NoError(t, Remove(db, PlaylistTracks, 1, 40))

	got := orders(t, db, PlaylistTracks, 1)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[20])
	assert.Equal(t, 2, got[30])
}

func TestRemoveAbsentTrackIsNoop(t *testing.T) {
	db := newTestDB(t)

	_, err := Append(db, AlbumTracks, 1, []uint{10}, nil)
	require.NoError(t, err)

	require.NoError(t, Remove(db, AlbumTracks, 1, 99))

	got := orders(t, db, AlbumTracks, 1)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[10])
}

func TestRemoveAllClearsCollection(t *testing.T) {
	db := newTestDB(t)

	_, err := Append(db, AlbumTracks, 1, []uint{10, 20}, nil)
	require.NoError(t, err)
	_, err = Append(db, AlbumTracks, 2, []uint{10}, nil)
	require.NoError(t, err)

	require.NoError(t, RemoveAll(db, AlbumTracks, 1))

	assert.Empty(t, orders(t, db, AlbumTracks, 1))
	// Other parents are untouched.
	assert.Len(t, orders(t, db, AlbumTracks, 2), 1)
}
