package database

import (
	"github.com/charmbracelet/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"music-platform/config"
	"music-platform/internal/domain/artists"
	"music-platform/internal/domain/moderation"
	"music-platform/internal/domain/music"
	"music-platform/internal/domain/playlists"
	"music-platform/internal/domain/social"
	"music-platform/internal/domain/users"
)

var DB *gorm.DB

func InitDB() {
	db, err := gorm.Open(postgres.Open(config.DB_URL), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database", "err", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		// accounts
		&users.User{},
		&artists.ArtistProfile{},
		&artists.ArtistApplication{},

		// catalog
		&music.Track{},
		&music.TrackStats{},
		&music.Album{},
		&music.AlbumTrack{},

		// user content
		&playlists.Playlist{},
		&playlists.PlaylistTrack{},
		&social.Vote{},
		&social.Follow{},

		// moderation
		&moderation.Report{},
	); err != nil {
		log.Fatal("AutoMigrate error", "err", err)
	}

	log.Info("Connected and migrated successfully")
}
