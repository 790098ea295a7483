package routes

import (
	adminapi "music-platform/internal/api/admin"
	artistapi "music-platform/internal/api/artist"
	authapi "music-platform/internal/api/auth"
	musicapi "music-platform/internal/api/music"
	userapi "music-platform/internal/api/user"
	"music-platform/internal/app/http/middleware"
	"music-platform/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	limiter := middleware.NewRateLimiter(10, 30)

	// Public routes take sanitized input only.
	public := r.Group("/")
	public.Use(middleware.SanitizeInputMiddleware(), limiter.Middleware())

	public.POST("/auth/register", authapi.Register)
	public.POST("/auth/login", authapi.Login)

	public.GET("/music/search", musicapi.Search)
	public.GET("/music/trending", musicapi.Trending)
	public.GET("/music/genre/:genre", musicapi.ByGenre)
	public.GET("/music/:trackId", musicapi.GetDetail)
	public.POST("/music/:trackId/share", musicapi.Share)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeInputMiddleware(), limiter.Middleware())

	auth.GET("/music/:trackId/stream", musicapi.Stream)

	user := auth.Group("/user")
	user.GET("/me", userapi.GetMe)
	user.POST("/playlists", userapi.CreatePlaylist)
	user.GET("/playlists", userapi.ListPlaylists)
	user.GET("/playlists/:playlistId", userapi.GetPlaylistDetail)
	user.PUT("/playlists/:playlistId", userapi.UpdatePlaylist)
	user.DELETE("/playlists/:playlistId", userapi.DeletePlaylist)
	user.POST("/playlists/:playlistId/tracks", userapi.AddTrackToPlaylist)
	user.DELETE("/playlists/:playlistId/tracks/:trackId", userapi.RemoveTrackFromPlaylist)

	user.POST("/music/:trackId/vote", userapi.VoteTrack)
	user.DELETE("/music/:trackId/vote", userapi.UnvoteTrack)

	user.POST("/artists/:artistId/follow", userapi.FollowArtist)
	user.DELETE("/artists/:artistId/follow", userapi.UnfollowArtist)
	user.GET("/following", userapi.ListFollowing)

	user.POST("/reports", userapi.CreateReport)
	user.POST("/apply", userapi.ApplyForArtist)

	artist := auth.Group("/artist")
	artist.Use(middleware.RequireRole(users.RoleArtist))
	artist.POST("/music", artistapi.UploadMusic)
	artist.GET("/music", artistapi.ListMusic)
	artist.PUT("/music/:trackId", artistapi.UpdateMusic)
	artist.DELETE("/music/:trackId", artistapi.DeleteMusic)

	artist.POST("/albums", artistapi.CreateAlbum)
	artist.GET("/albums", artistapi.ListAlbums)
	artist.GET("/albums/:albumId", artistapi.GetAlbumDetail)
	artist.PUT("/albums/:albumId", artistapi.UpdateAlbum)
	artist.DELETE("/albums/:albumId", artistapi.DeleteAlbum)
	artist.POST("/albums/:albumId/tracks", artistapi.AddTracksToAlbum)
	artist.DELETE("/albums/:albumId/tracks/:trackId", artistapi.RemoveTrackFromAlbum)

	artist.GET("/analytics", artistapi.GetAnalytics)
	artist.PATCH("/profile", artistapi.UpdateProfile)

	admin := auth.Group("/admin")
	admin.Use(middleware.RequireRole(users.RoleAdmin))
	admin.POST("/accounts/assign-role", adminapi.AssignRole)
	admin.GET("/accounts/search", adminapi.SearchAccounts)
	admin.DELETE("/accounts/:userId", adminapi.DeleteAccount)
	admin.GET("/users/:userId/details", adminapi.GetUserDetails)

	admin.GET("/artist-applications", adminapi.ListArtistApplications)
	admin.PATCH("/artist-applications/:id/process", adminapi.ProcessArtistApplication)

	admin.GET("/reports", adminapi.ListReports)
	admin.PATCH("/reports/:id/resolve", adminapi.ResolveReport)

	admin.DELETE("/music/:trackId", adminapi.DeleteMusic)
}
