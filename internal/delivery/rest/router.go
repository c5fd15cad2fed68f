package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine with every API route. Forwarding headers
// are honoured only from trustedProxies; with none, the client address is
// the peer address.
func NewRouter(h *Handler, logger *zap.Logger, trustedProxies []string) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}
	r.Use(recovery(logger), requestLogger(logger))

	r.GET("/healthz", h.healthz)

	api := r.Group("/api")
	required := h.authRequired()
	optional := h.authOptional()

	api.GET("/surahs", h.listSurahs)
	api.GET("/surahs/:number", optional, h.getSurah)
	api.GET("/pages/:number", h.getPage)

	ayahs := api.Group("/ayahs/:surah/:ayah")
	ayahs.GET("", required, h.getAyah)
	ayahs.GET("/audio", optional, h.getAyahAudio)
	ayahs.PUT("/note", required, h.saveNote)
	ayahs.DELETE("/note", required, h.deleteNote)
	ayahs.POST("/bookmark", required, h.toggleBookmark)

	api.GET("/notes", required, h.listNotes)
	api.GET("/bookmarks", required, h.listBookmarks)
	api.DELETE("/bookmarks/:surah/:ayah", required, h.removeBookmark)

	api.POST("/memorisation", optional, h.startChallenge)
	api.POST("/memorisation/:id/check", optional, h.checkChallenge)

	auth := api.Group("/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.POST("/logout", required, h.logout)
	auth.GET("/session", required, h.session)
	auth.POST("/forgot-password", h.forgotPassword)
	auth.POST("/reset-password", h.resetPassword)

	settings := api.Group("/settings", required)
	settings.GET("", h.getSettings)
	settings.PUT("", h.updateSettings)
	settings.PUT("/username", h.updateUsername)
	settings.PUT("/password", h.updatePassword)

	return r, nil
}
