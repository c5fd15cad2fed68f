package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/mushaf/internal/quran"
	"github.com/aliskhannn/mushaf/internal/service"
)

// errorMapping pairs a sentinel with the status and text shown to the user.
type errorMapping struct {
	err     error
	status  int
	message string
}

// Order matters: wrapped errors match the first sentinel they contain.
var errorMappings = []errorMapping{
	{service.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password. Please try again."},
	{service.ErrUserAlreadyRegistered, http.StatusConflict, "User already registered"},
	{service.ErrInvalidEmail, http.StatusBadRequest, "Please enter a valid email address."},
	{service.ErrInvalidUsername, http.StatusBadRequest, "Username must be 3-30 characters: letters, numbers, _ or -."},
	{service.ErrPasswordTooShort, http.StatusBadRequest, "Password must be at least 6 characters."},
	{service.ErrPasswordMismatch, http.StatusBadRequest, "Passwords do not match."},
	{service.ErrInvalidResetToken, http.StatusBadRequest, "The reset link is invalid or has expired."},

	{service.ErrSelectionRequired, http.StatusBadRequest, "Please enter either a Surah number or a Juz number."},
	{service.ErrNoAyahFound, http.StatusNotFound, "No Ayah found. Please try again."},
	{service.ErrChallengeNotFound, http.StatusNotFound, "Challenge not found. Please start a new one."},
	{service.ErrNoFollowingAyah, http.StatusConflict, "This is the last Ayah of the Quran."},
	{service.ErrRecitationUnavailable, http.StatusNotFound, "Recitation not available for this Ayah"},
	{quran.ErrAudioUnavailable, http.StatusNotFound, "Audio not available for this Ayah."},

	{service.ErrNoteTooLong, http.StatusBadRequest, "The note is too long."},
	{service.ErrNoteSave, http.StatusInternalServerError, "Failed to save the note. Please try again."},

	{quran.ErrInvalidSurah, http.StatusBadRequest, "Invalid Surah number."},
	{quran.ErrInvalidAyah, http.StatusBadRequest, "Invalid Ayah number."},
	{quran.ErrInvalidPage, http.StatusBadRequest, "Invalid page number."},
	{quran.ErrInvalidJuz, http.StatusBadRequest, "Invalid Juz number."},
	{quran.ErrInvalidEdition, http.StatusBadRequest, "Unknown edition."},
	{service.ErrAyahLoad, http.StatusBadGateway, "Failed to load Ayah details. Please try again."},
	{quran.ErrNotFound, http.StatusNotFound, "Not found."},
}

// respond writes the JSON error for err, logging unexpected failures.
func (h *Handler) respond(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, "Something went wrong. Please try again."
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			status, message = m.status, m.message
			break
		}
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Stringer("user_id", currentUserID(c)),
			zap.Error(err),
		)
	}

	c.JSON(status, gin.H{"error": message})
}
