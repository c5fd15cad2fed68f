package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/service"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Username string `json:"username" validate:"required,username"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type userResponse struct {
	ID       string  `json:"id"`
	Email    *string `json:"email"`
	Username string  `json:"username"`
}

type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

func newUserResponse(u *entities.User) userResponse {
	return userResponse{ID: u.ID.String(), Email: u.Email, Username: u.Username}
}

func newSessionResponse(u *entities.User, s *entities.Session) sessionResponse {
	return sessionResponse{Token: s.Token, ExpiresAt: s.ExpiresAt, User: newUserResponse(u)}
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, session, err := h.Auth.Register(c.Request.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, newSessionResponse(user, session))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, session, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(user, session))
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.Auth.Logout(c.Request.Context(), c.GetString(ctxToken)); err != nil {
		h.respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(currentUser(c))})
}

func (h *Handler) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.Auth.RequestPasswordReset(c.Request.Context(), req.Email, ""); err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "If the email is registered, a reset link has been sent."})
}

func (h *Handler) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.Auth.ResetPassword(c.Request.Context(), req.Token, req.Password, req.ConfirmPassword); err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated. Please sign in."})
}

// passwordMismatch answers the settings form, whose wording differs from the
// reset form.
func passwordMismatch(c *gin.Context, err error) bool {
	if errors.Is(err, service.ErrPasswordMismatch) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New passwords do not match!"})
		return true
	}
	return false
}
