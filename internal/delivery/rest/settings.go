package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type updateSettingsRequest struct {
	Reciter *string `json:"reciter" validate:"omitempty,edition"`
	Edition *string `json:"edition" validate:"omitempty,edition"`
}

type updateUsernameRequest struct {
	Username string `json:"username" validate:"required,username"`
}

type updatePasswordRequest struct {
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

func (h *Handler) getSettings(c *gin.Context) {
	settings, err := h.Settings.GetOrCreate(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) updateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	userID := currentUserID(c)

	if req.Reciter != nil {
		if err := h.Settings.UpdateReciter(ctx, userID, *req.Reciter); err != nil {
			h.respond(c, err)
			return
		}
	}
	if req.Edition != nil {
		if err := h.Settings.UpdateEdition(ctx, userID, *req.Edition); err != nil {
			h.respond(c, err)
			return
		}
	}

	h.getSettings(c)
}

func (h *Handler) updateUsername(c *gin.Context) {
	var req updateUsernameRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.Auth.UpdateUsername(c.Request.Context(), currentUserID(c), req.Username); err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Username updated successfully!"})
}

func (h *Handler) updatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	err := h.Auth.UpdatePassword(c.Request.Context(), currentUserID(c), req.Password, req.ConfirmPassword)
	if err != nil {
		if passwordMismatch(c, err) {
			return
		}
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully!"})
}
