package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/mushaf/internal/service"
)

type startChallengeRequest struct {
	Surah int `json:"surah" validate:"omitempty,min=1,max=114"`
	Juz   int `json:"juz" validate:"omitempty,min=1,max=30"`
}

type checkChallengeRequest struct {
	Answer string `json:"answer" validate:"required"`
}

func (h *Handler) startChallenge(c *gin.Context) {
	var req startChallengeRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	challenge, err := h.Memoriser.Start(c.Request.Context(), challengeOwner(c), service.Selection{
		Surah: req.Surah,
		Juz:   req.Juz,
	})
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, challenge)
}

func (h *Handler) checkChallenge(c *gin.Context) {
	var req checkChallengeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.Memoriser.Check(c.Request.Context(), challengeOwner(c), c.Param("id"), req.Answer)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
