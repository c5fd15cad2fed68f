package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/mushaf/internal/quran"
	"github.com/aliskhannn/mushaf/internal/service"
)

func (h *Handler) listSurahs(c *gin.Context) {
	surahs, err := h.Reader.ListSurahs(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"surahs": surahs})
}

func (h *Handler) getSurah(c *gin.Context) {
	number, ok := intParam(c, "number")
	if !ok {
		return
	}

	surah, err := h.Reader.Surah(c.Request.Context(), currentUserID(c), number)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, surah)
}

func (h *Handler) getPage(c *gin.Context) {
	number, ok := intParam(c, "number")
	if !ok {
		return
	}

	page, err := h.Reader.Page(c.Request.Context(), number)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) getAyah(c *gin.Context) {
	surah, ayah, ok := ayahParams(c)
	if !ok {
		return
	}

	detail, err := h.Ayahs.Ayah(c.Request.Context(), currentUserID(c), surah, ayah)
	if err != nil {
		if errors.Is(err, service.ErrAyahLoad) && errors.Is(err, quran.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Failed to load Ayah details. Please try again."})
			return
		}
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) getAyahAudio(c *gin.Context) {
	surah, ayah, ok := ayahParams(c)
	if !ok {
		return
	}

	url, err := h.Reader.Recitation(c.Request.Context(), currentUserID(c), surah, ayah)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audio": url})
}
