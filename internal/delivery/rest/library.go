package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type saveNoteRequest struct {
	Content string `json:"content" validate:"max=10000"`
}

func (h *Handler) saveNote(c *gin.Context) {
	surah, ayah, ok := ayahParams(c)
	if !ok {
		return
	}

	var req saveNoteRequest
	if !h.bindJSON(c, &req) {
		return
	}

	note, err := h.Notes.Save(c.Request.Context(), currentUserID(c), surah, ayah, req.Content)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *Handler) deleteNote(c *gin.Context) {
	surah, ayah, ok := ayahParams(c)
	if !ok {
		return
	}

	if err := h.Notes.Delete(c.Request.Context(), currentUserID(c), surah, ayah); err != nil {
		h.respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listNotes(c *gin.Context) {
	notes, err := h.Notes.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (h *Handler) toggleBookmark(c *gin.Context) {
	surah, ayah, ok := ayahParams(c)
	if !ok {
		return
	}

	bookmarked, err := h.Bookmarks.Toggle(c.Request.Context(), currentUserID(c), surah, ayah)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked})
}

func (h *Handler) listBookmarks(c *gin.Context) {
	bookmarks, err := h.Bookmarks.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": bookmarks})
}

func (h *Handler) removeBookmark(c *gin.Context) {
	surah, ayah, ok := ayahParams(c)
	if !ok {
		return
	}

	if err := h.Bookmarks.Remove(c.Request.Context(), currentUserID(c), surah, ayah); err != nil {
		h.respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
