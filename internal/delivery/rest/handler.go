// Package rest exposes the services as a JSON API for the web front-end.
package rest

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/aliskhannn/mushaf/internal/quran"
)

// Services bundles everything the API calls into.
type Services struct {
	Reader    Reader
	Ayahs     AyahReader
	Notes     NoteManager
	Bookmarks BookmarkManager
	Memoriser Memoriser
	Auth      Authenticator
	Settings  SettingsManager
}

type Handler struct {
	Services
	validate *validator.Validate
	logger   *zap.Logger
}

func NewHandler(services Services, logger *zap.Logger) *Handler {
	return &Handler{
		Services: services,
		validate: newValidator(),
		logger:   logger,
	}
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindJSON decodes and validates the request body, answering 400 on failure.
func (h *Handler) bindJSON(c *gin.Context, req any) bool {
	return h.bind(c, req, false)
}

// bindOptionalJSON is bindJSON that treats an empty body as zero values.
func (h *Handler) bindOptionalJSON(c *gin.Context, req any) bool {
	return h.bind(c, req, true)
}

func (h *Handler) bind(c *gin.Context, req any, allowEmpty bool) bool {
	if err := c.ShouldBindJSON(req); err != nil && !(allowEmpty && errors.Is(err, io.EOF)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return false
	}
	return true
}

// ayahParams reads :surah and :ayah.
func ayahParams(c *gin.Context) (int, int, bool) {
	surah, err := strconv.Atoi(c.Param("surah"))
	if err != nil || !quran.ValidSurah(surah) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Surah number."})
		return 0, 0, false
	}
	ayah, err := strconv.Atoi(c.Param("ayah"))
	if err != nil || ayah < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Ayah number."})
		return 0, 0, false
	}
	return surah, ayah, true
}

func intParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + "."})
		return 0, false
	}
	return n, true
}
