package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkowalski/codeplay/backend/internal/services"
	"github.com/pkowalski/codeplay/backend/pkg/response"
)

type SettingsHandler struct {
	settings *services.SettingsService
}

func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get returns the current editor preferences.
// GET /api/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	response.Success(c, h.settings.Get())
}

// Update shallow-merges the posted fragment into the preferences and
// persists the result.
// PUT /api/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "failed to read settings payload")
		return
	}

	settings, err := h.settings.Update(data)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessMsg(c, "settings saved", settings)
}

// Reset restores factory defaults.
// POST /api/settings/reset
func (h *SettingsHandler) Reset(c *gin.Context) {
	settings, err := h.settings.Reset()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessMsg(c, "settings restored to defaults", settings)
}

// Export serves the preferences as a downloadable backup file.
// GET /api/settings/export
func (h *SettingsHandler) Export(c *gin.Context) {
	filename := services.SettingsExportFilename(time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(http.StatusOK, h.settings.Export())
}

// Import merges preferences from an uploaded backup file.
// POST /api/settings/import
func (h *SettingsHandler) Import(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "failed to read import payload")
		return
	}

	settings, err := h.settings.Import(data)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessMsg(c, "settings imported", settings)
}

// GetTheme returns the persisted theme.
// GET /api/settings/theme
func (h *SettingsHandler) GetTheme(c *gin.Context) {
	theme, err := h.settings.Theme()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"theme": theme})
}

type setThemeRequest struct {
	Theme string `json:"theme"`
}

// SetTheme persists the theme.
// PUT /api/settings/theme
func (h *SettingsHandler) SetTheme(c *gin.Context) {
	var req setThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.settings.SetTheme(req.Theme); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"theme": req.Theme})
}

// ToggleTheme flips between light and dark.
// POST /api/settings/theme/toggle
func (h *SettingsHandler) ToggleTheme(c *gin.Context) {
	theme, err := h.settings.ToggleTheme()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"theme": theme})
}
