package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkowalski/codeplay/backend/internal/services"
	"github.com/pkowalski/codeplay/backend/pkg/response"
)

type WorkspaceHandler struct {
	workspace *services.Workspace
	composer  *services.Composer
	projects  *services.ProjectStore
}

func NewWorkspaceHandler(workspace *services.Workspace, composer *services.Composer, projects *services.ProjectStore) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspace: workspace,
		composer:  composer,
		projects:  projects,
	}
}

// Get returns the current live buffers.
// GET /api/workspace
func (h *WorkspaceHandler) Get(c *gin.Context) {
	response.Success(c, h.workspace.Buffers())
}

// Set replaces the live buffers. The preview recomposes synchronously on
// every call, keystroke-level bursts included.
// PUT /api/workspace
func (h *WorkspaceHandler) Set(c *gin.Context) {
	var buffers services.Buffers
	if err := c.ShouldBindJSON(&buffers); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.workspace.SetBuffers(buffers)
	response.Success(c, gin.H{"composed": true})
}

// Preview serves the last composed document for the inline preview frame.
// GET /api/workspace/preview
func (h *WorkspaceHandler) Preview(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(h.workspace.Preview()))
}

// Refresh recomposes on demand and serves the result.
// POST /api/workspace/refresh
func (h *WorkspaceHandler) Refresh(c *gin.Context) {
	h.workspace.Refresh()
	response.SuccessMsg(c, "preview refreshed", nil)
}

// Load copies a stored project into the live buffers. On failure the
// buffers stay untouched.
// POST /api/workspace/load/:index
func (h *WorkspaceHandler) Load(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	name, err := h.workspace.LoadProject(index)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessMsg(c, fmt.Sprintf("project %q loaded", name), h.workspace.Buffers())
}

// Download serves the last composed document as a standalone file.
// GET /api/workspace/download
func (h *WorkspaceHandler) Download(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="`+services.DownloadFilename+`"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(h.workspace.Preview()))
}

// PreviewProject renders a stored project standalone, with its name as the
// document title, without touching the live buffers.
// GET /api/projects/:index/preview
func (h *WorkspaceHandler) PreviewProject(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	project, err := h.projects.LoadByIndex(index)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	doc := h.composer.ComposeStandalone(project.Name, project.HTML, project.CSS, project.JS)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}
