package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkowalski/codeplay/backend/internal/services"
	"github.com/pkowalski/codeplay/backend/pkg/response"
)

type ProjectHandler struct {
	projects *services.ProjectStore
}

func NewProjectHandler(projects *services.ProjectStore) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		response.BadRequest(c, "invalid project index")
		return 0, false
	}
	return index, true
}

// List returns the catalog view: newest first, optionally narrowed by a
// name search and a category.
// GET /api/projects?search=&category=
func (h *ProjectHandler) List(c *gin.Context) {
	views, err := h.projects.Catalog(c.Query("search"), c.Query("category"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	total, err := h.projects.Count()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, gin.H{
		"total": total,
		"items": views,
	})
}

// GetByIndex returns the project at a stored-order index.
// GET /api/projects/:index
func (h *ProjectHandler) GetByIndex(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	project, err := h.projects.LoadByIndex(index)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, project)
}

type createProjectRequest struct {
	services.CreateProjectParams
	ConfirmReplace bool `json:"confirm_replace"`
}

// Create saves a new project. A name collision without confirm_replace
// answers 409 so the frontend can ask before retrying with the flag set.
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projects.Create(req.CreateProjectParams, req.ConfirmReplace)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, project)
}

type renameProjectRequest struct {
	Name string `json:"name"`
}

// Rename changes a project's name. A rename to the current name is an
// informational no-op, not an error.
// PUT /api/projects/:index/name
func (h *ProjectHandler) Rename(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	var req renameProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projects.Rename(index, req.Name)
	if errors.Is(err, services.ErrNoChange) {
		response.Info(c, "name unchanged", nil)
		return
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessMsg(c, fmt.Sprintf("project renamed to %q", project.Name), project)
}

// Duplicate clones a project under a unique copy name.
// POST /api/projects/:index/duplicate
func (h *ProjectHandler) Duplicate(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	project, err := h.projects.Duplicate(index)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, project)
}

// Delete removes one project. Irreversible.
// DELETE /api/projects/:index
func (h *ProjectHandler) Delete(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	project, err := h.projects.Delete(index)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessMsg(c, fmt.Sprintf("project %q deleted", project.Name), nil)
}

// DeleteAll clears the whole collection. Irreversible.
// DELETE /api/projects
func (h *ProjectHandler) DeleteAll(c *gin.Context) {
	count, err := h.projects.DeleteAll()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessMsg(c, fmt.Sprintf("deleted all projects (%d)", count), gin.H{"deleted": count})
}

type sortProjectsRequest struct {
	By string `json:"by"`
}

// Sort persistently re-orders the collection by name or creation date.
// POST /api/projects/sort
func (h *ProjectHandler) Sort(c *gin.Context) {
	var req sortProjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.projects.SortBy(req.By); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessMsg(c, "projects sorted by "+req.By, nil)
}

// Export serves the whole collection as a downloadable backup file.
// GET /api/projects/export
func (h *ProjectHandler) Export(c *gin.Context) {
	export, err := h.projects.Export()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	filename := services.ProjectExportFilename(time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(http.StatusOK, export)
}

// Import appends projects from an uploaded backup file.
// POST /api/projects/import
func (h *ProjectHandler) Import(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "failed to read import payload")
		return
	}

	count, err := h.projects.Import(data)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessMsg(c, fmt.Sprintf("imported %d projects", count), gin.H{"imported": count})
}
