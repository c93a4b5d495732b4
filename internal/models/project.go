package models

// Project is a named, persisted bundle of the three source buffers plus
// metadata. Timestamps are ISO-8601 strings so the stored JSON stays
// byte-compatible with exports produced by older builds.
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	HTML         string   `json:"html"`
	CSS          string   `json:"css"`
	JS           string   `json:"js"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	Description  string   `json:"description"`
	Created      string   `json:"created"`
	LastModified string   `json:"lastModified"`
	Version      string   `json:"version"`
}

// ProjectVersion tags the project format produced by this build.
const ProjectVersion = "1.0"

// DefaultCategory is used when a project is saved without a category.
const DefaultCategory = "Other"

// Categories a project can be filed under.
var Categories = []string{
	"Website", "Component", "Experiment", "Tutorial",
	"Game", "Tool", "Portfolio", "Landing",
}

// AutoSaveSnapshot is the single always-latest backup of the live buffers.
// It is distinct from the Project collection and never merged into it.
type AutoSaveSnapshot struct {
	HTML         string `json:"html"`
	CSS          string `json:"css"`
	JS           string `json:"js"`
	Timestamp    string `json:"timestamp"`
	LastModified string `json:"lastModified"`
}

// ProjectExport is the downloadable backup document for the whole collection.
type ProjectExport struct {
	ExportDate    string    `json:"exportDate"`
	ProjectsCount int       `json:"projectsCount"`
	Projects      []Project `json:"projects"`
}
