package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkowalski/codeplay/backend/internal/models"
	"github.com/pkowalski/codeplay/backend/internal/storage"
)

// ErrConfirmReplace signals that a project with the requested name already
// exists and the caller has not confirmed replacing it.
var ErrConfirmReplace = errors.New("confirmation required")

// ProjectStore owns the durable project collection and the auto-save
// snapshot. Every mutation re-serializes the whole collection under the
// savedProjects key; there are no per-project rows.
type ProjectStore struct {
	store storage.Store
	now   func() time.Time
}

func NewProjectStore(store storage.Store) *ProjectStore {
	return &ProjectStore{store: store, now: time.Now}
}

// isoTimestamp matches the millisecond-precision UTC format the stored
// JSON has always used.
func isoTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

func (s *ProjectStore) timestamp() string {
	return isoTimestamp(s.now())
}

func newProjectID(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("project_%d_%s", t.UnixMilli(), suffix)
}

func (s *ProjectStore) load() ([]models.Project, error) {
	raw, ok, err := s.store.Get(storage.KeySavedProjects)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var projects []models.Project
	if err := json.Unmarshal([]byte(raw), &projects); err != nil {
		return nil, fmt.Errorf("stored project collection is corrupt: %w", err)
	}
	return projects, nil
}

func (s *ProjectStore) save(projects []models.Project) error {
	data, err := json.Marshal(projects)
	if err != nil {
		return err
	}
	return s.store.Set(storage.KeySavedProjects, string(data))
}

// List returns the full collection in stored order.
func (s *ProjectStore) List() ([]models.Project, error) {
	return s.load()
}

// Count returns the number of stored projects.
func (s *ProjectStore) Count() (int, error) {
	projects, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(projects), nil
}

// ProjectView pairs a project with its position in the stored collection so
// index-addressed operations keep working on filtered or re-sorted views.
type ProjectView struct {
	Index int `json:"index"`
	models.Project
}

// Catalog returns projects for the catalog view: newest first (lastModified
// falling back to created), optionally narrowed by a case-insensitive name
// search and an exact category match.
func (s *ProjectStore) Catalog(search, category string) ([]ProjectView, error) {
	projects, err := s.load()
	if err != nil {
		return nil, err
	}

	views := make([]ProjectView, 0, len(projects))
	search = strings.ToLower(strings.TrimSpace(search))
	for i, p := range projects {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		views = append(views, ProjectView{Index: i, Project: p})
	}

	sort.SliceStable(views, func(a, b int) bool {
		return recencyTime(views[a].Project).After(recencyTime(views[b].Project))
	})
	return views, nil
}

// recencyTime orders by instant rather than by string shape, so imported
// backups with second-precision timestamps still sort correctly. Unparsable
// timestamps sink to the end.
func recencyTime(p models.Project) time.Time {
	ts := p.LastModified
	if ts == "" {
		ts = p.Created
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}
	}
	return t
}

func createdTime(p models.Project) time.Time {
	t, err := time.Parse(time.RFC3339, p.Created)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CreateProjectParams carries the save-dialog fields.
type CreateProjectParams struct {
	Name        string `json:"name"`
	HTML        string `json:"html"`
	CSS         string `json:"css"`
	JS          string `json:"js"`
	Category    string `json:"category"`
	TagsCSV     string `json:"tags"`
	Description string `json:"description"`
}

// splitTags turns the comma-separated tag input into trimmed, non-empty
// tags. Order and duplicates from the input are preserved.
func splitTags(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(csv, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Create validates and appends a new project. A name collision returns
// ErrConfirmReplace unless confirmReplace is set, in which case the prior
// project with that name is removed first. All fields of the replaced
// project are lost; nothing is merged.
func (s *ProjectStore) Create(params CreateProjectParams, confirmReplace bool) (*models.Project, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, newValidationError("project name is required")
	}
	if strings.TrimSpace(params.HTML) == "" &&
		strings.TrimSpace(params.CSS) == "" &&
		strings.TrimSpace(params.JS) == "" {
		return nil, newValidationError("project is empty, add some code before saving")
	}

	projects, err := s.load()
	if err != nil {
		return nil, err
	}

	for i, p := range projects {
		if p.Name == name {
			if !confirmReplace {
				return nil, ErrConfirmReplace
			}
			projects = append(projects[:i], projects[i+1:]...)
			break
		}
	}

	category := params.Category
	if category == "" {
		category = models.DefaultCategory
	}

	now := s.now()
	ts := isoTimestamp(now)
	project := models.Project{
		ID:           newProjectID(now),
		Name:         name,
		HTML:         params.HTML,
		CSS:          params.CSS,
		JS:           params.JS,
		Category:     category,
		Tags:         splitTags(params.TagsCSV),
		Description:  strings.TrimSpace(params.Description),
		Created:      ts,
		LastModified: ts,
		Version:      models.ProjectVersion,
	}

	projects = append(projects, project)
	if err := s.save(projects); err != nil {
		return nil, err
	}
	return &project, nil
}

// LoadByIndex returns the project at position index in stored order.
func (s *ProjectStore) LoadByIndex(index int) (*models.Project, error) {
	projects, err := s.load()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(projects) {
		return nil, newNotFoundError("project not found")
	}
	p := projects[index]
	return &p, nil
}

// Rename changes a project's display name. Renaming to the current name is
// reported as ErrNoChange, not as a failure, and leaves lastModified alone.
func (s *ProjectStore) Rename(index int, newName string) (*models.Project, error) {
	projects, err := s.load()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(projects) {
		return nil, newNotFoundError("project not found")
	}

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, newValidationError("project name cannot be empty")
	}
	if newName == projects[index].Name {
		return nil, ErrNoChange
	}
	for i, p := range projects {
		if i != index && p.Name == newName {
			return nil, newValidationError("a project with this name already exists")
		}
	}

	projects[index].Name = newName
	projects[index].LastModified = s.timestamp()
	if err := s.save(projects); err != nil {
		return nil, err
	}
	p := projects[index]
	return &p, nil
}

// Duplicate clones the project at index under a fresh id and a unique copy
// name: " (kopia)", then " (kopia 2)", " (kopia 3)", ... until unused.
func (s *ProjectStore) Duplicate(index int) (*models.Project, error) {
	projects, err := s.load()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(projects) {
		return nil, newNotFoundError("project not found")
	}

	original := projects[index]
	copyName := original.Name + " (kopia)"
	counter := 1
	for nameExists(projects, copyName) {
		counter++
		copyName = fmt.Sprintf("%s (kopia %d)", original.Name, counter)
	}

	now := s.now()
	ts := isoTimestamp(now)
	dup := original
	dup.ID = newProjectID(now)
	dup.Name = copyName
	dup.Created = ts
	dup.LastModified = ts
	dup.Version = models.ProjectVersion
	dup.Tags = append([]string(nil), original.Tags...)

	projects = append(projects, dup)
	if err := s.save(projects); err != nil {
		return nil, err
	}
	return &dup, nil
}

func nameExists(projects []models.Project, name string) bool {
	for _, p := range projects {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Delete removes the project at index. Irreversible, no soft delete.
func (s *ProjectStore) Delete(index int) (*models.Project, error) {
	projects, err := s.load()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(projects) {
		return nil, newNotFoundError("project not found")
	}

	removed := projects[index]
	projects = append(projects[:index], projects[index+1:]...)
	if err := s.save(projects); err != nil {
		return nil, err
	}
	return &removed, nil
}

// DeleteAll clears the whole collection and returns how many projects were
// removed.
func (s *ProjectStore) DeleteAll() (int, error) {
	projects, err := s.load()
	if err != nil {
		return 0, err
	}
	if err := s.store.Remove(storage.KeySavedProjects); err != nil {
		return 0, err
	}
	return len(projects), nil
}

// SortBy persistently re-orders the collection. kind is "name" (ascending)
// or "date" (created, newest first).
func (s *ProjectStore) SortBy(kind string) error {
	if kind != "name" && kind != "date" {
		return newValidationError("unknown sort kind: %s", kind)
	}

	projects, err := s.load()
	if err != nil {
		return err
	}

	switch kind {
	case "name":
		sort.SliceStable(projects, func(a, b int) bool {
			return projects[a].Name < projects[b].Name
		})
	case "date":
		sort.SliceStable(projects, func(a, b int) bool {
			return createdTime(projects[a]).After(createdTime(projects[b]))
		})
	}
	return s.save(projects)
}

// Export serializes the whole collection as a downloadable backup document.
// An empty collection is a reported failure, not a zero-project file.
func (s *ProjectStore) Export() (*models.ProjectExport, error) {
	projects, err := s.load()
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, newValidationError("no projects to export")
	}
	return &models.ProjectExport{
		ExportDate:    s.timestamp(),
		ProjectsCount: len(projects),
		Projects:      projects,
	}, nil
}

// Import appends all projects from an export document to the collection.
// Imported projects are kept as-is: no de-duplication and no id rewrite, so
// a restore can produce two projects sharing a name (append-only backup
// semantics). Returns the number of imported projects.
func (s *ProjectStore) Import(data []byte) (int, error) {
	var doc struct {
		Projects *[]models.Project `json:"projects"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, newFormatError("invalid import file: %v", err)
	}
	if doc.Projects == nil {
		return 0, newFormatError("import file has no projects array")
	}

	projects, err := s.load()
	if err != nil {
		return 0, err
	}
	projects = append(projects, *doc.Projects...)
	if err := s.save(projects); err != nil {
		return 0, err
	}
	return len(*doc.Projects), nil
}

// SnapshotAutoSave fully replaces the single auto-save snapshot with the
// given buffers. The snapshot is a separate entity and never touches the
// project collection.
func (s *ProjectStore) SnapshotAutoSave(html, css, js string) error {
	ts := s.timestamp()
	snapshot := models.AutoSaveSnapshot{
		HTML:         html,
		CSS:          css,
		JS:           js,
		Timestamp:    ts,
		LastModified: ts,
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return s.store.Set(storage.KeyAutoSave, string(data))
}

// LoadAutoSaveSnapshot returns the snapshot, or nil when none exists. The
// snapshot is left in place after reading.
func (s *ProjectStore) LoadAutoSaveSnapshot() (*models.AutoSaveSnapshot, error) {
	raw, ok, err := s.store.Get(storage.KeyAutoSave)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var snapshot models.AutoSaveSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, fmt.Errorf("stored auto-save snapshot is corrupt: %w", err)
	}
	return &snapshot, nil
}
