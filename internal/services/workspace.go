package services

import (
	"sync"

	"github.com/pkowalski/codeplay/backend/pkg/logger"
)

// Buffers holds the three live source roles.
type Buffers struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
	JS   string `json:"js"`
}

// Workspace owns the live buffers backing the editors and the cached
// composed preview. Every buffer change recomposes eagerly; there is no
// debounce. The workspace itself persists nothing, the auto-save scheduler
// and explicit saves go through the ProjectStore.
type Workspace struct {
	mu       sync.Mutex
	buffers  Buffers
	composed string

	composer *Composer
	projects *ProjectStore
}

func NewWorkspace(composer *Composer, projects *ProjectStore) *Workspace {
	w := &Workspace{
		composer: composer,
		projects: projects,
	}
	w.composed = composer.Compose("", "", "")
	return w
}

// Buffers returns a copy of the current buffer contents.
func (w *Workspace) Buffers() Buffers {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buffers
}

// SetBuffers replaces the live buffers and recomposes the preview
// synchronously.
func (w *Workspace) SetBuffers(b Buffers) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buffers = b
	w.composed = w.composer.Compose(b.HTML, b.CSS, b.JS)
}

// Preview returns the last composed document. Manual refresh and the
// open-in-new-window path both reuse this string verbatim.
func (w *Workspace) Preview() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.composed
}

// Refresh recomposes from the current buffers and returns the result.
func (w *Workspace) Refresh() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.composed = w.composer.Compose(w.buffers.HTML, w.buffers.CSS, w.buffers.JS)
	return w.composed
}

// LoadProject copies the stored project at index into the live buffers and
// recomposes. On failure the buffers are left untouched.
func (w *Workspace) LoadProject(index int) (string, error) {
	project, err := w.projects.LoadByIndex(index)
	if err != nil {
		return "", err
	}

	w.SetBuffers(Buffers{HTML: project.HTML, CSS: project.CSS, JS: project.JS})
	return project.Name, nil
}

// Snapshot writes the current buffers to the auto-save snapshot.
func (w *Workspace) Snapshot() error {
	b := w.Buffers()
	return w.projects.SnapshotAutoSave(b.HTML, b.CSS, b.JS)
}

// RestoreAutoSave rehydrates the buffers from the last auto-save snapshot.
// Without a snapshot the buffers stay as they are. Returns whether a
// snapshot was applied.
func (w *Workspace) RestoreAutoSave() (bool, error) {
	snapshot, err := w.projects.LoadAutoSaveSnapshot()
	if err != nil {
		return false, err
	}
	if snapshot == nil {
		return false, nil
	}

	w.SetBuffers(Buffers{HTML: snapshot.HTML, CSS: snapshot.CSS, JS: snapshot.JS})
	logger.Info().Str("timestamp", snapshot.Timestamp).Msg("restored auto-saved session")
	return true, nil
}
