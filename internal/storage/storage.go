// Package storage provides the flat key-value namespace the playground
// persists into. Collections are stored as whole JSON documents under a
// single key, so exports stay byte-compatible with frontend-local backups.
package storage

// Well-known storage keys.
const (
	KeySavedProjects  = "savedProjects"
	KeyAutoSave       = "autoSavedProject"
	KeyEditorSettings = "codeEditorSettings"
	KeyEditorTheme    = "codeEditorTheme"
)

// Store is a synchronous key-value store. Get reports presence explicitly
// so an empty value is distinguishable from an absent key.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}
