package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/pkowalski/codeplay/backend/internal/models"
	"github.com/pkowalski/codeplay/backend/internal/storage"
	"github.com/pkowalski/codeplay/backend/pkg/logger"
)

// Valid themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// SettingsService owns the editor preferences and the theme. Preferences
// are an explicit struct with a load/save pair; persisted values are
// shallow-merged over the defaults at load and written back after every
// change.
type SettingsService struct {
	mu       sync.Mutex
	store    storage.Store
	settings models.EditorSettings
	now      func() time.Time
}

func NewSettingsService(store storage.Store) *SettingsService {
	return &SettingsService{
		store:    store,
		settings: models.DefaultEditorSettings(),
		now:      time.Now,
	}
}

// Load merges any persisted settings over the defaults. A corrupt persisted
// blob is logged and ignored, leaving the defaults in effect.
func (s *SettingsService) Load() error {
	raw, ok, err := s.store.Get(storage.KeyEditorSettings)
	if err != nil {
		return err
	}
	if !ok || raw == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.settings.Merge([]byte(raw)); err != nil {
		logger.Warn().Err(err).Msg("failed to load persisted settings, using defaults")
	}
	return nil
}

func (s *SettingsService) persistLocked() error {
	data, err := json.Marshal(s.settings)
	if err != nil {
		return err
	}
	return s.store.Set(storage.KeyEditorSettings, string(data))
}

// Get returns the current settings.
func (s *SettingsService) Get() models.EditorSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Update shallow-merges the given JSON fragment into the settings and
// persists the result. Unknown keys are carried through harmlessly.
func (s *SettingsService) Update(fragment []byte) (models.EditorSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.settings
	if err := updated.Merge(fragment); err != nil {
		return s.settings, newFormatError("invalid settings payload: %v", err)
	}

	s.settings = updated
	if err := s.persistLocked(); err != nil {
		return s.settings, err
	}
	return s.settings, nil
}

// Reset restores factory defaults and persists them.
func (s *SettingsService) Reset() (models.EditorSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = models.DefaultEditorSettings()
	if err := s.persistLocked(); err != nil {
		return s.settings, err
	}
	return s.settings, nil
}

// Export wraps the current settings in the downloadable backup document.
func (s *SettingsService) Export() *models.SettingsExport {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.settings
	return &models.SettingsExport{
		ExportDate: isoTimestamp(s.now()),
		Settings:   &settings,
	}
}

// Import merges the settings from a backup document. A document without a
// settings object is a FormatError.
func (s *SettingsService) Import(data []byte) (models.EditorSettings, error) {
	var doc struct {
		Settings json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return s.Get(), newFormatError("invalid settings file: %v", err)
	}
	if doc.Settings == nil {
		return s.Get(), newFormatError("settings file has no settings object")
	}
	return s.Update(doc.Settings)
}

// Theme returns the persisted theme, defaulting to light.
func (s *SettingsService) Theme() (string, error) {
	raw, ok, err := s.store.Get(storage.KeyEditorTheme)
	if err != nil {
		return "", err
	}
	if !ok || (raw != ThemeLight && raw != ThemeDark) {
		return ThemeLight, nil
	}
	return raw, nil
}

// SetTheme persists the theme.
func (s *SettingsService) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return newValidationError("unknown theme: %s", theme)
	}
	return s.store.Set(storage.KeyEditorTheme, theme)
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *SettingsService) ToggleTheme() (string, error) {
	current, err := s.Theme()
	if err != nil {
		return "", err
	}

	next := ThemeDark
	if current == ThemeDark {
		next = ThemeLight
	}
	if err := s.store.Set(storage.KeyEditorTheme, next); err != nil {
		return "", err
	}
	return next, nil
}
