package models

import "encoding/json"

// EditorSettings is the flat editor preferences mapping. Keys not known to
// this build are kept in Extra and written back untouched, so settings saved
// by a newer frontend survive a round trip through an older backend.
type EditorSettings struct {
	FontSize             int    `json:"fontSize"`
	FontFamily           string `json:"fontFamily"`
	WordWrap             string `json:"wordWrap"`
	Minimap              bool   `json:"minimap"`
	LineNumbers          string `json:"lineNumbers"`
	AutoClosingBrackets  string `json:"autoClosingBrackets"`
	AutoClosingQuotes    string `json:"autoClosingQuotes"`
	TabSize              int    `json:"tabSize"`
	InsertSpaces         bool   `json:"insertSpaces"`
	RenderWhitespace     string `json:"renderWhitespace"`
	CursorStyle          string `json:"cursorStyle"`
	ScrollBeyondLastLine bool   `json:"scrollBeyondLastLine"`
	SmoothScrolling      bool   `json:"smoothScrolling"`
	MouseWheelZoom       bool   `json:"mouseWheelZoom"`

	Extra map[string]json.RawMessage `json:"-"`
}

// DefaultEditorSettings returns the factory defaults.
func DefaultEditorSettings() EditorSettings {
	return EditorSettings{
		FontSize:             15,
		FontFamily:           `"JetBrains Mono", monospace`,
		WordWrap:             "on",
		Minimap:              true,
		LineNumbers:          "on",
		AutoClosingBrackets:  "always",
		AutoClosingQuotes:    "always",
		TabSize:              4,
		InsertSpaces:         true,
		RenderWhitespace:     "none",
		CursorStyle:          "line",
		ScrollBeyondLastLine: true,
		SmoothScrolling:      false,
		MouseWheelZoom:       false,
	}
}

// settingsAlias avoids recursing into the custom marshalers.
type settingsAlias EditorSettings

var knownSettingsKeys = map[string]bool{
	"fontSize": true, "fontFamily": true, "wordWrap": true, "minimap": true,
	"lineNumbers": true, "autoClosingBrackets": true, "autoClosingQuotes": true,
	"tabSize": true, "insertSpaces": true, "renderWhitespace": true,
	"cursorStyle": true, "scrollBeyondLastLine": true, "smoothScrolling": true,
	"mouseWheelZoom": true,
}

func (s EditorSettings) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(settingsAlias(s))
	if err != nil {
		return nil, err
	}

	if len(s.Extra) == 0 {
		return base, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range s.Extra {
		if !knownSettingsKeys[k] {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

func (s *EditorSettings) UnmarshalJSON(data []byte) error {
	var alias settingsAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range raw {
		if knownSettingsKeys[k] {
			delete(raw, k)
		}
	}
	if len(raw) > 0 {
		alias.Extra = raw
	}

	*s = EditorSettings(alias)
	return nil
}

// Merge overlays persisted (or imported) values onto s. Only keys present
// in the overlay's JSON override; the rest keep their current values.
func (s *EditorSettings) Merge(data []byte) error {
	var present map[string]json.RawMessage
	if err := json.Unmarshal(data, &present); err != nil {
		return err
	}

	var overlay EditorSettings
	if err := json.Unmarshal(data, &overlay); err != nil {
		return err
	}

	if _, ok := present["fontSize"]; ok {
		s.FontSize = overlay.FontSize
	}
	if _, ok := present["fontFamily"]; ok {
		s.FontFamily = overlay.FontFamily
	}
	if _, ok := present["wordWrap"]; ok {
		s.WordWrap = overlay.WordWrap
	}
	if _, ok := present["minimap"]; ok {
		s.Minimap = overlay.Minimap
	}
	if _, ok := present["lineNumbers"]; ok {
		s.LineNumbers = overlay.LineNumbers
	}
	if _, ok := present["autoClosingBrackets"]; ok {
		s.AutoClosingBrackets = overlay.AutoClosingBrackets
	}
	if _, ok := present["autoClosingQuotes"]; ok {
		s.AutoClosingQuotes = overlay.AutoClosingQuotes
	}
	if _, ok := present["tabSize"]; ok {
		s.TabSize = overlay.TabSize
	}
	if _, ok := present["insertSpaces"]; ok {
		s.InsertSpaces = overlay.InsertSpaces
	}
	if _, ok := present["renderWhitespace"]; ok {
		s.RenderWhitespace = overlay.RenderWhitespace
	}
	if _, ok := present["cursorStyle"]; ok {
		s.CursorStyle = overlay.CursorStyle
	}
	if _, ok := present["scrollBeyondLastLine"]; ok {
		s.ScrollBeyondLastLine = overlay.ScrollBeyondLastLine
	}
	if _, ok := present["smoothScrolling"]; ok {
		s.SmoothScrolling = overlay.SmoothScrolling
	}
	if _, ok := present["mouseWheelZoom"]; ok {
		s.MouseWheelZoom = overlay.MouseWheelZoom
	}

	if len(overlay.Extra) > 0 {
		if s.Extra == nil {
			s.Extra = make(map[string]json.RawMessage, len(overlay.Extra))
		}
		for k, v := range overlay.Extra {
			s.Extra[k] = v
		}
	}
	return nil
}

// SettingsExport is the downloadable settings backup document.
type SettingsExport struct {
	ExportDate string          `json:"exportDate"`
	Settings   *EditorSettings `json:"settings"`
}
