package services

import (
	"fmt"
	"time"
)

// Composer builds the sandboxed preview document from the three live
// buffers. Compose is a pure function of its inputs: same buffers, same
// output bytes, which is what makes the cached preview reusable verbatim.
type Composer struct{}

func NewComposer() *Composer {
	return &Composer{}
}

// Compose combines the buffers into one renderable document. The CSS and
// HTML buffers are embedded verbatim; the JS buffer runs inside a guard
// that routes runtime errors to the console instead of the host page, with
// a fallback so alert-style calls work when the host dialog is missing.
func (c *Composer) Compose(html, css, js string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="pl">
<head>
    <meta charset="UTF-8">
    <style>%s</style>
</head>
<body>
    %s
    <script>
        try {
            window.parent.showAlertModal = window.parent.showAlertModal || alert;
            %s
        } catch (e) {
            console.error("JavaScript Error:", e);
        }
    </script>
</body>
</html>
`, css, html, js)
}

// ComposeStandalone renders a project for a separate top-level window: same
// sandbox guard, plus a viewport meta and the project name as the title.
func (c *Composer) ComposeStandalone(name, html, css, js string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="pl">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>%s</style>
</head>
<body>
    %s
    <script>
        try {
            %s
        } catch (e) {
            console.error("JavaScript Error:", e);
        }
    </script>
</body>
</html>
`, name, css, html, js)
}

// DownloadFilename is the fixed name of the rendered document artifact.
const DownloadFilename = "projekt.html"

// ProjectExportFilename returns the dated default name for a collection
// backup file.
func ProjectExportFilename(t time.Time) string {
	return fmt.Sprintf("projekty_%s.json", t.UTC().Format("2006-01-02"))
}

// SettingsExportFilename returns the dated default name for a settings
// backup file.
func SettingsExportFilename(t time.Time) string {
	return fmt.Sprintf("editor-settings-%s.json", t.UTC().Format("2006-01-02"))
}
