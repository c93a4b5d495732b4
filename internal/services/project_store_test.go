package services

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pkowalski/codeplay/backend/internal/models"
	"github.com/pkowalski/codeplay/backend/internal/storage"
)

// memStore is an in-memory storage.Store for service tests.
type memStore struct {
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memStore) Remove(key string) error {
	delete(m.data, key)
	return nil
}

func newTestProjectStore(t *testing.T) (*ProjectStore, *memStore) {
	t.Helper()
	ms := newMemStore()
	ps := NewProjectStore(ms)
	return ps, ms
}

func mustCreate(t *testing.T, ps *ProjectStore, params CreateProjectParams) *models.Project {
	t.Helper()
	p, err := ps.Create(params, false)
	if err != nil {
		t.Fatalf("create %q: %v", params.Name, err)
	}
	return p
}

func TestCreateRejectsEmptyName(t *testing.T) {
	ps, _ := newTestProjectStore(t)

	_, err := ps.Create(CreateProjectParams{Name: "  ", HTML: "x"}, false)
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateRejectsAllBlankContent(t *testing.T) {
	ps, _ := newTestProjectStore(t)

	_, err := ps.Create(CreateProjectParams{Name: "ok", HTML: "  ", CSS: "\n", JS: ""}, false)
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateAssignsMetadata(t *testing.T) {
	ps, _ := newTestProjectStore(t)
	fixed := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	ps.now = func() time.Time { return fixed }

	p := mustCreate(t, ps, CreateProjectParams{
		Name:    "Demo",
		HTML:    "<p>hi</p>",
		TagsCSV: " a , b ,, a ",
	})

	if !strings.HasPrefix(p.ID, "project_") {
		t.Errorf("id %q should start with project_", p.ID)
	}
	if p.Version != "1.0" {
		t.Errorf("version = %q, expected 1.0", p.Version)
	}
	if p.Category != "Other" {
		t.Errorf("category = %q, expected default Other", p.Category)
	}
	if p.Created != "2026-03-14T12:00:00.000Z" {
		t.Errorf("created = %q", p.Created)
	}
	if p.LastModified != p.Created {
		t.Errorf("lastModified = %q, expected %q", p.LastModified, p.Created)
	}
	// Tags keep input order and duplicates, empties dropped
	want := []string{"a", "b", "a"}
	if len(p.Tags) != len(want) {
		t.Fatalf("tags = %v, expected %v", p.Tags, want)
	}
	for i := range want {
		if p.Tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, expected %q", i, p.Tags[i], want[i])
		}
	}
}

func TestCreateNameCollisionNeedsConfirmation(t *testing.T) {
	ps, _ := newTestProjectStore(t)
	mustCreate(t, ps, CreateProjectParams{Name: "Foo", HTML: "old"})

	_, err := ps.Create(CreateProjectParams{Name: "Foo", HTML: "new"}, false)
	if err != ErrConfirmReplace {
		t.Fatalf("expected ErrConfirmReplace, got %v", err)
	}

	// Nothing was written
	projects, _ := ps.List()
	if len(projects) != 1 || projects[0].HTML != "old" {
		t.Errorf("collision without confirmation must not modify the collection")
	}
}

func TestCreateConfirmedReplaceIsDestructive(t *testing.T) {
	ps, _ := newTestProjectStore(t)
	mustCreate(t, ps, CreateProjectParams{Name: "Foo", HTML: "old", Description: "keep me?"})

	if _, err := ps.Create(CreateProjectParams{Name: "Foo", HTML: "new"}, true); err != nil {
		t.Fatalf("confirmed replace: %v", err)
	}

	projects, _ := ps.List()
	if len(projects) != 1 {
		t.Fatalf("expected exactly one project named Foo, got %d", len(projects))
	}
	if projects[0].HTML != "new" {
		t.Errorf("expected new content, got %q", projects[0].HTML)
	}
	if projects[0].Description != "" {
		t.Errorf("replace must not merge old fields, got description %q", projects[0].Description)
	}
}

func TestLoadByIndex(t *testing.T) {
	ps, _ := newTestProjectStore(t)
	mustCreate(t, ps, CreateProjectParams{Name: "A", HTML: "a"})
	mustCreate(t, ps, CreateProjectParams{Name: "B", HTML: "b"})

	p, err := ps.LoadByIndex(1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Name != "B" {
		t.Errorf("expected B, got %q", p.Name)
	}

	for _, idx := range []int{-1, 2, 100} {
		_, err := ps.LoadByIndex(idx)
		if _, ok := err.(*NotFoundError); !ok {
			t.Errorf("index %d: expected NotFoundError, got %v", idx, err)
		}
	}
}

func TestLoadByIndexEmptyStore(t *testing.T) {
	ps, _ := newTestProjectStore(t)

	_, err := ps.LoadByIndex(0)
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("expected NotFoundError on empty store, got %v", err)
	}
}

func TestRename(t *testing.T) {
	ps, _ := newTestProjectStore(t)
	mustCreate(t, ps, CreateProjectParams{Name: "Foo", HTML: "x"})
	mustCreate(t, ps, CreateProjectParams{Name: "Bar", HTML: "y"})

	t.Run("empty name", func(t *testing.T) {
		_, err := ps.Rename(0, "   ")
		if _, ok := err.(*ValidationError); !ok {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("unchanged name is a no-op", func(t *testing.T) {
		before, _ := ps.LoadByIndex(0)
		_, err := ps.Rename(0, "Foo")
		if err != ErrNoChange {
			t.Errorf("expected ErrNoChange, got %v", err)
		}
		after, _ := ps.LoadByIndex(0)
		if after.LastModified != before.LastModified {
			t.Error("no-op rename must not touch lastModified")
		}
	})

	t.Run("collision with another project", func(t *testing.T) {
		_, err := ps.Rename(0, "Bar")
		if _, ok := err.(*ValidationError); !ok {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("success bumps lastModified", func(t *testing.T) {
		ps.now = func() time.Time { return time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC) }
		p, err := ps.Rename(0, "Renamed")
		if err != nil {
			t.Fatalf("rename: %v", err)
		}
		if p.Name != "Renamed" {
			t.Errorf("name = %q", p.Name)
		}
		if p.LastModified != "2026-05-01T08:00:00.000Z" {
			t.Errorf("lastModified = %q", p.LastModified)
		}
	})
}

func TestDuplicateNaming(t *testing.T) {
	ps, _ := newTestProjectStore(t)
	mustCreate(t, ps, CreateProjectParams{Name: "Foo", HTML: "x", TagsCSV: "t1,t2"})

	first, err := ps.Duplicate(0)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if first.Name != "Foo (kopia)" {
		t.Errorf("first copy = %q, expected 'Foo (kopia)'", first.Name)
	}

	second, err := ps.Duplicate(0)
	if err != nil {
		t.Fatalf("duplicate again: %v", err)
	}
	if second.Name != "Foo (kopia 2)" {
		t.Errorf("second copy = %q, expected 'Foo (kopia 2)'", second.Name)
	}

	original, _ := ps.LoadByIndex(0)
	if original.Name != "Foo" {
		t.Errorf("original renamed to %q", original.Name)
	}
	if first.ID == original.ID || second.ID == original.ID {
		t.Error("copies must get fresh ids")
	}
}

func TestDeleteAllThenListEmpty(t *testing.T) {
	ps, _ := newTestProjectStore(t)
	mustCreate(t, ps, CreateProjectParams{Name: "A", HTML: "a"})
	mustCreate(t, ps, CreateProjectParams{Name: "B", HTML: "b"})

	count, err := ps.DeleteAll()
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if count != 2 {
		t.Errorf("deleted count = %d, expected 2", count)
	}

	projects, err := ps.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("expected empty collection, got %d", len(projects))
	}
}

func TestExportEmptyCollectionFails(t *testing.T) {
	ps, _ := newTestProjectStore(t)

	_, err := ps.Export()
	if _, ok := err.(*ValidationError); !ok {
		t.Errorf("expected ValidationError for empty export, got %v", err)
	}
}

func TestExportShape(t *testing.T) {
	ps, _ := newTestProjectStore(t)
	mustCreate(t, ps, CreateProjectParams{Name: "A", HTML: "a"})
	ps.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	export, err := ps.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if export.ProjectsCount != 1 || len(export.Projects) != 1 {
		t.Errorf("export count mismatch: %d / %d", export.ProjectsCount, len(export.Projects))
	}
	if export.ExportDate != "2026-01-02T03:04:05.000Z" {
		t.Errorf("exportDate = %q", export.ExportDate)
	}
}

func TestImportKeepsDuplicateNames(t *testing.T) {
	ps, _ := newTestProjectStore(t)
	mustCreate(t, ps, CreateProjectParams{Name: "Foo", HTML: "local"})

	doc := models.ProjectExport{
		ExportDate:    "2026-01-01T00:00:00.000Z",
		ProjectsCount: 1,
		Projects: []models.Project{
			{ID: "project_1_abc", Name: "Foo", HTML: "imported", Version: "1.0"},
		},
	}
	data, _ := json.Marshal(doc)

	count, err := ps.Import(data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 1 {
		t.Errorf("imported = %d, expected 1", count)
	}

	// Append-only restore: two projects share the name afterwards.
	projects, _ := ps.List()
	var foos int
	for _, p := range projects {
		if p.Name == "Foo" {
			foos++
		}
	}
	if foos != 2 {
		t.Errorf("expected 2 projects named Foo after import, got %d", foos)
	}
}

func TestImportRejectsMissingProjectsArray(t *testing.T) {
	ps, _ := newTestProjectStore(t)

	for _, payload := range []string{`{}`, `{"settings":{}}`, `not json`} {
		_, err := ps.Import([]byte(payload))
		if _, ok := err.(*FormatError); !ok {
			t.Errorf("payload %q: expected FormatError, got %v", payload, err)
		}
	}
}

func TestImportAcceptsEmptyProjectsArray(t *testing.T) {
	ps, _ := newTestProjectStore(t)

	count, err := ps.Import([]byte(`{"projects":[]}`))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 0 {
		t.Errorf("imported = %d, expected 0", count)
	}
}

func TestSnapshotAutoSaveReplacesPrevious(t *testing.T) {
	ps, ms := newTestProjectStore(t)

	if err := ps.SnapshotAutoSave("h1", "c1", "j1"); err != nil {
		t.Fatalf("first snapshot: %v", err)
	}
	if err := ps.SnapshotAutoSave("h2", "c2", "j2"); err != nil {
		t.Fatalf("second snapshot: %v", err)
	}

	snapshot, err := ps.LoadAutoSaveSnapshot()
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if snapshot == nil {
		t.Fatal("expected a snapshot")
	}
	if snapshot.HTML != "h2" || snapshot.CSS != "c2" || snapshot.JS != "j2" {
		t.Errorf("snapshot holds %+v, expected second call's contents", snapshot)
	}

	// Exactly one snapshot record exists.
	if _, ok := ms.data[storage.KeyAutoSave]; !ok {
		t.Error("snapshot key missing")
	}

	// Reading does not delete it.
	again, _ := ps.LoadAutoSaveSnapshot()
	if again == nil {
		t.Error("snapshot must survive being read")
	}
}

func TestLoadAutoSaveSnapshotAbsent(t *testing.T) {
	ps, _ := newTestProjectStore(t)

	snapshot, err := ps.LoadAutoSaveSnapshot()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snapshot != nil {
		t.Errorf("expected nil snapshot, got %+v", snapshot)
	}
}

func TestSnapshotLeavesProjectsAlone(t *testing.T) {
	ps, _ := newTestProjectStore(t)
	mustCreate(t, ps, CreateProjectParams{Name: "A", HTML: "a"})

	before, _ := ps.LoadByIndex(0)
	ps.SnapshotAutoSave("x", "y", "z")
	after, _ := ps.LoadByIndex(0)

	if after.LastModified != before.LastModified {
		t.Error("auto-save snapshot must not touch project lastModified")
	}
}

func TestCatalogSortsByRecency(t *testing.T) {
	ps, _ := newTestProjectStore(t)

	times := []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	for i, name := range []string{"Oldest", "Newest", "Middle"} {
		now := times[i]
		ps.now = func() time.Time { return now }
		mustCreate(t, ps, CreateProjectParams{Name: name, HTML: "x"})
	}

	views, err := ps.Catalog("", "")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	got := []string{views[0].Name, views[1].Name, views[2].Name}
	want := []string{"Newest", "Middle", "Oldest"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("catalog order = %v, expected %v", got, want)
		}
	}

	// Index still addresses the stored order.
	if views[0].Index != 1 {
		t.Errorf("Newest stored index = %d, expected 1", views[0].Index)
	}
}

func TestCatalogOrdersMixedTimestampPrecision(t *testing.T) {
	ps, ms := newTestProjectStore(t)

	// An imported backup may carry second-precision timestamps next to the
	// millisecond-precision ones this build writes. Ordering must be by
	// instant, not by string shape.
	seeded := []models.Project{
		{ID: "a", Name: "SecondsNewer", Created: "2026-01-02T10:00:01Z"},
		{ID: "b", Name: "MillisOlder", Created: "2026-01-02T10:00:00.500Z"},
		{ID: "c", Name: "MillisNewest", Created: "2026-01-02T10:00:02.000Z"},
	}
	data, _ := json.Marshal(seeded)
	ms.Set(storage.KeySavedProjects, string(data))

	views, err := ps.Catalog("", "")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	got := []string{views[0].Name, views[1].Name, views[2].Name}
	want := []string{"MillisNewest", "SecondsNewer", "MillisOlder"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("catalog order = %v, expected %v", got, want)
		}
	}

	if err := ps.SortBy("date"); err != nil {
		t.Fatalf("sort by date: %v", err)
	}
	projects, _ := ps.List()
	if projects[0].Name != "MillisNewest" || projects[2].Name != "MillisOlder" {
		t.Errorf("date sort order = [%s %s %s]", projects[0].Name, projects[1].Name, projects[2].Name)
	}
}

func TestCatalogFilters(t *testing.T) {
	ps, _ := newTestProjectStore(t)
	mustCreate(t, ps, CreateProjectParams{Name: "Snake Game", HTML: "x", Category: "Game"})
	mustCreate(t, ps, CreateProjectParams{Name: "Landing Hero", HTML: "x", Category: "Landing"})
	mustCreate(t, ps, CreateProjectParams{Name: "Color Game", HTML: "x", Category: "Game"})

	views, _ := ps.Catalog("game", "")
	if len(views) != 2 {
		t.Errorf("search 'game': got %d, expected 2", len(views))
	}

	views, _ = ps.Catalog("", "Landing")
	if len(views) != 1 || views[0].Name != "Landing Hero" {
		t.Errorf("category filter failed: %+v", views)
	}

	views, _ = ps.Catalog("color", "Game")
	if len(views) != 1 || views[0].Name != "Color Game" {
		t.Errorf("combined filter failed: %+v", views)
	}
}

func TestSortByPersists(t *testing.T) {
	ps, _ := newTestProjectStore(t)
	mustCreate(t, ps, CreateProjectParams{Name: "Charlie", HTML: "x"})
	mustCreate(t, ps, CreateProjectParams{Name: "Alpha", HTML: "x"})
	mustCreate(t, ps, CreateProjectParams{Name: "Bravo", HTML: "x"})

	if err := ps.SortBy("name"); err != nil {
		t.Fatalf("sort: %v", err)
	}

	projects, _ := ps.List()
	got := []string{projects[0].Name, projects[1].Name, projects[2].Name}
	want := []string{"Alpha", "Bravo", "Charlie"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stored order = %v, expected %v", got, want)
		}
	}

	if err := ps.SortBy("sideways"); err == nil {
		t.Error("expected error for unknown sort kind")
	}
}

func TestEndToEndSaveLoadCompose(t *testing.T) {
	ps, _ := newTestProjectStore(t)
	composer := NewComposer()

	mustCreate(t, ps, CreateProjectParams{
		Name: "Demo",
		HTML: "<p>hi</p>",
		CSS:  "",
		JS:   "console.log(1)",
	})

	projects, err := ps.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}

	p, err := ps.LoadByIndex(0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.HTML != "<p>hi</p>" || p.CSS != "" || p.JS != "console.log(1)" {
		t.Errorf("restored buffers differ: %+v", p)
	}

	doc := composer.Compose(p.HTML, p.CSS, p.JS)
	body := doc[strings.Index(doc, "<body>"):]
	if !strings.Contains(body, "<p>hi</p>") {
		t.Error("composed document must embed the HTML buffer in the body")
	}
	scriptStart := strings.Index(doc, "try {")
	scriptEnd := strings.Index(doc, "} catch")
	if scriptStart < 0 || scriptEnd < 0 || !strings.Contains(doc[scriptStart:scriptEnd], "console.log(1)") {
		t.Error("composed document must embed the JS buffer inside the guarded block")
	}
}
