package collections

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/ytshelf/internal/models"
	"github.com/desertthunder/ytshelf/internal/shared"
)

func TestExportCollections(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		engine := newTestEngine(t)

		root := mustCreate(t, engine, "user-1", "Root", nil)
		mustCreate(t, engine, "user-1", "Child", &root.ID)
		if _, err := engine.AddItems(root.ID, AddItemsInput{Videos: []string{"vid-1"}}); err != nil {
			t.Fatalf("failed to add item: %v", err)
		}

		result, err := engine.ExportCollections("user-1", ExportOpts{Format: FormatJSON, IncludeContent: true})
		if err != nil {
			t.Fatalf("failed to export: %v", err)
		}

		if result.ContentType != "application/json" {
			t.Errorf("expected JSON content type, got %s", result.ContentType)
		}
		if !strings.HasSuffix(result.Filename, ".json") {
			t.Errorf("expected .json filename, got %s", result.Filename)
		}

		var doc models.ExportDocument
		if err := json.Unmarshal(result.Data, &doc); err != nil {
			t.Fatalf("export is not valid JSON: %v", err)
		}
		if doc.OwnerID != "user-1" || len(doc.Collections) != 1 {
			t.Fatalf("expected one exported root, got %+v", doc)
		}
		if len(doc.Collections[0].Children) != 1 {
			t.Error("expected nested child in the export")
		}
		if doc.Collections[0].Content == nil || len(doc.Collections[0].Content.Videos) != 1 {
			t.Error("expected content in the export")
		}
	})

	t.Run("CSV", func(t *testing.T) {
		engine := newTestEngine(t)

		root := mustCreate(t, engine, "user-1", "Root", nil)
		if _, err := engine.AddItems(root.ID, AddItemsInput{Videos: []string{"vid-1"}}); err != nil {
			t.Fatalf("failed to add item: %v", err)
		}

		result, err := engine.ExportCollections("user-1", ExportOpts{Format: FormatCSV, IncludeContent: true})
		if err != nil {
			t.Fatalf("failed to export: %v", err)
		}
		if result.ContentType != "text/csv" {
			t.Errorf("expected CSV content type, got %s", result.ContentType)
		}
		if !strings.Contains(string(result.Data), "vid-1") {
			t.Error("expected item row in the CSV")
		}
	})

	t.Run("Markdown", func(t *testing.T) {
		engine := newTestEngine(t)

		mustCreate(t, engine, "user-1", "Root", nil)

		result, err := engine.ExportCollections("user-1", ExportOpts{Format: FormatMarkdown})
		if err != nil {
			t.Fatalf("failed to export: %v", err)
		}
		if !strings.HasSuffix(result.Filename, ".md") {
			t.Errorf("expected .md filename, got %s", result.Filename)
		}
		if !strings.Contains(string(result.Data), "Root") {
			t.Error("expected collection name in the outline")
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		engine := newTestEngine(t)

		if _, err := engine.ExportCollections("user-1", ExportOpts{Format: "xml"}); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestImportCollections(t *testing.T) {
	t.Run("Roundtrip", func(t *testing.T) {
		source := newTestEngine(t)

		root := mustCreate(t, source, "user-1", "Root", nil)
		mustCreate(t, source, "user-1", "Child", &root.ID)
		if _, err := source.AddItems(root.ID, AddItemsInput{Videos: []string{"vid-1", "vid-2"}}); err != nil {
			t.Fatalf("failed to add items: %v", err)
		}

		exported, err := source.ExportCollections("user-1", ExportOpts{Format: FormatJSON, IncludeContent: true})
		if err != nil {
			t.Fatalf("failed to export: %v", err)
		}

		target := newTestEngine(t)
		result, err := target.ImportCollections("user-2", exported.Data, ImportOpts{})
		if err != nil {
			t.Fatalf("failed to import: %v", err)
		}

		if result.Imported != 2 {
			t.Errorf("expected 2 collections imported, got %d", result.Imported)
		}
		if len(result.Errors) != 0 || len(result.Conflicts) != 0 {
			t.Errorf("expected a clean import, got %+v", result)
		}

		roots, err := target.ListCollections("user-2", ListOpts{IncludeContent: true})
		if err != nil {
			t.Fatalf("failed to list roots: %v", err)
		}
		if len(roots) != 1 || roots[0].Name != "Root" {
			t.Fatalf("expected imported root, got %d roots", len(roots))
		}
		if roots[0].Content == nil || len(roots[0].Content.Videos) != 2 {
			t.Error("expected restored content")
		}
	})

	t.Run("SingleDescriptor", func(t *testing.T) {
		engine := newTestEngine(t)

		result, err := engine.ImportCollections("user-1", []byte(`{"name": "Solo"}`), ImportOpts{})
		if err != nil {
			t.Fatalf("failed to import: %v", err)
		}
		if result.Imported != 1 {
			t.Errorf("expected 1 imported, got %d", result.Imported)
		}
	})

	t.Run("ConflictSkipped", func(t *testing.T) {
		engine := newTestEngine(t)

		mustCreate(t, engine, "user-1", "Root", nil)

		result, err := engine.ImportCollections("user-1", []byte(`[{"name": "Root"}, {"name": "Fresh"}]`), ImportOpts{})
		if err != nil {
			t.Fatalf("failed to import: %v", err)
		}
		if len(result.Conflicts) != 1 || result.Conflicts[0] != "Root" {
			t.Errorf("expected Root to conflict, got %+v", result.Conflicts)
		}
		if result.Imported != 1 {
			t.Errorf("expected only Fresh imported, got %d", result.Imported)
		}
	})

	t.Run("MergeCreatesDuplicate", func(t *testing.T) {
		engine := newTestEngine(t)

		mustCreate(t, engine, "user-1", "Root", nil)

		result, err := engine.ImportCollections("user-1", []byte(`[{"name": "Root"}]`), ImportOpts{Merge: true})
		if err != nil {
			t.Fatalf("failed to import: %v", err)
		}
		if len(result.Conflicts) != 0 || len(result.Errors) != 0 {
			t.Errorf("merge should create despite the conflict, got %+v", result)
		}
		if result.Imported != 1 {
			t.Errorf("expected 1 imported, got %d", result.Imported)
		}

		roots, err := engine.ListCollections("user-1", ListOpts{})
		if err != nil {
			t.Fatalf("failed to list roots: %v", err)
		}
		if len(roots) != 2 {
			t.Errorf("expected two Root collections after merge, got %d", len(roots))
		}
	})

	t.Run("InvalidPayload", func(t *testing.T) {
		engine := newTestEngine(t)

		if _, err := engine.ImportCollections("user-1", []byte("not json"), ImportOpts{}); err == nil {
			t.Error("expected error for malformed payload")
		}
	})
}
