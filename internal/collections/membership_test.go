package collections

import (
	"errors"
	"testing"

	"github.com/desertthunder/ytshelf/internal/shared"
)

func TestAddItems(t *testing.T) {
	t.Run("AllKinds", func(t *testing.T) {
		engine := newTestEngine(t)

		view := mustCreate(t, engine, "user-1", "Watch Later", nil)

		result, err := engine.AddItems(view.ID, AddItemsInput{
			Videos:    []string{"vid-1", "vid-2"},
			Channels:  []string{"chan-1"},
			Playlists: []string{"pl-1"},
		})
		if err != nil {
			t.Fatalf("failed to add items: %v", err)
		}

		if len(result.Added.Videos) != 2 || len(result.Added.Channels) != 1 || len(result.Added.Playlists) != 1 {
			t.Errorf("expected all items added, got %+v", result.Added)
		}
		if len(result.Errors.Videos)+len(result.Errors.Channels)+len(result.Errors.Playlists) != 0 {
			t.Errorf("expected no failures, got %+v", result.Errors)
		}

		content, err := engine.GetContent(view.ID)
		if err != nil {
			t.Fatalf("failed to get content: %v", err)
		}
		if content.Total != 4 {
			t.Errorf("expected 4 items, got %d", content.Total)
		}
	})

	t.Run("PartialFailure", func(t *testing.T) {
		engine := newTestEngine(t)

		view := mustCreate(t, engine, "user-1", "Watch Later", nil)

		if _, err := engine.AddItems(view.ID, AddItemsInput{Videos: []string{"vid-2"}}); err != nil {
			t.Fatalf("failed to seed item: %v", err)
		}

		// vid-2 is already linked; the other two must still land.
		result, err := engine.AddItems(view.ID, AddItemsInput{Videos: []string{"vid-1", "vid-2", "vid-3"}})
		if err != nil {
			t.Fatalf("add should not abort on a duplicate: %v", err)
		}

		if len(result.Added.Videos) != 2 {
			t.Errorf("expected 2 added, got %v", result.Added.Videos)
		}
		if len(result.Errors.Videos) != 1 || result.Errors.Videos[0] != "vid-2" {
			t.Errorf("expected vid-2 to fail, got %v", result.Errors.Videos)
		}
	})

	t.Run("Positions", func(t *testing.T) {
		engine := newTestEngine(t)

		view := mustCreate(t, engine, "user-1", "Watch Later", nil)

		if _, err := engine.AddItems(view.ID, AddItemsInput{Videos: []string{"vid-1", "vid-2"}, Position: 10}); err != nil {
			t.Fatalf("failed to add items: %v", err)
		}

		content, err := engine.GetContent(view.ID)
		if err != nil {
			t.Fatalf("failed to get content: %v", err)
		}
		if len(content.Videos) != 2 {
			t.Fatalf("expected 2 videos, got %d", len(content.Videos))
		}
		if content.Videos[0].Position != 10 || content.Videos[1].Position != 11 {
			t.Errorf("expected incrementing positions from the base, got %d and %d",
				content.Videos[0].Position, content.Videos[1].Position)
		}
	})

	t.Run("MissingCollection", func(t *testing.T) {
		engine := newTestEngine(t)

		if _, err := engine.AddItems("missing", AddItemsInput{Videos: []string{"vid-1"}}); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRemoveItems(t *testing.T) {
	t.Run("RemovesAndReportsAll", func(t *testing.T) {
		engine := newTestEngine(t)

		view := mustCreate(t, engine, "user-1", "Watch Later", nil)

		if _, err := engine.AddItems(view.ID, AddItemsInput{Videos: []string{"vid-1"}}); err != nil {
			t.Fatalf("failed to add item: %v", err)
		}

		// vid-2 was never added; it is still reported as removed.
		result, err := engine.RemoveItems(view.ID, RemoveItemsInput{Videos: []string{"vid-1", "vid-2"}})
		if err != nil {
			t.Fatalf("failed to remove items: %v", err)
		}
		if len(result.Removed.Videos) != 2 {
			t.Errorf("expected both ids reported as removed, got %v", result.Removed.Videos)
		}

		content, err := engine.GetContent(view.ID)
		if err != nil {
			t.Fatalf("failed to get content: %v", err)
		}
		if content.Total != 0 {
			t.Errorf("expected empty collection, got %d items", content.Total)
		}
	})

	t.Run("MissingCollection", func(t *testing.T) {
		engine := newTestEngine(t)

		if _, err := engine.RemoveItems("missing", RemoveItemsInput{Videos: []string{"vid-1"}}); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestGetContent(t *testing.T) {
	engine := newTestEngine(t)

	view := mustCreate(t, engine, "user-1", "Watch Later", nil)

	content, err := engine.GetContent(view.ID)
	if err != nil {
		t.Fatalf("failed to get content: %v", err)
	}
	if content.Videos == nil || content.Channels == nil || content.Playlists == nil {
		t.Error("empty listings should be empty slices, not nil")
	}

	if _, err := engine.GetContent("missing"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
