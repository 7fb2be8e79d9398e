package collections

import (
	"errors"
	"testing"

	"github.com/desertthunder/ytshelf/internal/shared"
)

func TestReparent(t *testing.T) {
	t.Run("MoveUnderNewParent", func(t *testing.T) {
		engine := newTestEngine(t)

		a := mustCreate(t, engine, "user-1", "A", nil)
		b := mustCreate(t, engine, "user-1", "B", nil)

		moved, err := engine.Reparent(b.ID, &a.ID, nil)
		if err != nil {
			t.Fatalf("failed to move: %v", err)
		}
		if moved.ParentID == nil || *moved.ParentID != a.ID {
			t.Error("expected B to be a child of A")
		}
	})

	t.Run("PositionOnly", func(t *testing.T) {
		engine := newTestEngine(t)

		root := mustCreate(t, engine, "user-1", "Root", nil)
		child := mustCreate(t, engine, "user-1", "Child", &root.ID)

		position := 5
		moved, err := engine.Reparent(child.ID, nil, &position)
		if err != nil {
			t.Fatalf("failed to reorder: %v", err)
		}
		if moved.Position != 5 {
			t.Errorf("expected position 5, got %d", moved.Position)
		}
		if moved.ParentID == nil || *moved.ParentID != root.ID {
			t.Error("parent should be unchanged when only the position moves")
		}
	})

	t.Run("SelfParent", func(t *testing.T) {
		engine := newTestEngine(t)

		a := mustCreate(t, engine, "user-1", "A", nil)

		if _, err := engine.Reparent(a.ID, &a.ID, nil); !errors.Is(err, shared.ErrSelfParent) {
			t.Errorf("expected ErrSelfParent, got %v", err)
		}
	})

	t.Run("CycleRejected", func(t *testing.T) {
		engine := newTestEngine(t)

		a := mustCreate(t, engine, "user-1", "A", nil)
		b := mustCreate(t, engine, "user-1", "B", &a.ID)
		c := mustCreate(t, engine, "user-1", "C", &b.ID)

		// A under its own grandchild would cycle.
		if _, err := engine.Reparent(a.ID, &c.ID, nil); !errors.Is(err, shared.ErrCycleDetected) {
			t.Errorf("expected ErrCycleDetected, got %v", err)
		}

		// The tree is untouched after the rejection.
		got, err := engine.GetCollection(a.ID, GetOpts{})
		if err != nil {
			t.Fatalf("failed to get collection: %v", err)
		}
		if got.ParentID != nil {
			t.Error("rejected move should leave the collection at root")
		}
	})

	t.Run("ForeignParent", func(t *testing.T) {
		engine := newTestEngine(t)

		mine := mustCreate(t, engine, "user-1", "Mine", nil)
		theirs := mustCreate(t, engine, "user-2", "Theirs", nil)

		if _, err := engine.Reparent(mine.ID, &theirs.ID, nil); !errors.Is(err, shared.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("MissingParent", func(t *testing.T) {
		engine := newTestEngine(t)

		a := mustCreate(t, engine, "user-1", "A", nil)

		missing := "no-such-id"
		if _, err := engine.Reparent(a.ID, &missing, nil); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDetachToRoot(t *testing.T) {
	engine := newTestEngine(t)

	root := mustCreate(t, engine, "user-1", "Root", nil)
	child := mustCreate(t, engine, "user-1", "Child", &root.ID)

	detached, err := engine.DetachToRoot(child.ID, 0)
	if err != nil {
		t.Fatalf("failed to detach: %v", err)
	}
	if detached.ParentID != nil {
		t.Error("expected a root collection after detach")
	}

	roots, err := engine.ListCollections("user-1", ListOpts{})
	if err != nil {
		t.Fatalf("failed to list roots: %v", err)
	}
	if len(roots) != 2 {
		t.Errorf("expected 2 roots after detach, got %d", len(roots))
	}
}

func TestMoveTo(t *testing.T) {
	engine := newTestEngine(t)

	a := mustCreate(t, engine, "user-1", "A", nil)
	b := mustCreate(t, engine, "user-1", "B", nil)

	moved, err := engine.MoveTo(b.ID, a.ID, 3)
	if err != nil {
		t.Fatalf("failed to move: %v", err)
	}
	if moved.ParentID == nil || *moved.ParentID != a.ID || moved.Position != 3 {
		t.Errorf("expected B under A at position 3, got %+v", moved)
	}

	if _, err := engine.MoveTo(b.ID, "", 0); !errors.Is(err, shared.ErrMissingArgument) {
		t.Errorf("expected ErrMissingArgument for empty parent, got %v", err)
	}
}

// TestMoveScenario walks a deeper reorganization: detaching a mid-level
// subtree keeps its descendants, and the vacated parent can then move under
// what used to be its own child's subtree.
func TestMoveScenario(t *testing.T) {
	engine := newTestEngine(t)

	a := mustCreate(t, engine, "user-1", "A", nil)
	b := mustCreate(t, engine, "user-1", "B", &a.ID)
	c := mustCreate(t, engine, "user-1", "C", &b.ID)

	// B moves to root, taking C with it.
	if _, err := engine.DetachToRoot(b.ID, 0); err != nil {
		t.Fatalf("failed to detach B: %v", err)
	}

	got, err := engine.GetCollection(c.ID, GetOpts{})
	if err != nil {
		t.Fatalf("failed to get C: %v", err)
	}
	if got.ParentID == nil || *got.ParentID != b.ID {
		t.Error("C should still hang off B after the detach")
	}

	// A is no longer an ancestor of C, so this is legal now.
	if _, err := engine.MoveTo(a.ID, c.ID, 0); err != nil {
		t.Fatalf("failed to move A under C: %v", err)
	}

	got, err = engine.GetCollection(a.ID, GetOpts{})
	if err != nil {
		t.Fatalf("failed to get A: %v", err)
	}
	if got.ParentID == nil || *got.ParentID != c.ID {
		t.Error("A should be a child of C")
	}
}
