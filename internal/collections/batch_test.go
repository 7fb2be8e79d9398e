package collections

import (
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/ytshelf/internal/shared"
)

func TestBatchOperation(t *testing.T) {
	t.Run("UnknownOperation", func(t *testing.T) {
		engine := newTestEngine(t)

		_, err := engine.BatchOperation(BatchInput{Operation: "rename", CollectionIDs: []string{"a"}})
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("DeleteScoreboard", func(t *testing.T) {
		engine := newTestEngine(t)

		a := mustCreate(t, engine, "user-1", "A", nil)
		c := mustCreate(t, engine, "user-1", "C", nil)

		// B does not exist; A and C must still be deleted.
		result, err := engine.BatchOperation(BatchInput{
			Operation:     BatchDelete,
			CollectionIDs: []string{a.ID, "missing-b", c.ID},
		})
		if err != nil {
			t.Fatalf("batch should not abort on a missing id: %v", err)
		}

		if len(result.Success) != 2 {
			t.Errorf("expected 2 successes, got %v", result.Success)
		}
		if len(result.Errors) != 1 || result.Errors[0].CollectionID != "missing-b" {
			t.Errorf("expected missing-b to fail, got %+v", result.Errors)
		}

		for _, id := range []string{a.ID, c.ID} {
			if _, err := engine.GetCollection(id, GetOpts{}); !errors.Is(err, shared.ErrNotFound) {
				t.Errorf("expected %s to be deleted, got %v", id, err)
			}
		}
	})

	t.Run("Move", func(t *testing.T) {
		engine := newTestEngine(t)

		target := mustCreate(t, engine, "user-1", "Target", nil)
		a := mustCreate(t, engine, "user-1", "A", nil)
		b := mustCreate(t, engine, "user-1", "B", nil)

		result, err := engine.BatchOperation(BatchInput{
			Operation:      BatchMove,
			CollectionIDs:  []string{a.ID, b.ID},
			TargetParentID: &target.ID,
		})
		if err != nil {
			t.Fatalf("failed to batch move: %v", err)
		}
		if len(result.Success) != 2 || len(result.Errors) != 0 {
			t.Errorf("expected both moves to succeed, got %+v", result)
		}

		for _, id := range []string{a.ID, b.ID} {
			got, err := engine.GetCollection(id, GetOpts{})
			if err != nil {
				t.Fatalf("failed to get %s: %v", id, err)
			}
			if got.ParentID == nil || *got.ParentID != target.ID {
				t.Errorf("expected %s under target", id)
			}
		}
	})

	t.Run("MoveWithoutTargetSkips", func(t *testing.T) {
		engine := newTestEngine(t)

		a := mustCreate(t, engine, "user-1", "A", nil)

		result, err := engine.BatchOperation(BatchInput{
			Operation:     BatchMove,
			CollectionIDs: []string{a.ID},
		})
		if err != nil {
			t.Fatalf("failed to batch move: %v", err)
		}
		if len(result.Success) != 0 || len(result.Errors) != 0 {
			t.Errorf("move without a target should be skipped entirely, got %+v", result)
		}
	})

	t.Run("MoveIntoOwnSubtree", func(t *testing.T) {
		engine := newTestEngine(t)

		a := mustCreate(t, engine, "user-1", "A", nil)
		b := mustCreate(t, engine, "user-1", "B", &a.ID)

		result, err := engine.BatchOperation(BatchInput{
			Operation:      BatchMove,
			CollectionIDs:  []string{a.ID},
			TargetParentID: &b.ID,
		})
		if err != nil {
			t.Fatalf("failed to batch move: %v", err)
		}
		if len(result.Errors) != 1 || !strings.Contains(result.Errors[0].Reason, "cycle") {
			t.Errorf("expected a cycle rejection, got %+v", result)
		}
	})

	t.Run("Copy", func(t *testing.T) {
		engine := newTestEngine(t)

		a := mustCreate(t, engine, "user-1", "A", nil)
		b := mustCreate(t, engine, "user-1", "B", nil)

		result, err := engine.BatchOperation(BatchInput{
			Operation:     BatchCopy,
			CollectionIDs: []string{a.ID, b.ID},
		})
		if err != nil {
			t.Fatalf("copy batch should return a scoreboard, not fail: %v", err)
		}
		if len(result.Success) != 0 || len(result.Errors) != 2 {
			t.Errorf("expected every copy to fail, got %+v", result)
		}
		for _, batchErr := range result.Errors {
			if !strings.Contains(batchErr.Reason, "not implemented") {
				t.Errorf("expected not implemented reason, got %q", batchErr.Reason)
			}
		}
	})
}
