package collections

import (
	"fmt"

	"github.com/desertthunder/ytshelf/internal/shared"
)

// Reparent changes a collection's parent and/or sibling position. A nil
// newParentID with a non-nil position only reorders; an explicit nil parent
// via detach is expressed with DetachToRoot.
//
// When a new parent is supplied the engine rejects self-parenting outright,
// requires the parent to exist under the same owner, and verifies that the
// new parent is not a descendant of the moved collection.
func (e *Engine) Reparent(id string, newParentID *string, newPosition *int) (*CollectionView, error) {
	collection, err := e.collections.Get(id)
	if err != nil {
		e.metrics.RecordOperation("move", err)
		return nil, err
	}

	if newParentID != nil {
		if *newParentID == id {
			e.metrics.RecordOperation("move", shared.ErrSelfParent)
			return nil, shared.ErrSelfParent
		}

		parent, err := e.collections.Get(*newParentID)
		if err != nil {
			e.metrics.RecordOperation("move", err)
			return nil, fmt.Errorf("parent lookup failed: %w", err)
		}
		if parent.OwnerID() != collection.OwnerID() {
			err := fmt.Errorf("%w: parent belongs to another owner", shared.ErrUnauthorized)
			e.metrics.RecordOperation("move", err)
			return nil, err
		}

		if err := e.ensureNotDescendant(id, *newParentID); err != nil {
			e.metrics.RecordCycleRejected()
			e.metrics.RecordOperation("move", err)
			return nil, err
		}

		collection.SetParent(newParentID)
	}

	if newPosition != nil {
		collection.SetPosition(*newPosition)
	}

	if err := e.collections.Update(collection); err != nil {
		e.metrics.RecordOperation("move", err)
		return nil, err
	}

	e.logger.Info("collection moved", "id", id, "parent", stringOrRoot(newParentID))
	e.metrics.RecordOperation("move", nil)
	return toView(collection), nil
}

// DetachToRoot moves a collection to the root of its owner's forest at the
// given position.
func (e *Engine) DetachToRoot(id string, position int) (*CollectionView, error) {
	collection, err := e.collections.Get(id)
	if err != nil {
		e.metrics.RecordOperation("move", err)
		return nil, err
	}

	collection.SetParent(nil)
	collection.SetPosition(position)

	if err := e.collections.Update(collection); err != nil {
		e.metrics.RecordOperation("move", err)
		return nil, err
	}

	e.logger.Info("collection detached to root", "id", id)
	e.metrics.RecordOperation("move", nil)
	return toView(collection), nil
}

// MoveTo moves a collection under a required parent at a required position.
// This is the externally invoked "move to specific parent" form; Reparent is
// the optional-argument form used by batch operations and internal callers.
func (e *Engine) MoveTo(id, parentID string, position int) (*CollectionView, error) {
	if parentID == "" {
		return nil, fmt.Errorf("%w: parent id", shared.ErrMissingArgument)
	}
	return e.Reparent(id, &parentID, &position)
}

// ensureNotDescendant verifies that candidate is not inside the subtree rooted
// at ancestor. It walks the parent chain upward from candidate; encountering
// ancestor means the move would cycle the forest.
//
// A visited set guards the walk against an already-corrupted cyclic chain,
// which also surfaces as ErrCycleDetected.
func (e *Engine) ensureNotDescendant(ancestor, candidate string) error {
	visited := map[string]bool{}
	current := candidate

	for {
		if current == ancestor {
			return fmt.Errorf("%w: %s is a descendant of %s", shared.ErrCycleDetected, candidate, ancestor)
		}
		if visited[current] {
			return fmt.Errorf("%w: parent chain loops at %s", shared.ErrCycleDetected, current)
		}
		visited[current] = true

		node, err := e.collections.Get(current)
		if err != nil {
			return fmt.Errorf("ancestor walk failed at %s: %w", current, err)
		}
		if node.ParentID() == nil {
			return nil
		}
		current = *node.ParentID()
	}
}

// stringOrRoot renders an optional parent id for logging.
func stringOrRoot(id *string) string {
	if id == nil {
		return "(unchanged)"
	}
	return *id
}
