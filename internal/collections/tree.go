package collections

import (
	"fmt"

	"github.com/desertthunder/ytshelf/internal/models"
	"github.com/desertthunder/ytshelf/internal/shared"
)

// ListOpts controls hydration of collection listings.
type ListOpts struct {
	ParentID        *string // nil lists roots only
	IncludeChildren bool
	IncludeContent  bool
	IncludeSettings bool
}

// GetOpts controls hydration of a single collection lookup.
type GetOpts struct {
	IncludeChildren bool
	IncludeContent  bool
	IncludeSettings bool
}

// CreateCollection validates the draft, enforces per-owner name uniqueness,
// persists the collection and creates its default settings row.
//
// Name uniqueness is checked across the owner's whole forest, not per
// sibling group.
func (e *Engine) CreateCollection(ownerID string, draft models.CollectionDraft) (*CollectionView, error) {
	return e.createCollection(ownerID, draft, true)
}

// createCollection is the shared create path. Import skips the name check:
// its conflict policy is decided per descriptor before creation.
func (e *Engine) createCollection(ownerID string, draft models.CollectionDraft, checkName bool) (*CollectionView, error) {
	collection := models.NewCollection(0, ownerID, draft)
	if err := collection.Validate(); err != nil {
		e.metrics.RecordOperation("create", err)
		return nil, err
	}

	if checkName {
		exists, err := e.collections.ExistsByOwnerAndName(ownerID, draft.Name)
		if err != nil {
			e.metrics.RecordOperation("create", err)
			return nil, err
		}
		if exists {
			err := fmt.Errorf("%w: %q", shared.ErrDuplicateName, draft.Name)
			e.metrics.RecordOperation("create", err)
			return nil, err
		}
	}

	if draft.ParentID != nil {
		parent, err := e.collections.Get(*draft.ParentID)
		if err != nil {
			e.metrics.RecordOperation("create", err)
			return nil, fmt.Errorf("parent lookup failed: %w", err)
		}
		if parent.OwnerID() != ownerID {
			err := fmt.Errorf("%w: parent belongs to another owner", shared.ErrUnauthorized)
			e.metrics.RecordOperation("create", err)
			return nil, err
		}
	}

	if err := e.collections.Create(collection); err != nil {
		e.metrics.RecordOperation("create", err)
		return nil, err
	}

	if err := e.settings.Create(models.DefaultSettings(collection.ID())); err != nil {
		e.metrics.RecordOperation("create", err)
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}

	e.logger.Info("collection created", "id", collection.ID(), "owner", ownerID, "name", draft.Name)
	e.metrics.RecordOperation("create", nil)
	return toView(collection), nil
}

// ListCollections retrieves the owner's collections under the given parent
// (roots when nil), ordered by position then newest first.
func (e *Engine) ListCollections(ownerID string, opts ListOpts) ([]*CollectionView, error) {
	criteria := map[string]any{"owner_id": ownerID, "parent_id": opts.ParentID}

	found, err := e.collections.List(criteria)
	if err != nil {
		e.metrics.RecordOperation("list", err)
		return nil, err
	}

	views := make([]*CollectionView, 0, len(found))
	for _, c := range found {
		view := toView(c)
		if err := e.hydrate(view, opts.IncludeChildren, opts.IncludeContent, opts.IncludeSettings); err != nil {
			e.metrics.RecordOperation("list", err)
			return nil, err
		}
		views = append(views, view)
	}

	e.metrics.RecordOperation("list", nil)
	return views, nil
}

// GetCollection retrieves a single collection, hydrated per opts.
func (e *Engine) GetCollection(id string, opts GetOpts) (*CollectionView, error) {
	collection, err := e.collections.Get(id)
	if err != nil {
		e.metrics.RecordOperation("get", err)
		return nil, err
	}

	view := toView(collection)
	if err := e.hydrate(view, opts.IncludeChildren, opts.IncludeContent, opts.IncludeSettings); err != nil {
		e.metrics.RecordOperation("get", err)
		return nil, err
	}

	e.metrics.RecordOperation("get", nil)
	return view, nil
}

// UpdateCollection applies a partial update to a collection.
//
// Renames are not re-checked against the owner's existing names; only
// creation enforces uniqueness.
func (e *Engine) UpdateCollection(id string, patch models.CollectionPatch) (*CollectionView, error) {
	collection, err := e.collections.Get(id)
	if err != nil {
		e.metrics.RecordOperation("update", err)
		return nil, err
	}

	collection.Apply(patch)

	if err := e.collections.Update(collection); err != nil {
		e.metrics.RecordOperation("update", err)
		return nil, err
	}

	e.logger.Info("collection updated", "id", id)
	e.metrics.RecordOperation("update", nil)
	return toView(collection), nil
}

// DeleteCollection removes a collection, its descendant subtree and every
// membership and settings row belonging to the subtree.
//
// The walk is explicit child-id enumeration; storage-level cascade is not
// relied on. Deletion proceeds leaves-first so the parent foreign key holds.
func (e *Engine) DeleteCollection(id string) error {
	if _, err := e.collections.Get(id); err != nil {
		e.metrics.RecordOperation("delete", err)
		return err
	}

	ids, err := e.collectSubtree(id)
	if err != nil {
		e.metrics.RecordOperation("delete", err)
		return err
	}

	for i := len(ids) - 1; i >= 0; i-- {
		target := ids[i]
		for _, repo := range e.memberships {
			if err := repo.DeleteByCollection(target); err != nil {
				e.metrics.RecordOperation("delete", err)
				return err
			}
		}
		if err := e.settings.Delete(target); err != nil {
			e.metrics.RecordOperation("delete", err)
			return err
		}
		if err := e.collections.Delete(target); err != nil {
			e.metrics.RecordOperation("delete", err)
			return err
		}
	}

	e.logger.Info("collection deleted", "id", id, "subtree_size", len(ids))
	e.metrics.RecordOperation("delete", nil)
	return nil
}

// collectSubtree returns the ids of a collection and all its descendants in
// breadth-first order, parents before children.
func (e *Engine) collectSubtree(id string) ([]string, error) {
	ids := []string{id}
	for cursor := 0; cursor < len(ids); cursor++ {
		children, err := e.collections.ListChildren(ids[cursor])
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			ids = append(ids, child.ID())
		}
	}
	return ids, nil
}

// hydrate attaches children, content and settings to a view as requested.
// Children are expanded one level with their item counts.
func (e *Engine) hydrate(view *CollectionView, children, content, settings bool) error {
	if children {
		found, err := e.collections.ListChildren(view.ID)
		if err != nil {
			return err
		}
		views := make([]*CollectionView, 0, len(found))
		for _, child := range found {
			childView := toView(child)
			counts, err := e.itemCounts(child.ID())
			if err != nil {
				return err
			}
			childView.ItemCounts = counts
			views = append(views, childView)
		}
		view.Children = views
	}

	if content {
		c, err := e.content(view.ID)
		if err != nil {
			return err
		}
		view.Content = c
	} else {
		counts, err := e.itemCounts(view.ID)
		if err != nil {
			return err
		}
		view.ItemCounts = counts
	}

	if settings {
		s, err := e.settingsOrDefault(view.ID)
		if err != nil {
			return err
		}
		view.Settings = toSettingsView(s)
	}

	return nil
}
