package collections

import (
	"github.com/desertthunder/ytshelf/internal/models"
)

// AddItemsInput names item ids to add per kind, with a base sibling position.
type AddItemsInput struct {
	Videos    []string `json:"videos,omitempty"`
	Channels  []string `json:"channels,omitempty"`
	Playlists []string `json:"playlists,omitempty"`
	Position  int      `json:"position,omitempty"`
}

// RemoveItemsInput names item ids to remove per kind.
type RemoveItemsInput struct {
	Videos    []string `json:"videos,omitempty"`
	Channels  []string `json:"channels,omitempty"`
	Playlists []string `json:"playlists,omitempty"`
}

// ItemIDsByKind groups item ids per membership kind.
type ItemIDsByKind struct {
	Videos    []string `json:"videos"`
	Channels  []string `json:"channels"`
	Playlists []string `json:"playlists"`
}

// AddItemsResult is the scoreboard of an add operation: per kind, the ids
// that were linked and the ids that failed.
type AddItemsResult struct {
	Added  ItemIDsByKind `json:"added"`
	Errors ItemIDsByKind `json:"errors"`
}

// RemoveItemsResult reports the ids requested for removal.
type RemoveItemsResult struct {
	Removed ItemIDsByKind `json:"removed"`
}

// AddItems links items of the three kinds to a collection. Each id is
// inserted at an incrementing position starting from the supplied base; a
// failed insert (typically a duplicate membership) is recorded per id and
// never aborts the rest of the batch.
func (e *Engine) AddItems(collectionID string, input AddItemsInput) (*AddItemsResult, error) {
	if _, err := e.collections.Get(collectionID); err != nil {
		e.metrics.RecordOperation("add_items", err)
		return nil, err
	}

	result := &AddItemsResult{
		Added:  emptyItemIDs(),
		Errors: emptyItemIDs(),
	}

	for _, batch := range []struct {
		kind   models.ItemKind
		ids    []string
		added  *[]string
		failed *[]string
	}{
		{models.KindVideo, input.Videos, &result.Added.Videos, &result.Errors.Videos},
		{models.KindChannel, input.Channels, &result.Added.Channels, &result.Errors.Channels},
		{models.KindPlaylist, input.Playlists, &result.Added.Playlists, &result.Errors.Playlists},
	} {
		repo := e.memberships[batch.kind]
		position := input.Position
		for _, itemID := range batch.ids {
			m := models.NewMembership(collectionID, itemID, position)
			if err := repo.Create(m); err != nil {
				e.logger.Debug("item add failed", "collection", collectionID, "kind", batch.kind, "item", itemID, "err", err)
				*batch.failed = append(*batch.failed, itemID)
			} else {
				*batch.added = append(*batch.added, itemID)
				position++
			}
		}
		e.metrics.RecordItemsAdded(string(batch.kind), len(*batch.added))
		e.metrics.RecordItemsFailed(string(batch.kind), len(*batch.failed))
	}

	e.metrics.RecordOperation("add_items", nil)
	return result, nil
}

// RemoveItems unlinks items of the three kinds from a collection. Requested
// ids are reported as removed without an existence check.
func (e *Engine) RemoveItems(collectionID string, input RemoveItemsInput) (*RemoveItemsResult, error) {
	if _, err := e.collections.Get(collectionID); err != nil {
		e.metrics.RecordOperation("remove_items", err)
		return nil, err
	}

	result := &RemoveItemsResult{Removed: emptyItemIDs()}

	for _, batch := range []struct {
		kind    models.ItemKind
		ids     []string
		removed *[]string
	}{
		{models.KindVideo, input.Videos, &result.Removed.Videos},
		{models.KindChannel, input.Channels, &result.Removed.Channels},
		{models.KindPlaylist, input.Playlists, &result.Removed.Playlists},
	} {
		repo := e.memberships[batch.kind]
		for _, itemID := range batch.ids {
			if err := repo.Delete(collectionID, itemID); err != nil {
				e.logger.Warn("item remove failed", "collection", collectionID, "kind", batch.kind, "item", itemID, "err", err)
			}
			*batch.removed = append(*batch.removed, itemID)
		}
	}

	e.metrics.RecordOperation("remove_items", nil)
	return result, nil
}

// GetContent retrieves the full membership listing of a collection.
func (e *Engine) GetContent(collectionID string) (*Content, error) {
	if _, err := e.collections.Get(collectionID); err != nil {
		e.metrics.RecordOperation("get_content", err)
		return nil, err
	}

	content, err := e.content(collectionID)
	e.metrics.RecordOperation("get_content", err)
	return content, err
}

func emptyItemIDs() ItemIDsByKind {
	return ItemIDsByKind{Videos: []string{}, Channels: []string{}, Playlists: []string{}}
}
