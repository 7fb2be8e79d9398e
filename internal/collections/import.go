package collections

import (
	"encoding/json"
	"fmt"

	"github.com/desertthunder/ytshelf/internal/models"
)

// ImportOpts controls conflict handling during an import.
type ImportOpts struct {
	// Merge creates a new collection even when a name conflict is found,
	// instead of recording the conflict and skipping the descriptor. No
	// field-level merge is performed.
	Merge bool
}

// ImportResult is the scoreboard of an import: collections created, per-node
// failures and name conflicts skipped.
type ImportResult struct {
	Imported  int      `json:"imported"`
	Errors    []string `json:"errors"`
	Conflicts []string `json:"conflicts"`
}

// ImportCollections restores collections from a JSON document holding either
// a single descriptor or an array of descriptors, as produced by export.
// Nested children and content are recreated under the imported roots.
//
// Every descriptor is processed independently; failures accumulate in the
// result rather than aborting the import.
func (e *Engine) ImportCollections(ownerID string, data []byte, opts ImportOpts) (*ImportResult, error) {
	nodes, err := decodeImport(data)
	if err != nil {
		e.metrics.RecordOperation("import", err)
		return nil, err
	}

	result := &ImportResult{Errors: []string{}, Conflicts: []string{}}

	for _, node := range nodes {
		existing, err := e.collections.ExistsByOwnerAndName(ownerID, node.Name)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", node.Name, err))
			continue
		}
		if existing && !opts.Merge {
			result.Conflicts = append(result.Conflicts, node.Name)
			continue
		}

		e.importNode(ownerID, node, nil, result)
	}

	e.logger.Info("import finished", "owner", ownerID, "imported", result.Imported, "conflicts", len(result.Conflicts), "errors", len(result.Errors))
	e.metrics.RecordOperation("import", nil)
	return result, nil
}

// importNode creates one collection from a descriptor and recurses into its
// children. Failures are recorded on the result and prune the subtree.
func (e *Engine) importNode(ownerID string, node models.ExportNode, parentID *string, result *ImportResult) {
	draft := models.CollectionDraft{
		Name:        node.Name,
		Description: node.Description,
		Icon:        node.Icon,
		Color:       node.Color,
		IsPublic:    node.IsPublic,
		ParentID:    parentID,
		Position:    node.Position,
	}

	created, err := e.createCollection(ownerID, draft, false)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", node.Name, err))
		return
	}
	result.Imported++

	if node.Content != nil {
		input := AddItemsInput{
			Videos:    exportItemIDs(node.Content.Videos),
			Channels:  exportItemIDs(node.Content.Channels),
			Playlists: exportItemIDs(node.Content.Playlists),
		}
		if _, err := e.AddItems(created.ID, input); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: content restore failed: %v", node.Name, err))
		}
	}

	for _, child := range node.Children {
		e.importNode(ownerID, child, &created.ID, result)
	}
}

// decodeImport accepts a single descriptor, an array of descriptors, or a
// full export document.
func decodeImport(data []byte) ([]models.ExportNode, error) {
	var nodes []models.ExportNode
	if err := json.Unmarshal(data, &nodes); err == nil {
		return nodes, nil
	}

	var doc models.ExportDocument
	if err := json.Unmarshal(data, &doc); err == nil && len(doc.Collections) > 0 {
		return doc.Collections, nil
	}

	var node models.ExportNode
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse import data: %w", err)
	}
	if node.Name == "" {
		return nil, fmt.Errorf("failed to parse import data: descriptor has no name")
	}
	return []models.ExportNode{node}, nil
}

func exportItemIDs(items []models.ExportItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ItemID)
	}
	return ids
}
