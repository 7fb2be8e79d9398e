package collections

import (
	"fmt"
	"time"

	"github.com/desertthunder/ytshelf/internal/formatter"
	"github.com/desertthunder/ytshelf/internal/models"
	"github.com/desertthunder/ytshelf/internal/shared"
)

// Export formats.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// ExportOpts controls serialization of an owner's forest.
type ExportOpts struct {
	Format         string
	IncludeContent bool
}

// ExportResult carries the rendered document and download metadata.
type ExportResult struct {
	Data        []byte `json:"data"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// ExportCollections serializes the owner's collection forest, children
// recursively expanded, to the requested format (json, csv or markdown).
func (e *Engine) ExportCollections(ownerID string, opts ExportOpts) (*ExportResult, error) {
	if opts.Format == "" {
		opts.Format = FormatJSON
	}

	doc := models.ExportDocument{
		OwnerID:    ownerID,
		ExportedAt: time.Now(),
	}

	roots, err := e.collections.List(map[string]any{"owner_id": ownerID, "parent_id": (*string)(nil)})
	if err != nil {
		e.metrics.RecordOperation("export", err)
		return nil, err
	}

	for _, root := range roots {
		node, err := e.exportNode(root, opts.IncludeContent)
		if err != nil {
			e.metrics.RecordOperation("export", err)
			return nil, err
		}
		doc.Collections = append(doc.Collections, *node)
	}

	var (
		data        []byte
		contentType string
	)
	switch opts.Format {
	case FormatJSON:
		data, err = formatter.ExportToJSON(&doc)
		contentType = "application/json"
	case FormatCSV:
		data, err = formatter.ExportToCSV(&doc)
		contentType = "text/csv"
	case FormatMarkdown:
		data, err = formatter.ExportToMarkdown(&doc)
		contentType = "text/markdown"
	default:
		err = fmt.Errorf("%w: export format %q", shared.ErrInvalidArgument, opts.Format)
	}
	if err != nil {
		e.metrics.RecordOperation("export", err)
		return nil, err
	}

	e.logger.Info("forest exported", "owner", ownerID, "roots", len(roots), "format", opts.Format)
	e.metrics.RecordOperation("export", nil)
	return &ExportResult{
		Data:        data,
		Filename:    fmt.Sprintf("collections_%d.%s", time.Now().Unix(), extensionFor(opts.Format)),
		ContentType: contentType,
	}, nil
}

// exportNode converts a collection and its subtree to export nodes.
func (e *Engine) exportNode(c *models.Collection, includeContent bool) (*models.ExportNode, error) {
	node := &models.ExportNode{
		Name:        c.Name(),
		Description: c.Description(),
		Icon:        c.Icon(),
		Color:       c.Color(),
		IsPublic:    c.IsPublic(),
		Position:    c.Position(),
	}

	if includeContent {
		content, err := e.content(c.ID())
		if err != nil {
			return nil, err
		}
		node.Content = &models.ExportContent{
			Videos:    toExportItems(content.Videos),
			Channels:  toExportItems(content.Channels),
			Playlists: toExportItems(content.Playlists),
		}
	}

	children, err := e.collections.ListChildren(c.ID())
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		childNode, err := e.exportNode(child, includeContent)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, *childNode)
	}

	return node, nil
}

func toExportItems(refs []ItemRef) []models.ExportItem {
	items := make([]models.ExportItem, 0, len(refs))
	for _, ref := range refs {
		items = append(items, models.ExportItem{ItemID: ref.ItemID, Position: ref.Position, AddedAt: ref.AddedAt})
	}
	return items
}

func extensionFor(format string) string {
	if format == FormatMarkdown {
		return "md"
	}
	return format
}
