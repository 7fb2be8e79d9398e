// package formatter provides functions to render collection export documents to various formats (JSON, CSV, Markdown)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/ytshelf/internal/models"
	"github.com/desertthunder/ytshelf/internal/shared"
)

// ExportToJSON renders an export document as indented JSON.
func ExportToJSON(doc *models.ExportDocument) ([]byte, error) {
	return shared.MarshalJSON(doc, true)
}

// ExportToCSV flattens an export document to CSV with columns:
// Path, Kind, ItemID, Position, IsPublic.
//
// Collection rows carry an empty kind and item id; membership rows repeat the
// collection path with the item kind.
func ExportToCSV(doc *models.ExportDocument) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Path", "Kind", "ItemID", "Position", "IsPublic"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, node := range doc.Collections {
		if err := writeCSVNode(writer, "", node); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// writeCSVNode emits one collection row, its membership rows and its subtree.
func writeCSVNode(writer *csv.Writer, prefix string, node models.ExportNode) error {
	path := node.Name
	if prefix != "" {
		path = prefix + "/" + node.Name
	}

	record := []string{path, "", "", strconv.Itoa(node.Position), strconv.FormatBool(node.IsPublic)}
	if err := writer.Write(record); err != nil {
		return fmt.Errorf("failed to write CSV record: %w", err)
	}

	if node.Content != nil {
		for _, group := range []struct {
			kind  string
			items []models.ExportItem
		}{
			{"video", node.Content.Videos},
			{"channel", node.Content.Channels},
			{"playlist", node.Content.Playlists},
		} {
			for _, item := range group.items {
				record := []string{path, group.kind, item.ItemID, strconv.Itoa(item.Position), ""}
				if err := writer.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
		}
	}

	for _, child := range node.Children {
		if err := writeCSVNode(writer, path, child); err != nil {
			return err
		}
	}

	return nil
}

// ExportToMarkdown renders an export document as a nested outline.
func ExportToMarkdown(doc *models.ExportDocument) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Collections for %s\n\n", doc.OwnerID))
	buf.WriteString(fmt.Sprintf("Exported: %s\n\n", doc.ExportedAt.Format("2006-01-02 15:04:05")))

	for _, node := range doc.Collections {
		writeMarkdownNode(&buf, 0, node)
	}

	return buf.Bytes(), nil
}

// writeMarkdownNode emits one list entry and recurses with deeper indentation.
func writeMarkdownNode(buf *bytes.Buffer, depth int, node models.ExportNode) {
	indent := strings.Repeat("  ", depth)

	buf.WriteString(fmt.Sprintf("%s- **%s**", indent, node.Name))
	if node.Description != "" {
		buf.WriteString(fmt.Sprintf(" - %s", node.Description))
	}
	buf.WriteString("\n")

	if node.Content != nil {
		total := len(node.Content.Videos) + len(node.Content.Channels) + len(node.Content.Playlists)
		if total > 0 {
			buf.WriteString(fmt.Sprintf("%s  - %d videos, %d channels, %d playlists\n",
				indent, len(node.Content.Videos), len(node.Content.Channels), len(node.Content.Playlists)))
		}
	}

	for _, child := range node.Children {
		writeMarkdownNode(buf, depth+1, child)
	}
}
