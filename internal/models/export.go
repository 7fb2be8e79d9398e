package models

import "time"

// ExportDocument is the portable representation of an owner's collection
// forest, produced by export and consumed by import.
type ExportDocument struct {
	OwnerID     string       `json:"owner_id"`
	ExportedAt  time.Time    `json:"exported_at"`
	Collections []ExportNode `json:"collections"`
}

// ExportNode describes one collection and, recursively, its subtree.
type ExportNode struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	Color       string         `json:"color,omitempty"`
	IsPublic    bool           `json:"is_public,omitempty"`
	Position    int            `json:"position"`
	Content     *ExportContent `json:"content,omitempty"`
	Children    []ExportNode   `json:"children,omitempty"`
}

// ExportContent holds the item memberships of one collection.
type ExportContent struct {
	Videos    []ExportItem `json:"videos,omitempty"`
	Channels  []ExportItem `json:"channels,omitempty"`
	Playlists []ExportItem `json:"playlists,omitempty"`
}

// ExportItem is a single membership in an export document.
type ExportItem struct {
	ItemID   string    `json:"item_id"`
	Position int       `json:"position"`
	AddedAt  time.Time `json:"added_at,omitempty"`
}
