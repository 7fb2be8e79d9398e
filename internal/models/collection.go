package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/desertthunder/ytshelf/internal/shared"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MaxIconLength        = 50
)

var colorPattern = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

// CollectionDraft carries caller-supplied fields for creating a collection.
type CollectionDraft struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Icon        string  `json:"icon,omitempty"`
	Color       string  `json:"color,omitempty"`
	IsPublic    bool    `json:"is_public,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
	Position    int     `json:"position,omitempty"`
}

// CollectionPatch carries optional fields for a partial update.
// Nil fields are left unchanged.
type CollectionPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
	Position    *int    `json:"position,omitempty"`
}

// Collection is a node in an owner-scoped forest of content containers.
// A nil parent ID marks a root.
type Collection struct {
	id          string
	sequence    int
	ownerID     string
	name        string
	description string
	icon        string
	color       string
	isPublic    bool
	parentID    *string
	position    int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewCollection creates a Collection from a draft. The ID is assigned by the
// repository on insert.
func NewCollection(sequence int, ownerID string, draft CollectionDraft) *Collection {
	now := time.Now()
	return &Collection{
		sequence:    sequence,
		ownerID:     ownerID,
		name:        draft.Name,
		description: draft.Description,
		icon:        draft.Icon,
		color:       NormalizeColor(draft.Color),
		isPublic:    draft.IsPublic,
		parentID:    draft.ParentID,
		position:    draft.Position,
		createdAt:   now,
		updatedAt:   now,
	}
}

func (c *Collection) ID() string           { return c.id }
func (c *Collection) Sequence() int        { return c.sequence }
func (c *Collection) OwnerID() string      { return c.ownerID }
func (c *Collection) Name() string         { return c.name }
func (c *Collection) Description() string  { return c.description }
func (c *Collection) Icon() string         { return c.icon }
func (c *Collection) Color() string        { return c.color }
func (c *Collection) IsPublic() bool       { return c.isPublic }
func (c *Collection) ParentID() *string    { return c.parentID }
func (c *Collection) Position() int        { return c.position }
func (c *Collection) CreatedAt() time.Time { return c.createdAt }
func (c *Collection) UpdatedAt() time.Time { return c.updatedAt }

func (c *Collection) SetID(id string) { c.id = id }
func (c *Collection) SetSequence(seq int) { c.sequence = seq }
func (c *Collection) SetUpdatedAt(t time.Time) { c.updatedAt = t }
func (c *Collection) SetCreatedAt(t time.Time) { c.createdAt = t }
func (c *Collection) SetName(name string) { c.name = name }
func (c *Collection) SetDescription(desc string) { c.description = desc }
func (c *Collection) SetIcon(icon string) { c.icon = icon }
func (c *Collection) SetColor(color string) { c.color = NormalizeColor(color) }
func (c *Collection) SetPublic(public bool) { c.isPublic = public }
func (c *Collection) SetPosition(pos int) { c.position = pos }

// SetParent updates the parent reference. A nil parent detaches the
// collection to the root of the owner's forest.
func (c *Collection) SetParent(parentID *string) { c.parentID = parentID }

// Apply copies the non-nil fields of a patch onto the collection.
func (c *Collection) Apply(patch CollectionPatch) {
	if patch.Name != nil {
		c.name = *patch.Name
	}
	if patch.Description != nil {
		c.description = *patch.Description
	}
	if patch.Icon != nil {
		c.icon = *patch.Icon
	}
	if patch.Color != nil {
		c.color = NormalizeColor(*patch.Color)
	}
	if patch.IsPublic != nil {
		c.isPublic = *patch.IsPublic
	}
	if patch.Position != nil {
		c.position = *patch.Position
	}
}

// Validate checks field constraints: name 1-100 chars, description up to 500,
// icon up to 50, color 6 hex digits when set, position non-negative.
func (c *Collection) Validate() error {
	if c.ownerID == "" {
		return fmt.Errorf("%w: owner id is required", shared.ErrInvalidInput)
	}
	if len(c.name) == 0 || len(c.name) > MaxNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", shared.ErrInvalidInput, MaxNameLength)
	}
	if len(c.description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", shared.ErrInvalidInput, MaxDescriptionLength)
	}
	if len(c.icon) > MaxIconLength {
		return fmt.Errorf("%w: icon must be at most %d characters", shared.ErrInvalidInput, MaxIconLength)
	}
	if c.color != "" && !colorPattern.MatchString(c.color) {
		return fmt.Errorf("%w: color must be a 6 hex digit code", shared.ErrInvalidInput)
	}
	if c.position < 0 {
		return fmt.Errorf("%w: position must be non-negative", shared.ErrInvalidInput)
	}
	return nil
}

// NormalizeColor strips an optional leading '#' from a hex color code.
func NormalizeColor(color string) string {
	return strings.TrimPrefix(color, "#")
}
