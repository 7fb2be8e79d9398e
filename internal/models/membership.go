package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/ytshelf/internal/shared"
)

// Membership is an ordered association between a collection and one external
// item (video, channel or playlist). The pair (collection id, item id) is
// unique per kind.
type Membership struct {
	collectionID string
	itemID       string
	position     int
	addedAt      time.Time
}

// NewMembership creates a membership record stamped with the current time.
func NewMembership(collectionID, itemID string, position int) *Membership {
	return &Membership{
		collectionID: collectionID,
		itemID:       itemID,
		position:     position,
		addedAt:      time.Now(),
	}
}

func (m *Membership) CollectionID() string { return m.collectionID }
func (m *Membership) ItemID() string       { return m.itemID }
func (m *Membership) Position() int        { return m.position }
func (m *Membership) AddedAt() time.Time   { return m.addedAt }

func (m *Membership) SetPosition(pos int) { m.position = pos }
func (m *Membership) SetAddedAt(t time.Time) { m.addedAt = t }

// Validate checks that both sides of the association are present.
func (m *Membership) Validate() error {
	if m.collectionID == "" {
		return fmt.Errorf("%w: collection id is required", shared.ErrInvalidInput)
	}
	if m.itemID == "" {
		return fmt.Errorf("%w: item id is required", shared.ErrInvalidInput)
	}
	if m.position < 0 {
		return fmt.Errorf("%w: position must be non-negative", shared.ErrInvalidInput)
	}
	return nil
}
