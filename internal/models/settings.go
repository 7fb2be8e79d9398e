package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/ytshelf/internal/shared"
)

// Sort keys accepted by collection settings.
const (
	SortByAddedAt     = "addedAt"
	SortByPublishedAt = "publishedAt"
	SortByTitle       = "title"
	SortByDuration    = "duration"
	SortByViews       = "views"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

const (
	MinMaxItems = 1
	MaxMaxItems = 10000
)

// SettingsPatch carries optional fields for a settings upsert.
// Nil fields are left unchanged (or defaulted on first create).
type SettingsPatch struct {
	AutoTag     *bool   `json:"auto_tag,omitempty"`
	SyncEnabled *bool   `json:"sync_enabled,omitempty"`
	Notify      *bool   `json:"notify,omitempty"`
	FeedEnabled *bool   `json:"feed_enabled,omitempty"`
	HideWatched *bool   `json:"hide_watched,omitempty"`
	HideShorts  *bool   `json:"hide_shorts,omitempty"`
	SortBy      *string `json:"sort_by,omitempty"`
	SortOrder   *string `json:"sort_order,omitempty"`
	MaxItems    *int    `json:"max_items,omitempty"`
}

// Settings holds per-collection behavioral configuration, one row per
// collection.
type Settings struct {
	collectionID string
	autoTag      bool
	syncEnabled  bool
	notify       bool
	feedEnabled  bool
	hideWatched  bool
	hideShorts   bool
	sortBy       string
	sortOrder    string
	maxItems     *int
	createdAt    time.Time
	updatedAt    time.Time
}

// DefaultSettings returns the settings a collection starts with: sync and
// feed enabled, newest additions first.
func DefaultSettings(collectionID string) *Settings {
	now := time.Now()
	return &Settings{
		collectionID: collectionID,
		syncEnabled:  true,
		feedEnabled:  true,
		sortBy:       SortByAddedAt,
		sortOrder:    SortOrderDesc,
		createdAt:    now,
		updatedAt:    now,
	}
}

func (s *Settings) ID() string           { return s.collectionID }
func (s *Settings) CollectionID() string { return s.collectionID }
func (s *Settings) AutoTag() bool        { return s.autoTag }
func (s *Settings) SyncEnabled() bool    { return s.syncEnabled }
func (s *Settings) Notify() bool         { return s.notify }
func (s *Settings) FeedEnabled() bool    { return s.feedEnabled }
func (s *Settings) HideWatched() bool    { return s.hideWatched }
func (s *Settings) HideShorts() bool     { return s.hideShorts }
func (s *Settings) SortBy() string       { return s.sortBy }
func (s *Settings) SortOrder() string    { return s.sortOrder }
func (s *Settings) MaxItems() *int       { return s.maxItems }
func (s *Settings) CreatedAt() time.Time { return s.createdAt }
func (s *Settings) UpdatedAt() time.Time { return s.updatedAt }

func (s *Settings) SetAutoTag(v bool) { s.autoTag = v }
func (s *Settings) SetSyncEnabled(v bool) { s.syncEnabled = v }
func (s *Settings) SetNotify(v bool) { s.notify = v }
func (s *Settings) SetFeedEnabled(v bool) { s.feedEnabled = v }
func (s *Settings) SetHideWatched(v bool) { s.hideWatched = v }
func (s *Settings) SetHideShorts(v bool) { s.hideShorts = v }
func (s *Settings) SetSortBy(v string) { s.sortBy = v }
func (s *Settings) SetSortOrder(v string) { s.sortOrder = v }
func (s *Settings) SetMaxItems(v *int) { s.maxItems = v }
func (s *Settings) SetCreatedAt(t time.Time) { s.createdAt = t }
func (s *Settings) SetUpdatedAt(t time.Time) { s.updatedAt = t }

// Apply copies the non-nil fields of a patch onto the settings.
func (s *Settings) Apply(patch SettingsPatch) {
	if patch.AutoTag != nil {
		s.autoTag = *patch.AutoTag
	}
	if patch.SyncEnabled != nil {
		s.syncEnabled = *patch.SyncEnabled
	}
	if patch.Notify != nil {
		s.notify = *patch.Notify
	}
	if patch.FeedEnabled != nil {
		s.feedEnabled = *patch.FeedEnabled
	}
	if patch.HideWatched != nil {
		s.hideWatched = *patch.HideWatched
	}
	if patch.HideShorts != nil {
		s.hideShorts = *patch.HideShorts
	}
	if patch.SortBy != nil {
		s.sortBy = *patch.SortBy
	}
	if patch.SortOrder != nil {
		s.sortOrder = *patch.SortOrder
	}
	if patch.MaxItems != nil {
		s.maxItems = patch.MaxItems
	}
}

// Validate checks the sort enums and the max items bound (1-10000).
func (s *Settings) Validate() error {
	if s.collectionID == "" {
		return fmt.Errorf("%w: collection id is required", shared.ErrInvalidInput)
	}
	switch s.sortBy {
	case SortByAddedAt, SortByPublishedAt, SortByTitle, SortByDuration, SortByViews:
	default:
		return fmt.Errorf("%w: invalid sort key %q", shared.ErrInvalidInput, s.sortBy)
	}
	switch s.sortOrder {
	case SortOrderAsc, SortOrderDesc:
	default:
		return fmt.Errorf("%w: invalid sort order %q", shared.ErrInvalidInput, s.sortOrder)
	}
	if s.maxItems != nil && (*s.maxItems < MinMaxItems || *s.maxItems > MaxMaxItems) {
		return fmt.Errorf("%w: max items must be between %d and %d", shared.ErrInvalidInput, MinMaxItems, MaxMaxItems)
	}
	return nil
}
