// package collections implements the hierarchical collection service.
//
// The core abstraction is Engine, which maintains an owner-scoped forest of
// collections over a relational store: structural edits (create, update,
// reparent, cascade delete), item memberships, per-collection settings,
// search, batch operations and export/import. Multi-item operations never
// abort on a single failure; they return per-item scoreboards instead.
package collections

import (
	"database/sql"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytshelf/internal/models"
	"github.com/desertthunder/ytshelf/internal/repositories"
	"github.com/desertthunder/ytshelf/internal/shared"
)

// MetricsRecorder receives domain-level measurements from the engine.
// Implementations must be safe for concurrent use.
type MetricsRecorder interface {
	RecordOperation(op string, err error)
	RecordItemsAdded(kind string, count int)
	RecordItemsFailed(kind string, count int)
	RecordCycleRejected()
}

// noopMetrics discards all measurements.
type noopMetrics struct{}

func (noopMetrics) RecordOperation(op string, err error) {}
func (noopMetrics) RecordItemsAdded(kind string, count int) {}
func (noopMetrics) RecordItemsFailed(kind string, count int) {}
func (noopMetrics) RecordCycleRejected() {}

// Engine implements the collection service contract.
type Engine struct {
	collections *repositories.CollectionRepository
	memberships map[models.ItemKind]*repositories.MembershipRepository
	settings    *repositories.SettingsRepository
	logger      *log.Logger
	metrics     MetricsRecorder
}

// EngineOpts contains dependencies for creating an Engine.
type EngineOpts struct {
	DB      *sql.DB
	Logger  *log.Logger
	Metrics MetricsRecorder
}

// NewEngine creates an Engine backed by the given database.
func NewEngine(opts EngineOpts) *Engine {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Metrics == nil {
		opts.Metrics = noopMetrics{}
	}

	memberships := make(map[models.ItemKind]*repositories.MembershipRepository, 3)
	for _, kind := range models.Kinds() {
		memberships[kind] = repositories.NewMembershipRepository(opts.DB, kind)
	}

	return &Engine{
		collections: repositories.NewCollectionRepository(opts.DB),
		memberships: memberships,
		settings:    repositories.NewSettingsRepository(opts.DB),
		logger:      opts.Logger,
		metrics:     opts.Metrics,
	}
}

// CollectionView is the hydrated representation of a collection returned by
// the engine.
type CollectionView struct {
	ID          string            `json:"id"`
	OwnerID     string            `json:"owner_id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Icon        string            `json:"icon,omitempty"`
	Color       string            `json:"color,omitempty"`
	IsPublic    bool              `json:"is_public"`
	ParentID    *string           `json:"parent_id,omitempty"`
	Position    int               `json:"position"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Children    []*CollectionView `json:"children,omitempty"`
	ItemCounts  *ItemCounts       `json:"item_counts,omitempty"`
	Content     *Content          `json:"content,omitempty"`
	Settings    *SettingsView     `json:"settings,omitempty"`
}

// ItemCounts summarizes membership sizes per kind.
type ItemCounts struct {
	Videos    int `json:"videos"`
	Channels  int `json:"channels"`
	Playlists int `json:"playlists"`
	Total     int `json:"total"`
}

// ItemRef is one membership entry in a content listing.
type ItemRef struct {
	ItemID   string    `json:"item_id"`
	Position int       `json:"position"`
	AddedAt  time.Time `json:"added_at"`
}

// Content lists a collection's memberships of all three kinds.
type Content struct {
	Videos    []ItemRef `json:"videos"`
	Channels  []ItemRef `json:"channels"`
	Playlists []ItemRef `json:"playlists"`
	Total     int       `json:"total"`
}

// SettingsView is the serializable representation of collection settings.
type SettingsView struct {
	CollectionID string `json:"collection_id"`
	AutoTag      bool   `json:"auto_tag"`
	SyncEnabled  bool   `json:"sync_enabled"`
	Notify       bool   `json:"notify"`
	FeedEnabled  bool   `json:"feed_enabled"`
	HideWatched  bool   `json:"hide_watched"`
	HideShorts   bool   `json:"hide_shorts"`
	SortBy       string `json:"sort_by"`
	SortOrder    string `json:"sort_order"`
	MaxItems     *int   `json:"max_items,omitempty"`
}

// toView converts a collection model to its bare view, without relations.
func toView(c *models.Collection) *CollectionView {
	return &CollectionView{
		ID:          c.ID(),
		OwnerID:     c.OwnerID(),
		Name:        c.Name(),
		Description: c.Description(),
		Icon:        c.Icon(),
		Color:       c.Color(),
		IsPublic:    c.IsPublic(),
		ParentID:    c.ParentID(),
		Position:    c.Position(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

// toSettingsView converts a settings model to its serializable form.
func toSettingsView(s *models.Settings) *SettingsView {
	return &SettingsView{
		CollectionID: s.CollectionID(),
		AutoTag:      s.AutoTag(),
		SyncEnabled:  s.SyncEnabled(),
		Notify:       s.Notify(),
		FeedEnabled:  s.FeedEnabled(),
		HideWatched:  s.HideWatched(),
		HideShorts:   s.HideShorts(),
		SortBy:       s.SortBy(),
		SortOrder:    s.SortOrder(),
		MaxItems:     s.MaxItems(),
	}
}

// itemCounts gathers membership counts for one collection.
func (e *Engine) itemCounts(collectionID string) (*ItemCounts, error) {
	counts := &ItemCounts{}
	for kind, repo := range e.memberships {
		n, err := repo.CountByCollection(collectionID)
		if err != nil {
			return nil, err
		}
		switch kind {
		case models.KindVideo:
			counts.Videos = n
		case models.KindChannel:
			counts.Channels = n
		case models.KindPlaylist:
			counts.Playlists = n
		}
	}
	counts.Total = counts.Videos + counts.Channels + counts.Playlists
	return counts, nil
}

// content hydrates the full membership listing for one collection.
func (e *Engine) content(collectionID string) (*Content, error) {
	content := &Content{
		Videos:    []ItemRef{},
		Channels:  []ItemRef{},
		Playlists: []ItemRef{},
	}

	for kind, repo := range e.memberships {
		memberships, err := repo.ListByCollection(collectionID)
		if err != nil {
			return nil, err
		}
		refs := make([]ItemRef, 0, len(memberships))
		for _, m := range memberships {
			refs = append(refs, ItemRef{ItemID: m.ItemID(), Position: m.Position(), AddedAt: m.AddedAt()})
		}
		switch kind {
		case models.KindVideo:
			content.Videos = refs
		case models.KindChannel:
			content.Channels = refs
		case models.KindPlaylist:
			content.Playlists = refs
		}
	}

	content.Total = len(content.Videos) + len(content.Channels) + len(content.Playlists)
	return content, nil
}
