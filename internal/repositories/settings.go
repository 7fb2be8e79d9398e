package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/ytshelf/internal/models"
	"github.com/desertthunder/ytshelf/internal/shared"
)

// SettingsRepository persists per-collection settings, keyed by collection id.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository with the given database connection
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Create inserts a settings row for a collection
func (r *SettingsRepository) Create(settings *models.Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO collection_settings (collection_id, auto_tag, sync_enabled, notify, feed_enabled, hide_watched, hide_shorts, sort_by, sort_order, max_items)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		settings.CollectionID(),
		settings.AutoTag(),
		settings.SyncEnabled(),
		settings.Notify(),
		settings.FeedEnabled(),
		settings.HideWatched(),
		settings.HideShorts(),
		settings.SortBy(),
		settings.SortOrder(),
		nullableInt(settings.MaxItems()),
	)
	if err != nil {
		return fmt.Errorf("failed to insert settings: %w", err)
	}

	return nil
}

// Get retrieves the settings row for a collection
func (r *SettingsRepository) Get(collectionID string) (*models.Settings, error) {
	query := `
		SELECT collection_id, auto_tag, sync_enabled, notify, feed_enabled, hide_watched, hide_shorts, sort_by, sort_order, max_items
		FROM collection_settings
		WHERE collection_id = ?
	`

	var (
		cID         string
		autoTag     bool
		syncEnabled bool
		notify      bool
		feedEnabled bool
		hideWatched bool
		hideShorts  bool
		sortBy      string
		sortOrder   string
		maxItems    sql.NullInt64
	)

	err := r.db.QueryRow(query, collectionID).Scan(
		&cID, &autoTag, &syncEnabled, &notify, &feedEnabled,
		&hideWatched, &hideShorts, &sortBy, &sortOrder, &maxItems,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: settings for %s", shared.ErrNotFound, collectionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan settings: %w", err)
	}

	settings := models.DefaultSettings(cID)
	settings.SetAutoTag(autoTag)
	settings.SetSyncEnabled(syncEnabled)
	settings.SetNotify(notify)
	settings.SetFeedEnabled(feedEnabled)
	settings.SetHideWatched(hideWatched)
	settings.SetHideShorts(hideShorts)
	settings.SetSortBy(sortBy)
	settings.SetSortOrder(sortOrder)
	if maxItems.Valid {
		v := int(maxItems.Int64)
		settings.SetMaxItems(&v)
	}

	return settings, nil
}

// Update modifies the settings row for a collection
func (r *SettingsRepository) Update(settings *models.Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	settings.SetUpdatedAt(time.Now())

	query := `
		UPDATE collection_settings
		SET auto_tag = ?, sync_enabled = ?, notify = ?, feed_enabled = ?, hide_watched = ?, hide_shorts = ?, sort_by = ?, sort_order = ?, max_items = ?
		WHERE collection_id = ?
	`

	result, err := r.db.Exec(query,
		settings.AutoTag(),
		settings.SyncEnabled(),
		settings.Notify(),
		settings.FeedEnabled(),
		settings.HideWatched(),
		settings.HideShorts(),
		settings.SortBy(),
		settings.SortOrder(),
		nullableInt(settings.MaxItems()),
		settings.CollectionID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: settings for %s", shared.ErrNotFound, settings.CollectionID())
	}

	return nil
}

// Delete removes the settings row for a collection. Absent rows are ignored.
func (r *SettingsRepository) Delete(collectionID string) error {
	if _, err := r.db.Exec("DELETE FROM collection_settings WHERE collection_id = ?", collectionID); err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}
	return nil
}

// nullableInt converts an optional int to a driver-friendly value.
func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
