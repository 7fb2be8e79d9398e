package collections

import (
	"errors"

	"github.com/desertthunder/ytshelf/internal/models"
	"github.com/desertthunder/ytshelf/internal/shared"
)

// UpdateSettings upserts the settings of a collection: when no row exists the
// patch is merged over type defaults and inserted, otherwise the existing row
// is patched in place.
func (e *Engine) UpdateSettings(collectionID string, patch models.SettingsPatch) (*SettingsView, error) {
	if _, err := e.collections.Get(collectionID); err != nil {
		e.metrics.RecordOperation("update_settings", err)
		return nil, err
	}

	settings, err := e.settings.Get(collectionID)
	switch {
	case err == nil:
		settings.Apply(patch)
		if err := e.settings.Update(settings); err != nil {
			e.metrics.RecordOperation("update_settings", err)
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		settings = models.DefaultSettings(collectionID)
		settings.Apply(patch)
		if err := e.settings.Create(settings); err != nil {
			e.metrics.RecordOperation("update_settings", err)
			return nil, err
		}
	default:
		e.metrics.RecordOperation("update_settings", err)
		return nil, err
	}

	e.logger.Info("settings updated", "collection", collectionID)
	e.metrics.RecordOperation("update_settings", nil)
	return toSettingsView(settings), nil
}

// GetSettings retrieves the settings of a collection, falling back to type
// defaults when no row exists.
func (e *Engine) GetSettings(collectionID string) (*SettingsView, error) {
	if _, err := e.collections.Get(collectionID); err != nil {
		e.metrics.RecordOperation("get_settings", err)
		return nil, err
	}

	settings, err := e.settingsOrDefault(collectionID)
	if err != nil {
		e.metrics.RecordOperation("get_settings", err)
		return nil, err
	}

	e.metrics.RecordOperation("get_settings", nil)
	return toSettingsView(settings), nil
}

// settingsOrDefault loads the settings row or returns defaults when absent.
func (e *Engine) settingsOrDefault(collectionID string) (*models.Settings, error) {
	settings, err := e.settings.Get(collectionID)
	if errors.Is(err, shared.ErrNotFound) {
		return models.DefaultSettings(collectionID), nil
	}
	return settings, err
}
