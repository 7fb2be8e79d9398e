package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/ytshelf/internal/models"
	"github.com/desertthunder/ytshelf/internal/shared"
)

// CollectionRepository implements models.Repository[*models.Collection].
//
// Handles collection CRUD, owner-scoped listing with a parent filter, name
// lookups for uniqueness checks and substring search.
type CollectionRepository struct {
	db *sql.DB
}

// NewCollectionRepository creates a new CollectionRepository with the given database connection
func NewCollectionRepository(db *sql.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

const collectionColumns = "id, sequence, owner_id, name, description, icon, color, is_public, parent_id, position, created_at, updated_at"

// Create inserts a new collection into the database with generated ID and sequence
func (r *CollectionRepository) Create(collection *models.Collection) error {
	sequence, err := NextSequence(r.db, "collections")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	collection.SetID(id)
	collection.SetSequence(sequence)

	if err := collection.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO collections (id, sequence, owner_id, name, description, icon, color, is_public, parent_id, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		collection.OwnerID(),
		collection.Name(),
		collection.Description(),
		collection.Icon(),
		collection.Color(),
		collection.IsPublic(),
		nullableString(collection.ParentID()),
		collection.Position(),
		collection.CreatedAt(),
		collection.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}

	return nil
}

// Get retrieves a collection by ID
func (r *CollectionRepository) Get(id string) (*models.Collection, error) {
	query := fmt.Sprintf("SELECT %s FROM collections WHERE id = ?", collectionColumns)
	return r.scanOne(r.db.QueryRow(query, id))
}

// Update modifies an existing collection in the database
func (r *CollectionRepository) Update(collection *models.Collection) error {
	if err := collection.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	collection.SetUpdatedAt(now)

	query := `
		UPDATE collections
		SET name = ?, description = ?, icon = ?, color = ?, is_public = ?, parent_id = ?, position = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		collection.Name(),
		collection.Description(),
		collection.Icon(),
		collection.Color(),
		collection.IsPublic(),
		nullableString(collection.ParentID()),
		collection.Position(),
		now,
		collection.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update collection: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, collection.ID())
	}

	return nil
}

// Delete removes a collection row by ID
func (r *CollectionRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM collections WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, id)
	}

	return nil
}

// List retrieves all collections matching the given criteria, ordered by
// position then newest first.
//
// Supported criteria: "owner_id" (string), "parent_id" (*string; a nil value
// restricts the listing to roots).
func (r *CollectionRepository) List(criteria map[string]any) ([]*models.Collection, error) {
	query := fmt.Sprintf("SELECT %s FROM collections WHERE 1=1", collectionColumns)
	args := []any{}

	if ownerID, ok := criteria["owner_id"].(string); ok && ownerID != "" {
		query += " AND owner_id = ?"
		args = append(args, ownerID)
	}

	if parentID, ok := criteria["parent_id"]; ok {
		if p, ok := parentID.(*string); ok && p != nil {
			query += " AND parent_id = ?"
			args = append(args, *p)
		} else {
			query += " AND parent_id IS NULL"
		}
	}

	query += " ORDER BY position ASC, created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query collections: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// ListChildren retrieves the direct children of a collection.
func (r *CollectionRepository) ListChildren(parentID string) ([]*models.Collection, error) {
	return r.List(map[string]any{"parent_id": &parentID})
}

// ExistsByOwnerAndName reports whether the owner already has a collection with
// the given name anywhere in their forest.
func (r *CollectionRepository) ExistsByOwnerAndName(ownerID, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM collections WHERE owner_id = ? AND name = ?)",
		ownerID, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check name: %w", err)
	}
	return exists, nil
}

// FindByOwnerAndName retrieves the first collection matching an owner and name.
func (r *CollectionRepository) FindByOwnerAndName(ownerID, name string) (*models.Collection, error) {
	query := fmt.Sprintf("SELECT %s FROM collections WHERE owner_id = ? AND name = ? LIMIT 1", collectionColumns)
	return r.scanOne(r.db.QueryRow(query, ownerID, name))
}

// Search retrieves collections whose name or description contains the query,
// case-insensitively, scoped to the owner.
func (r *CollectionRepository) Search(ownerID, query string, limit int) ([]*models.Collection, error) {
	pattern := "%" + query + "%"
	stmt := fmt.Sprintf(`
		SELECT %s FROM collections
		WHERE owner_id = ? AND (name LIKE ? COLLATE NOCASE OR description LIKE ? COLLATE NOCASE)
		ORDER BY position ASC, created_at DESC
		LIMIT ?
	`, collectionColumns)

	rows, err := r.db.Query(stmt, ownerID, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search collections: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// collect drains rows into collection models.
func (r *CollectionRepository) collect(rows *sql.Rows) ([]*models.Collection, error) {
	var collections []*models.Collection
	for rows.Next() {
		collection, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		collections = append(collections, collection)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return collections, nil
}

// scanOne scans a single row into a [models.Collection]
func (r *CollectionRepository) scanOne(row *sql.Row) (*models.Collection, error) {
	collection, err := scanCollection(row.Scan)
	if err == sql.ErrNoRows {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan collection: %w", err)
	}
	return collection, nil
}

// scanRow scans a row from [sql.Rows] into a [models.Collection]
func (r *CollectionRepository) scanRow(rows *sql.Rows) (*models.Collection, error) {
	collection, err := scanCollection(rows.Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to scan collection: %w", err)
	}
	return collection, nil
}

// scanCollection reads the collection columns through the given scan function.
func scanCollection(scan func(dest ...any) error) (*models.Collection, error) {
	var (
		id          string
		sequence    int
		ownerID     string
		name        string
		description string
		icon        string
		color       string
		isPublic    bool
		parentID    sql.NullString
		position    int
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := scan(&id, &sequence, &ownerID, &name, &description, &icon, &color, &isPublic, &parentID, &position, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	draft := models.CollectionDraft{
		Name:        name,
		Description: description,
		Icon:        icon,
		Color:       color,
		IsPublic:    isPublic,
		Position:    position,
	}
	if parentID.Valid {
		draft.ParentID = &parentID.String
	}

	collection := models.NewCollection(sequence, ownerID, draft)
	collection.SetID(id)
	collection.SetCreatedAt(createdAt)
	collection.SetUpdatedAt(updatedAt)

	return collection, nil
}

// nullableString converts an optional string to a driver-friendly value.
func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
