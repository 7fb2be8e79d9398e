package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/ytshelf/internal/models"
)

// membershipTables maps item kinds to their membership tables.
var membershipTables = map[models.ItemKind]string{
	models.KindVideo:    "collection_videos",
	models.KindChannel:  "collection_channels",
	models.KindPlaylist: "collection_playlists",
}

// MembershipRepository persists the many-to-many association between a
// collection and one item kind. One instance per kind, parametrized by table.
type MembershipRepository struct {
	db    *sql.DB
	kind  models.ItemKind
	table string
}

// NewMembershipRepository creates a MembershipRepository for the given item kind.
func NewMembershipRepository(db *sql.DB, kind models.ItemKind) *MembershipRepository {
	table, ok := membershipTables[kind]
	if !ok {
		panic(fmt.Sprintf("unknown item kind: %s", kind))
	}
	return &MembershipRepository{db: db, kind: kind, table: table}
}

// Kind returns the item kind this repository serves.
func (r *MembershipRepository) Kind() models.ItemKind { return r.kind }

// Create inserts a membership record. Inserting an item already in the
// collection fails on the (collection_id, item_id) unique constraint.
func (r *MembershipRepository) Create(m *models.Membership) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (collection_id, item_id, position, added_at) VALUES (?, ?, ?, ?)",
		r.table,
	)

	_, err := r.db.Exec(query, m.CollectionID(), m.ItemID(), m.Position(), m.AddedAt())
	if err != nil {
		return fmt.Errorf("failed to insert %s membership: %w", r.kind, err)
	}

	return nil
}

// Delete removes a membership record. Removing an absent record is not an
// error; the engine reports requested ids as removed regardless.
func (r *MembershipRepository) Delete(collectionID, itemID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE collection_id = ? AND item_id = ?", r.table)
	if _, err := r.db.Exec(query, collectionID, itemID); err != nil {
		return fmt.Errorf("failed to delete %s membership: %w", r.kind, err)
	}
	return nil
}

// DeleteByCollection removes all memberships of this kind for a collection.
func (r *MembershipRepository) DeleteByCollection(collectionID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE collection_id = ?", r.table)
	if _, err := r.db.Exec(query, collectionID); err != nil {
		return fmt.Errorf("failed to clear %s memberships: %w", r.kind, err)
	}
	return nil
}

// ListByCollection retrieves memberships for a collection ordered by position
// then insertion time.
func (r *MembershipRepository) ListByCollection(collectionID string) ([]*models.Membership, error) {
	query := fmt.Sprintf(
		"SELECT collection_id, item_id, position, added_at FROM %s WHERE collection_id = ? ORDER BY position ASC, added_at ASC",
		r.table,
	)

	rows, err := r.db.Query(query, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s memberships: %w", r.kind, err)
	}
	defer rows.Close()

	var memberships []*models.Membership
	for rows.Next() {
		var (
			cID     string
			itemID  string
			pos     int
			addedAt time.Time
		)
		if err := rows.Scan(&cID, &itemID, &pos, &addedAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s membership: %w", r.kind, err)
		}
		m := models.NewMembership(cID, itemID, pos)
		m.SetAddedAt(addedAt)
		memberships = append(memberships, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return memberships, nil
}

// CountByCollection returns the number of items of this kind in a collection.
func (r *MembershipRepository) CountByCollection(collectionID string) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE collection_id = ?", r.table)

	var count int
	if err := r.db.QueryRow(query, collectionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s memberships: %w", r.kind, err)
	}
	return count, nil
}
