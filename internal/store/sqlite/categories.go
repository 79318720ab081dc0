package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/banglakobita/kobita-server/internal/domain"
	"github.com/banglakobita/kobita-server/internal/store"
)

// categoryColumns is the ordered list of columns selected in category queries.
// Must match the scan order in scanCategory.
const categoryColumns = `id, name, slug, description, type, icon_url, display_order,
	created_at, updated_at`

func scanCategory(scanner interface{ Scan(dest ...any) error }) (*domain.Category, error) {
	var c domain.Category

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&c.ID,
		&c.Name,
		&c.Slug,
		&c.Description,
		&c.Type,
		&c.IconURL,
		&c.DisplayOrder,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// CreateCategory inserts a new category.
// Returns store.ErrAlreadyExists on duplicate slug.
func (s *Store) CreateCategory(ctx context.Context, category *domain.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, slug, description, type, icon_url,
			display_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.Type,
		category.IconURL,
		category.DisplayOrder,
		formatTime(category.CreatedAt),
		formatTime(category.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetCategory retrieves a category by ID.
func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetCategoryBySlug retrieves a category by slug.
func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = ?`, slug)

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories returns categories ordered by display order then name.
// An empty contentType returns categories of every kind.
func (s *Store) ListCategories(ctx context.Context, contentType domain.ContentType) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	args := []any{}
	if contentType != "" {
		query += ` WHERE type = ?`
		args = append(args, contentType)
	}
	query += ` ORDER BY display_order ASC, name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if categories == nil {
		categories = []*domain.Category{}
	}

	return categories, nil
}

// UpdateCategory saves all mutable category fields.
func (s *Store) UpdateCategory(ctx context.Context, category *domain.Category) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE categories SET
			name = ?, slug = ?, description = ?, type = ?, icon_url = ?,
			display_order = ?, updated_at = ?
		WHERE id = ?`,
		category.Name,
		category.Slug,
		category.Description,
		category.Type,
		category.IconURL,
		category.DisplayOrder,
		formatTime(category.UpdatedAt),
		category.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category. Content referencing it keeps existing
// with its category cleared by the foreign key.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}
