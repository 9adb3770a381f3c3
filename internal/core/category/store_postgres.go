// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/cinedex/internal/platform/database/schema"
	"github.com/taibuivan/cinedex/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on catalog.category.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a category repository on the given pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns every category ordered by kind, display order and name.
func (repository *PostgresRepository) List(context context.Context) ([]Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s ORDER BY %s ASC, %s ASC, %s ASC`,
		schema.CatalogCategory.ID, schema.CatalogCategory.Name, schema.CatalogCategory.Kind,
		schema.CatalogCategory.Table,
		schema.CatalogCategory.Kind, schema.CatalogCategory.SortOrder, schema.CatalogCategory.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Kind); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}

	return categories, nil
}
