// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/cinedex/internal/platform/database/schema"
	"github.com/taibuivan/cinedex/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on catalog.genre.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a genre repository on the given pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns every genre ordered by name.
func (repository *PostgresRepository) List(context context.Context) ([]Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s ASC`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]Genre, 0)
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}

	return genres, nil
}
