// Package product_repo provides the PostgreSQL product lookup used by the
// identifier resolver.
package product_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/apperror"
	"github.com/prinzana/sellyticsOffline-sub002/internal/core/id"
	"github.com/prinzana/sellyticsOffline-sub002/internal/domain/catalog/product"
)

const tableName = "products"

var selectCols = []string{"id", "store_id", "name", "unit_price", "identifiers", "on_hand"}

// Repo implements product.Repository over PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// NewRepo creates a product repository over the given pool.
func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Builder returns a squirrel builder with PostgreSQL placeholder format.
func (r *Repo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// FindByIdentifier retrieves the product whose delimited identifier column
// contains the code. Contains-match is intentional: legacy records store
// serials as comma-separated lists.
func (r *Repo) FindByIdentifier(ctx context.Context, storeID id.ID, code string) (*product.Product, error) {
	q := findByIdentifierQuery(r.Builder(), storeID, code)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	p := &product.Product{}
	if err := pgxscan.Get(ctx, r.pool, p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(tableName, code)
		}
		return nil, fmt.Errorf("find by identifier: %w", err)
	}
	return p, nil
}

// GetByID retrieves a product by id within the store.
func (r *Repo) GetByID(ctx context.Context, storeID, productID id.ID) (*product.Product, error) {
	q := r.Builder().
		Select(selectCols...).
		From(tableName).
		Where(squirrel.Eq{"store_id": storeID}).
		Where(squirrel.Eq{"id": productID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	p := &product.Product{}
	if err := pgxscan.Get(ctx, r.pool, p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(tableName, productID.String())
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return p, nil
}

// findByIdentifierQuery is split out so the generated SQL is testable.
func findByIdentifierQuery(b squirrel.StatementBuilderType, storeID id.ID, code string) squirrel.SelectBuilder {
	return b.
		Select(selectCols...).
		From(tableName).
		Where(squirrel.Eq{"store_id": storeID}).
		Where(squirrel.ILike{"identifiers": "%" + code + "%"}).
		OrderBy("name").
		Limit(1)
}
