// Package sales_repo provides PostgreSQL lookups against identifiers
// attached to committed sales.
package sales_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/id"
)

const tableName = "sold_identifiers"

// SoldRepo implements sold.Repository over PostgreSQL.
type SoldRepo struct {
	pool *pgxpool.Pool
}

// NewSoldRepo creates a sold-identifier repository over the given pool.
func NewSoldRepo(pool *pgxpool.Pool) *SoldRepo {
	return &SoldRepo{pool: pool}
}

// Builder returns a squirrel builder with PostgreSQL placeholder format.
func (r *SoldRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Exists reports whether the code is attached to a committed sale within the
// store. Exact, case-insensitive match.
func (r *SoldRepo) Exists(ctx context.Context, storeID id.ID, code string) (bool, error) {
	q := r.Builder().
		Select("1").
		From(tableName).
		Where(squirrel.Eq{"store_id": storeID}).
		Where(squirrel.Expr("lower(code) = ?", strings.ToLower(code))).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	if err := pgxscan.Get(ctx, r.pool, &one, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("sold check: %w", err)
	}
	return true, nil
}

// FindSoldOf returns the subset of identifiers already recorded as sold
// within the store, lowercased.
func (r *SoldRepo) FindSoldOf(ctx context.Context, storeID id.ID, identifiers []string) ([]string, error) {
	if len(identifiers) == 0 {
		return nil, nil
	}

	lowered := make([]string, len(identifiers))
	for i, ident := range identifiers {
		lowered[i] = strings.ToLower(ident)
	}

	q := r.Builder().
		Select("lower(code)").
		From(tableName).
		Where(squirrel.Eq{"store_id": storeID}).
		Where(squirrel.Expr("lower(code) = ANY(?)", lowered))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var sold []string
	if err := pgxscan.Select(ctx, r.pool, &sold, sql, args...); err != nil {
		return nil, fmt.Errorf("find sold of: %w", err)
	}
	return sold, nil
}
