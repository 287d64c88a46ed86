package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/partscat"
)

// Compile-time interface verification.
var _ partscat.CatalogService = (*CatalogService)(nil)

// CatalogService implements partscat.CatalogService using SQLite.
// Each catalog is one row; its parts are a JSON document queried through
// json_each.
type CatalogService struct {
	db *DB
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(db *DB) *CatalogService {
	return &CatalogService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// UpsertCatalog creates the catalog or fully replaces the row with the
// same id.
func (s *CatalogService) UpsertCatalog(ctx context.Context, catalog *partscat.Catalog) error {
	if err := catalog.Validate(); err != nil {
		return err
	}

	if catalog.ID == "" {
		catalog.ID = partscat.CatalogID(catalog.BrandProduct)
	}
	if catalog.Type == "" {
		catalog.Type = partscat.CatalogType
	}

	parts, err := json.Marshal(catalog.Parts)
	if err != nil {
		return fmt.Errorf("encoding parts: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO catalogs (id, brand_product, type, parts, content_hash, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			brand_product = excluded.brand_product,
			type = excluded.type,
			parts = excluded.parts,
			content_hash = excluded.content_hash,
			updated_at = excluded.updated_at
	`, catalog.ID, catalog.BrandProduct, catalog.Type, string(parts),
		hashContent(string(parts)), time.Now().UTC().Format(time.RFC3339))

	return err
}

// FindCatalogByID retrieves a catalog by its storage id.
func (s *CatalogService) FindCatalogByID(ctx context.Context, id string) (*partscat.Catalog, error) {
	var catalog partscat.Catalog
	var parts string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, brand_product, type, parts
		FROM catalogs
		WHERE id = ?
	`, id).Scan(&catalog.ID, &catalog.BrandProduct, &catalog.Type, &parts)

	if err == sql.ErrNoRows {
		return nil, partscat.Errorf(partscat.ENOTFOUND, "catalog not found")
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(parts), &catalog.Parts); err != nil {
		return nil, fmt.Errorf("decoding parts: %w", err)
	}
	return &catalog, nil
}

// FindParts retrieves parts across catalogs matching the filter.
// Set filter fields are combined with AND.
func (s *CatalogService) FindParts(ctx context.Context, filter partscat.PartFilter) ([]partscat.PartMatch, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT c.brand_product, je.value
		FROM catalogs c, json_each(c.parts) je
		WHERE 1=1`)

	if filter.BrandProduct != nil {
		query.WriteString(" AND c.brand_product = ?")
		args = append(args, *filter.BrandProduct)
	}
	if filter.BrandProductPrefix != nil {
		query.WriteString(" AND c.brand_product LIKE ? || '%'")
		args = append(args, *filter.BrandProductPrefix)
	}
	if filter.BrandProductContains != nil {
		query.WriteString(" AND c.brand_product LIKE '%' || ? || '%'")
		args = append(args, *filter.BrandProductContains)
	}
	if filter.PartSelectNumber != nil {
		query.WriteString(" AND json_extract(je.value, '$.partselect_number') = ?")
		args = append(args, *filter.PartSelectNumber)
	}
	if filter.ManufacturerNumber != nil {
		query.WriteString(" AND json_extract(je.value, '$.manufacturer_number') = ?")
		args = append(args, *filter.ManufacturerNumber)
	}
	if filter.NameContains != nil {
		query.WriteString(" AND LOWER(json_extract(je.value, '$.name')) LIKE '%' || LOWER(?) || '%'")
		args = append(args, *filter.NameContains)
	}
	if filter.DescriptionContains != nil {
		query.WriteString(" AND LOWER(json_extract(je.value, '$.description')) LIKE '%' || LOWER(?) || '%'")
		args = append(args, *filter.DescriptionContains)
	}
	if filter.AlsoReplaces != nil {
		query.WriteString(` AND EXISTS (
			SELECT 1 FROM json_each(je.value, '$.also_replaces') ar WHERE ar.value = ?)`)
		args = append(args, *filter.AlsoReplaces)
	}

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []partscat.PartMatch
	for rows.Next() {
		var match partscat.PartMatch
		var part string
		if err := rows.Scan(&match.BrandProduct, &part); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(part), &match.Part); err != nil {
			return nil, fmt.Errorf("decoding part: %w", err)
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

// Query executes a read-only query. The statement must begin with SELECT
// (case-insensitive); anything else is rejected before touching the
// database.
func (s *CatalogService) Query(ctx context.Context, stmt string) ([]map[string]any, error) {
	if !IsSelect(stmt) {
		return nil, partscat.Errorf(partscat.EINVALID, "only SELECT statements are allowed")
	}

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// IsSelect reports whether the trimmed statement begins with SELECT.
func IsSelect(stmt string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(stmt)), "SELECT")
}
