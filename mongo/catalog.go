// Package mongo provides MongoDB-based storage for part catalogs.
package mongo

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/partscat"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time interface verification.
var _ partscat.CatalogService = (*CatalogService)(nil)

// CatalogService implements partscat.CatalogService over a MongoDB
// collection. Each catalog is one document keyed by _id.
type CatalogService struct {
	coll *mongo.Collection
}

// NewCatalogService creates a CatalogService over the given collection.
func NewCatalogService(coll *mongo.Collection) *CatalogService {
	return &CatalogService{coll: coll}
}

// Connect dials a MongoDB deployment and returns the catalogs collection.
func Connect(ctx context.Context, uri, database, collection string) (*mongo.Client, *mongo.Collection, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("pinging mongodb: %w", err)
	}
	return client, client.Database(database).Collection(collection), nil
}

// UpsertCatalog creates the catalog or fully replaces the document with
// the same _id.
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

	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": catalog.ID},
		catalog,
		options.Replace().SetUpsert(true))
	return err
}

// FindCatalogByID retrieves a catalog by its storage id.
func (s *CatalogService) FindCatalogByID(ctx context.Context, id string) (*partscat.Catalog, error) {
	var catalog partscat.Catalog
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&catalog)
	if err == mongo.ErrNoDocuments {
		return nil, partscat.Errorf(partscat.ENOTFOUND, "catalog not found")
	}
	if err != nil {
		return nil, err
	}
	return &catalog, nil
}

// FindParts retrieves parts across catalogs matching the filter. The
// catalog-level filters narrow the documents; part-level filters are
// applied per element after unwinding in memory.
func (s *CatalogService) FindParts(ctx context.Context, filter partscat.PartFilter) ([]partscat.PartMatch, error) {
	query := bson.M{}
	if filter.BrandProduct != nil {
		query["brand_product"] = *filter.BrandProduct
	}
	if filter.BrandProductPrefix != nil {
		query["brand_product"] = primitive.Regex{Pattern: "^" + escapeRegex(*filter.BrandProductPrefix)}
	}
	if filter.BrandProductContains != nil {
		query["brand_product"] = primitive.Regex{Pattern: escapeRegex(*filter.BrandProductContains)}
	}

	// Part-level narrowing so unmatched catalogs are never fetched.
	if elem := partElemMatch(filter); len(elem) > 0 {
		query["parts"] = bson.M{"$elemMatch": elem}
	}

	cursor, err := s.coll.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var matches []partscat.PartMatch
	for cursor.Next(ctx) {
		var catalog partscat.Catalog
		if err := cursor.Decode(&catalog); err != nil {
			return nil, err
		}
		for _, part := range catalog.Parts {
			if !matchPart(&part, filter) {
				continue
			}
			matches = append(matches, partscat.PartMatch{
				BrandProduct: catalog.BrandProduct,
				Part:         part,
			})
			if filter.Limit > 0 && len(matches) >= filter.Limit {
				return matches, nil
			}
		}
	}
	return matches, cursor.Err()
}

// Query rejects every statement: the store has no SQL surface, and the
// read-only gate applies before any backend is consulted.
func (s *CatalogService) Query(ctx context.Context, stmt string) ([]map[string]any, error) {
	if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(stmt)), "SELECT") {
		return nil, partscat.Errorf(partscat.EINVALID, "only SELECT statements are allowed")
	}
	return nil, partscat.Errorf(partscat.EINVALID, "raw queries are not supported by the mongodb store")
}

// partElemMatch builds the $elemMatch clause for part-level filters.
func partElemMatch(filter partscat.PartFilter) bson.M {
	elem := bson.M{}
	if filter.PartSelectNumber != nil {
		elem["partselect_number"] = *filter.PartSelectNumber
	}
	if filter.ManufacturerNumber != nil {
		elem["manufacturer_number"] = *filter.ManufacturerNumber
	}
	if filter.NameContains != nil {
		elem["name"] = primitive.Regex{Pattern: escapeRegex(*filter.NameContains), Options: "i"}
	}
	if filter.DescriptionContains != nil {
		elem["description"] = primitive.Regex{Pattern: escapeRegex(*filter.DescriptionContains), Options: "i"}
	}
	if filter.AlsoReplaces != nil {
		elem["also_replaces"] = *filter.AlsoReplaces
	}
	return elem
}

// matchPart applies the part-level filters to one element.
func matchPart(part *partscat.Part, filter partscat.PartFilter) bool {
	if filter.PartSelectNumber != nil &&
		(part.PartSelectNumber == nil || *part.PartSelectNumber != *filter.PartSelectNumber) {
		return false
	}
	if filter.ManufacturerNumber != nil &&
		(part.ManufacturerNumber == nil || *part.ManufacturerNumber != *filter.ManufacturerNumber) {
		return false
	}
	if filter.NameContains != nil &&
		(part.Name == nil || !containsFold(*part.Name, *filter.NameContains)) {
		return false
	}
	if filter.DescriptionContains != nil &&
		(part.Description == nil || !containsFold(*part.Description, *filter.DescriptionContains)) {
		return false
	}
	if filter.AlsoReplaces != nil {
		found := false
		for _, n := range part.AlsoReplaces {
			if n == *filter.AlsoReplaces {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// escapeRegex quotes regex metacharacters in user-supplied substrings.
func escapeRegex(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
