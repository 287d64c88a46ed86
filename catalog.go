package partscat

import (
	"context"
	"strings"
)

// CatalogType is the type discriminator carried by every persisted catalog
// document.
const CatalogType = "parts_catalog"

// Catalog is the set of parts for one brand+product combination
// (e.g. "Dacor-Refrigerator"). Catalogs are written once per scrape run
// and replaced wholesale on re-upload.
type Catalog struct {
	ID           string `json:"id" bson:"_id"`
	BrandProduct string `json:"brand_product" bson:"brand_product"`
	Type         string `json:"type" bson:"type"`

	// SourceURL is the listing page the catalog was scraped from. It
	// names the output file.
	SourceURL string `json:"source_url,omitempty" bson:"source_url,omitempty"`

	Parts []Part `json:"parts" bson:"parts"`
}

// Validate returns an error if the catalog contains invalid fields.
func (c *Catalog) Validate() error {
	if c.BrandProduct == "" {
		return Errorf(EINVALID, "catalog brand_product required")
	}
	return nil
}

// CatalogID derives a storage id from a brand_product string by
// lowercasing and replacing hyphens with underscores.
// "Amana-Dishwasher" becomes "amana_dishwasher".
func CatalogID(brandProduct string) string {
	return strings.ToLower(strings.ReplaceAll(brandProduct, "-", "_"))
}

// NewCatalog creates a catalog for a brand_product with a derived id and
// the standard type discriminator.
func NewCatalog(brandProduct string, parts []Part) *Catalog {
	return &Catalog{
		ID:           CatalogID(brandProduct),
		BrandProduct: brandProduct,
		Type:         CatalogType,
		Parts:        parts,
	}
}

// Flatten hoists each part's nested detail fields to the top level and
// removes the nested container. The detail part_number becomes the
// top-level manufacturer_number to avoid colliding with the vendor part
// number already present. Running Flatten on already-flat data is a no-op.
func (c *Catalog) Flatten() {
	for i := range c.Parts {
		p := &c.Parts[i]
		d := p.Details
		if d == nil {
			continue
		}

		// Keep an existing top-level name.
		if p.Name == nil && d.Name != "" {
			p.Name = String(d.Name)
		}
		if d.PartNumber != "" {
			p.ManufacturerNumber = String(d.PartNumber)
		}
		if d.Price != "" {
			p.Price = String(d.Price)
		}
		if d.Rating != "" {
			p.Rating = String(d.Rating)
		}
		if d.ReviewsCount != 0 {
			p.ReviewsCount = Int(d.ReviewsCount)
		}
		if len(d.Reviews) > 0 {
			p.Reviews = d.Reviews
		}
		if len(d.RepairStories) > 0 {
			p.RepairStories = d.RepairStories
		}
		if len(d.Videos) > 0 {
			p.Videos = d.Videos
		}
		if d.SymptomsFixed != "" {
			p.SymptomsFixed = String(d.SymptomsFixed)
		}
		if d.WorksWith != "" {
			p.WorksWith = String(d.WorksWith)
		}
		if len(d.AlsoReplaces) > 0 {
			p.AlsoReplaces = d.AlsoReplaces
		}

		p.Details = nil
	}
}

// Target is one brand+category listing to scrape.
type Target struct {
	Category string // e.g. "Dishwasher"
	Brand    string // e.g. "Admiral"
	URL      string // absolute listing URL
}

// BrandProduct returns the catalog key for the target,
// e.g. "Admiral-Dishwasher".
func (t Target) BrandProduct() string {
	return t.Brand + "-" + t.Category
}

// CatalogWriter writes catalogs to local storage.
type CatalogWriter interface {
	// WriteCatalog persists the catalog and returns the path it was
	// written to.
	WriteCatalog(ctx context.Context, catalog *Catalog) (string, error)
}

// PartFilter represents the query surface exposed to the agent layer.
// Zero-valued fields are ignored; set fields are combined with AND.
type PartFilter struct {
	BrandProduct         *string `json:"brandProduct"`
	BrandProductPrefix   *string `json:"brandProductPrefix"`
	BrandProductContains *string `json:"brandProductContains"`
	PartSelectNumber     *string `json:"partselectNumber"`
	ManufacturerNumber   *string `json:"manufacturerNumber"`
	NameContains         *string `json:"nameContains"`
	DescriptionContains  *string `json:"descriptionContains"`
	AlsoReplaces         *string `json:"alsoReplaces"` // array membership

	Limit int `json:"limit"`
}

// PartMatch is a part together with the brand_product of its catalog.
type PartMatch struct {
	BrandProduct string `json:"brand_product"`
	Part
}

// CatalogService represents a service for storing and querying catalogs.
type CatalogService interface {
	// UpsertCatalog creates or fully replaces the catalog with the same id.
	UpsertCatalog(ctx context.Context, catalog *Catalog) error

	// FindCatalogByID retrieves a catalog by its storage id.
	// Returns ENOTFOUND if the catalog does not exist.
	FindCatalogByID(ctx context.Context, id string) (*Catalog, error)

	// FindParts retrieves parts across catalogs matching the filter.
	FindParts(ctx context.Context, filter PartFilter) ([]PartMatch, error)

	// Query executes a read-only query against the store. Statements that
	// are not SELECT are rejected with EINVALID before reaching the store.
	Query(ctx context.Context, stmt string) ([]map[string]any, error)
}

// FileStatus records the outcome of uploading one file in a batch.
type FileStatus struct {
	File   string `json:"file"`
	Status string `json:"status"` // "success" or "failed"
	Error  string `json:"error,omitempty"`
}

// UploadSummary summarizes a batch persistence operation. A batch never
// fails wholesale; per-file failures are recorded here instead.
type UploadSummary struct {
	Total    int          `json:"total"`
	Uploaded int          `json:"uploaded"`
	Failed   int          `json:"failed"`
	Files    []FileStatus `json:"files"`
}
