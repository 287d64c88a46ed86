package partscat

// PageKind identifies the extraction strategy a rendered page requires.
type PageKind int

// Page kinds.
const (
	// PageListing is a paginated index of models.
	PageListing PageKind = iota

	// PageDetail is a flat list of purchasable parts.
	PageDetail
)

// String returns a human-readable page kind.
func (k PageKind) String() string {
	if k == PageDetail {
		return "detail"
	}
	return "listing"
}

// Classifier determines the kind of a rendered page. Classification is
// side-effect-free: a page with no recognizable markers is a listing,
// not an error.
type Classifier interface {
	Classify(html string) PageKind
}

// PartExtractor extracts part records from a rendered page. Extraction is
// best-effort per field: a failing field yields an absent value, never an
// aborted record, and a record is kept only if it is identified.
type PartExtractor interface {
	// ExtractParts parses the page and returns the part records it could
	// recover. The baseURL is used to resolve relative links. A page with
	// no recognizable structure yields an empty slice, not an error.
	ExtractParts(html string, baseURL string) ([]Part, error)
}

// DetailParser extracts deep structured content from a single part's
// rendered page. Each method is independent: a total failure in one
// section never prevents another section from being parsed.
type DetailParser interface {
	// ParseBase fills the detail's name, part number, price, rating, and
	// review count from the page.
	ParseBase(html string, detail *PartDetail)

	// ParseReviews returns the customer reviews visible in the page.
	ParseReviews(html string) []Review

	// ParseRepairStories returns the repair stories visible in the page.
	ParseRepairStories(html string) []RepairStory

	// ParseVideos returns the installation videos visible in the page.
	ParseVideos(html string) []Video

	// ParseTroubleshooting fills the detail's symptoms-fixed, works-with,
	// and also-replaces fields from the page.
	ParseTroubleshooting(html string, detail *PartDetail)
}
