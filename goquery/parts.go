package goquery

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/partscat"
	"golang.org/x/net/html"
)

var _ partscat.PartExtractor = (*PartsExtractor)(nil)

// PartsExtractor extracts part records from rendered catalog pages.
// Detail pages are walked card by card with per-field fallback chains;
// listing pages use a single stable anchor structure.
type PartsExtractor struct{}

// NewPartsExtractor creates a new PartsExtractor.
func NewPartsExtractor() *PartsExtractor {
	return &PartsExtractor{}
}

// descriptionMarkers are trailing-section headings that terminate the
// free-text description of a part card.
var descriptionMarkers = []string{
	"fixes these symptoms",
	"fixes the following symptoms",
	"installation instructions",
	"how buying oem parts",
}

// ExtractParts parses the page and returns every identified part record.
// A page with neither part cards nor a listing container yields an empty
// slice.
func (e *PartsExtractor) ExtractParts(pageHTML string, baseURL string) ([]partscat.Part, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, partscat.Errorf(partscat.EINVALID, "failed to parse page: %v", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, partscat.Errorf(partscat.EINVALID, "invalid base URL: %v", err)
	}

	if cards := doc.Find(".nf__part"); cards.Length() > 0 {
		return e.extractCards(cards, base), nil
	}
	return e.extractListing(doc, base), nil
}

// extractCards extracts one record per part card. Every field is
// attempted independently; a failing field is absent, never fatal.
func (e *PartsExtractor) extractCards(cards *goquery.Selection, base *url.URL) []partscat.Part {
	var parts []partscat.Part

	cards.Each(func(_ int, card *goquery.Selection) {
		var p partscat.Part

		if href, ok := Attr(".nf__part__left-col__img a", "href")(card); ok {
			p.URL = partscat.String(resolveURL(base, href))
		}

		if img, ok := Chain(card,
			SrcsetEntry(".nf__part__left-col__img picture source[type='image/webp']", "data-srcset"),
			SrcsetEntry(".nf__part__left-col__img picture source[type='image/webp']", "srcset"),
			SrcsetEntry(".nf__part__left-col__img picture source[type='image/jpeg']", "data-srcset"),
			SrcsetEntry(".nf__part__left-col__img picture source[type='image/jpeg']", "srcset"),
			imageAttr(".nf__part__left-col__img img", "data-src"),
			imageAttr(".nf__part__left-col__img img", "src"),
		); ok {
			p.ImageURL = partscat.String(resolveURL(base, img))
		}

		if name, ok := Chain(card,
			Text(".nf__part__detail__title span"),
			Text(".nf__part__detail__title"),
		); ok {
			p.Name = partscat.String(name)
		}

		if ps, ok := labeledStrong(card, "PartSelect Number"); ok {
			p.PartSelectNumber = partscat.String(ps)
		}
		if mfr, ok := labeledStrong(card, "Manufacturer Part Number"); ok {
			p.ManufacturerNumber = partscat.String(mfr)
		}

		if desc, ok := description(card); ok {
			p.Description = partscat.String(desc)
		}

		if price, ok := Chain(card, priceWithCurrency, Text(".price")); ok {
			p.Price = partscat.String(price)
		}

		if stock, ok := Text(".nf__part__left-col__basic-info__stock span")(card); ok {
			p.StockStatus = partscat.String(stock)
		}

		if alt, ok := Attr(".nf__part__detail__rating", "alt")(card); ok && strings.Contains(alt, "out of 5") {
			if rating, ok := ratingFromAlt(alt); ok {
				p.Rating = partscat.String(rating)
			}
			if n, ok := firstInt(card.Find(".rating__count").First().Text()); ok {
				p.ReviewsCount = partscat.Int(n)
			}
		}

		if p.Identified() {
			parts = append(parts, p)
		}
	})

	return parts
}

// extractListing extracts model links from the nf__links container.
// A page without the container yields no records.
func (e *PartsExtractor) extractListing(doc *goquery.Document, base *url.URL) []partscat.Part {
	var parts []partscat.Part

	doc.Find("ul.nf__links li a").Each(func(_ int, a *goquery.Selection) {
		var p partscat.Part

		if title, ok := a.Attr("title"); ok && strings.TrimSpace(title) != "" {
			p.Name = partscat.String(strings.TrimSpace(title))
		}
		if href, ok := a.Attr("href"); ok && href != "" {
			p.URL = partscat.String(resolveURL(base, href))
		}
		if text := strings.TrimSpace(a.Text()); text != "" {
			p.Description = partscat.String(text)
		}

		if p.Identified() {
			parts = append(parts, p)
		}
	})

	return parts
}

// imageAttr is Attr restricted to real image URLs (data: URIs rejected).
func imageAttr(selector, attr string) Strategy {
	inner := Attr(selector, attr)
	return func(s *goquery.Selection) (string, bool) {
		v, ok := inner(s)
		if !ok || strings.HasPrefix(v, "data:") {
			return "", false
		}
		return v, true
	}
}

// labeledStrong finds the strong value of a part-number row whose label
// text contains the given label, first within the dedicated part-number
// rows, then anywhere in the card. The label must sit in the row's own
// text nodes: a container whose label only appears inside a child row
// would otherwise match first and yield the wrong row's value.
func labeledStrong(card *goquery.Selection, label string) (string, bool) {
	for _, selector := range []string{".nf__part__detail__part-number", "div"} {
		var found string
		card.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if !strings.Contains(directText(s), label) {
				return true
			}
			if v := strings.TrimSpace(s.Find("strong").First().Text()); v != "" {
				found = v
				return false
			}
			return true
		})
		if found != "" {
			return found, true
		}
	}
	return "", false
}

// priceWithCurrency joins the currency glyph with the numeric remainder
// of the price element, preserving the vendor's formatting.
func priceWithCurrency(s *goquery.Selection) (string, bool) {
	price := s.Find(".price").First()
	if price.Length() == 0 {
		return "", false
	}
	currency := strings.TrimSpace(price.Find(".price__currency").First().Text())
	if currency == "" {
		return "", false
	}
	rest := strings.TrimSpace(strings.Replace(price.Text(), currency, "", 1))
	if rest == "" {
		return "", false
	}
	return currency + rest, true
}

// description derives the free-text description of a card: the text nodes
// that sit directly inside the detail container (excluding child-element
// text), truncated at known trailing-section markers.
func description(card *goquery.Selection) (string, bool) {
	detail := card.Find(".nf__part__detail").First()
	if detail.Length() == 0 {
		return "", false
	}

	text := strings.TrimSpace(directText(detail))
	if text == "" {
		return "", false
	}

	lower := strings.ToLower(text)
	cut := len(text)
	for _, marker := range descriptionMarkers {
		if i := strings.Index(lower, marker); i >= 0 && i < cut {
			cut = i
		}
	}

	text = strings.TrimSpace(text[:cut])
	return text, text != ""
}

// directText concatenates the text nodes that are immediate children of
// the selection, skipping element children entirely.
func directText(s *goquery.Selection) string {
	var b strings.Builder
	for _, node := range s.Nodes {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.TextNode {
				b.WriteString(child.Data)
			}
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ratingFromAlt converts the card rating alt text ("4.5 out of 5") into
// the uniform "X.X/5" form.
func ratingFromAlt(alt string) (string, bool) {
	fields := strings.Fields(alt)
	if len(fields) == 0 {
		return "", false
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%.1f/5", v), true
}
