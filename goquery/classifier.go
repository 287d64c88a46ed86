package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/partscat"
)

var _ partscat.Classifier = (*Classifier)(nil)

// Classifier determines whether a rendered page is a paginated model
// listing or a flat parts page. The two require different extraction
// strategies.
type Classifier struct{}

// NewClassifier creates a new Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns PageDetail when the page contains at least one part
// card, PageListing otherwise. Unparseable or empty pages are listings,
// never errors.
func (c *Classifier) Classify(html string) partscat.PageKind {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return partscat.PageListing
	}
	if doc.Find(".nf__part").Length() > 0 {
		return partscat.PageDetail
	}
	return partscat.PageListing
}
