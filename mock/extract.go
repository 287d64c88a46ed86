package mock

import (
	"github.com/fwojciec/partscat"
)

var _ partscat.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of partscat.Classifier.
type Classifier struct {
	ClassifyFn func(html string) partscat.PageKind
}

func (c *Classifier) Classify(html string) partscat.PageKind {
	return c.ClassifyFn(html)
}

var _ partscat.PartExtractor = (*PartExtractor)(nil)

// PartExtractor is a mock implementation of partscat.PartExtractor.
type PartExtractor struct {
	ExtractPartsFn func(html, baseURL string) ([]partscat.Part, error)
}

func (e *PartExtractor) ExtractParts(html, baseURL string) ([]partscat.Part, error) {
	return e.ExtractPartsFn(html, baseURL)
}

var _ partscat.DetailParser = (*DetailParser)(nil)

// DetailParser is a mock implementation of partscat.DetailParser.
type DetailParser struct {
	ParseBaseFn            func(html string, detail *partscat.PartDetail)
	ParseReviewsFn         func(html string) []partscat.Review
	ParseRepairStoriesFn   func(html string) []partscat.RepairStory
	ParseVideosFn          func(html string) []partscat.Video
	ParseTroubleshootingFn func(html string, detail *partscat.PartDetail)
}

func (p *DetailParser) ParseBase(html string, detail *partscat.PartDetail) {
	p.ParseBaseFn(html, detail)
}

func (p *DetailParser) ParseReviews(html string) []partscat.Review {
	return p.ParseReviewsFn(html)
}

func (p *DetailParser) ParseRepairStories(html string) []partscat.RepairStory {
	return p.ParseRepairStoriesFn(html)
}

func (p *DetailParser) ParseVideos(html string) []partscat.Video {
	return p.ParseVideosFn(html)
}

func (p *DetailParser) ParseTroubleshooting(html string, detail *partscat.PartDetail) {
	p.ParseTroubleshootingFn(html, detail)
}
