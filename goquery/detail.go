package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/partscat"
)

var _ partscat.DetailParser = (*DetailPageParser)(nil)

// DetailPageParser extracts deep structured content from a single part's
// rendered page: base fields, reviews, repair stories, videos, and
// troubleshooting cross-references. Sections are parsed independently so
// a failure in one never prevents another from being attempted.
type DetailPageParser struct{}

// NewDetailPageParser creates a new DetailPageParser.
func NewDetailPageParser() *DetailPageParser {
	return &DetailPageParser{}
}

// ParseBase fills the detail's top-level fields from the page.
func (p *DetailPageParser) ParseBase(pageHTML string, detail *partscat.PartDetail) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return
	}
	root := doc.Selection

	if name, ok := Text("h1.title-lg")(root); ok {
		detail.Name = name
	}
	if mpn, ok := Chain(root,
		Text("div.mb-2 span[itemprop='mpn']"),
		Text("span[itemprop='mpn']"),
	); ok {
		detail.PartNumber = mpn
	}
	if price, ok := Text("span.price.pd__price")(root); ok {
		detail.Price = price
	}
	if style, ok := Attr("div.rating__stars__upper", "style")(root); ok {
		if rating, ok := ratingFromStyle(style); ok {
			detail.Rating = rating
		}
	}
	if count := root.Find("span.rating__count").First().Text(); strings.Contains(count, "Review") {
		if n, ok := firstInt(count); ok {
			detail.ReviewsCount = n
		}
	}
}

// ParseReviews returns the customer reviews visible in the page. Every
// review field defaults to a sentinel on failure; a review is never
// dropped because one field is missing.
func (p *DetailPageParser) ParseReviews(pageHTML string) []partscat.Review {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}

	var reviews []partscat.Review
	doc.Find(".pd__cust-review__submitted-review").Each(func(_ int, s *goquery.Selection) {
		review := partscat.Review{
			Rating:   "N/A",
			Reviewer: "Unknown",
			Date:     "Unknown",
		}

		if style, ok := Attr(".rating__stars__upper", "style")(s); ok {
			if rating, ok := ratingFromStyle(style); ok {
				review.Rating = rating
			}
		}

		header := strings.TrimSpace(s.Find(".pd__cust-review__submitted-review__header").First().Text())
		if name, date, found := strings.Cut(header, " - "); found {
			review.Reviewer = strings.TrimSpace(name)
			review.Date = strings.TrimSpace(date)
		}

		if title, ok := Text(".bold")(s); ok {
			review.Title = title
		}
		if content, ok := Text(".js-searchKeys")(s); ok {
			review.Content = content
		}

		reviews = append(reviews, review)
	})

	return reviews
}

// ParseRepairStories returns the repair stories visible in the page.
func (p *DetailPageParser) ParseRepairStories(pageHTML string) []partscat.RepairStory {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}

	var stories []partscat.RepairStory
	doc.Find(".repair-story").Each(func(_ int, s *goquery.Selection) {
		story := partscat.RepairStory{
			Author:      "Unknown",
			Difficulty:  "Unknown",
			RepairTime:  "Unknown",
			Helpfulness: "N/A",
		}

		if title, ok := Text(".repair-story__title")(s); ok {
			story.Title = title
		}
		if instructions, ok := Text(".repair-story__instruction .js-searchKeys")(s); ok {
			story.Instructions = instructions
		}
		if author, ok := Text("ul.repair-story__details li:first-child div.bold")(s); ok {
			story.Author = author
		}

		if difficulty, ok := detailListValue(s, 2); ok {
			story.Difficulty = difficulty
		}
		if repairTime, ok := detailListValue(s, 3); ok {
			story.RepairTime = repairTime
		}

		rating := s.Find(".js-displayRating").First()
		found, foundOK := rating.Attr("data-found-helpful")
		total, totalOK := rating.Attr("data-vote-count")
		if foundOK && totalOK {
			story.Helpfulness = found + "/" + total
		}

		stories = append(stories, story)
	})

	return stories
}

// detailListValue extracts the value of the nth repair-story detail item
// (difficulty, repair time) by subtracting the bold label from the item
// text, falling back to the item's second inner block.
func detailListValue(story *goquery.Selection, n int) (string, bool) {
	item := story.Find("ul.repair-story__details li").Eq(n - 1)
	if item.Length() == 0 {
		return "", false
	}

	label := item.Find("div.bold").First().Text()
	value := strings.TrimSpace(strings.Replace(item.Text(), label, "", 1))
	if value != "" {
		return strings.Join(strings.Fields(value), " "), true
	}

	value = strings.TrimSpace(item.Find("div div").Eq(1).Text())
	return value, value != ""
}

// ParseVideos returns the installation videos visible in the page.
// Video and thumbnail URLs are derived from the embedded YouTube id.
func (p *DetailPageParser) ParseVideos(pageHTML string) []partscat.Video {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}

	var videos []partscat.Video
	doc.Find(".yt-video[data-yt-init]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("data-yt-init")
		id = strings.TrimSpace(id)

		title, _ := Chain(s,
			Attr("img", "title"),
			Attr("img", "alt"),
		)

		if id == "" && title == "" {
			return
		}
		videos = append(videos, partscat.NewVideo(title, id))
	})

	return videos
}

// Troubleshooting section headings.
const (
	symptomsHeading  = "fixes the following symptoms"
	worksWithHeading = "works with the following products"
	replacesHeading  = "replaces these"
)

// ParseTroubleshooting fills the detail's symptoms-fixed, works-with, and
// also-replaces fields. Each is resolved through a three-tier chain of
// increasingly generic structural queries before being abandoned.
func (p *DetailPageParser) ParseTroubleshooting(pageHTML string, detail *partscat.PartDetail) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return
	}

	if v, ok := headingValue(doc, symptomsHeading); ok {
		detail.SymptomsFixed = v
	}
	if v, ok := headingValue(doc, worksWithHeading); ok {
		detail.WorksWith = v
	}
	if v, ok := headingValue(doc, replacesHeading); ok {
		var ids []string
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		detail.AlsoReplaces = ids
	}
}

// headingValue locates the text content that follows a bold section
// heading. Tiers: the heading's sibling block inside the troubleshooting
// container, the heading's parent text minus the heading itself, and
// finally the same search anywhere in the page.
func headingValue(doc *goquery.Document, heading string) (string, bool) {
	tiers := []string{
		"#Troubleshooting .bold",
		".pd__wrap .bold",
		".bold",
	}
	for _, tier := range tiers {
		var value string
		doc.Find(tier).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if !strings.Contains(strings.ToLower(s.Text()), heading) {
				return true
			}
			if v := strings.TrimSpace(s.NextAll().Text()); v != "" {
				value = strings.Join(strings.Fields(v), " ")
				return false
			}
			parent := s.Parent().Text()
			if v := strings.TrimSpace(strings.Replace(parent, s.Text(), "", 1)); v != "" {
				value = strings.Join(strings.Fields(v), " ")
				return false
			}
			return true
		})
		if value != "" {
			return value, true
		}
	}
	return "", false
}
