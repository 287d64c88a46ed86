// Package goquery provides CSS-selector based page classification and
// field extraction for the parts catalog site.
//
// Field extraction is organized around ordered fallback chains: each field
// has a list of Strategy functions evaluated in order until one produces a
// value. A field whose whole chain fails is simply absent; extraction of
// one field never aborts the record or its siblings.
package goquery

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strategy attempts to extract one value from an element. It returns the
// value and true on success, or "" and false when the strategy does not
// apply to this element.
type Strategy func(s *goquery.Selection) (string, bool)

// Chain evaluates strategies in order and returns the first successful
// value. Returns "" and false when every strategy fails.
func Chain(s *goquery.Selection, strategies ...Strategy) (string, bool) {
	for _, strategy := range strategies {
		if v, ok := strategy(s); ok {
			return v, true
		}
	}
	return "", false
}

// Text returns a strategy that extracts the trimmed text of the first
// element matching the selector.
func Text(selector string) Strategy {
	return func(s *goquery.Selection) (string, bool) {
		v := strings.TrimSpace(s.Find(selector).First().Text())
		return v, v != ""
	}
}

// Attr returns a strategy that extracts a non-empty attribute from the
// first element matching the selector.
func Attr(selector, attr string) Strategy {
	return func(s *goquery.Selection) (string, bool) {
		v, ok := s.Find(selector).First().Attr(attr)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
}

// SrcsetEntry returns a strategy that extracts the first URL from a
// srcset-style attribute of the first element matching the selector.
// Entries that are data: URIs are rejected.
func SrcsetEntry(selector, attr string) Strategy {
	inner := Attr(selector, attr)
	return func(s *goquery.Selection) (string, bool) {
		v, ok := inner(s)
		if !ok {
			return "", false
		}
		first := firstSrcsetURL(v)
		if first == "" || strings.HasPrefix(first, "data:") {
			return "", false
		}
		return first, true
	}
}

var srcsetSplit = regexp.MustCompile(`[,\s]+`)

// firstSrcsetURL returns the first URL in a srcset value, which may carry
// trailing width/density descriptors.
func firstSrcsetURL(srcset string) string {
	fields := srcsetSplit.Split(strings.TrimSpace(srcset), -1)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimSpace(fields[0])
}

var widthRe = regexp.MustCompile(`width:\s*([\d.]+)%`)

// ratingFromStyle converts a CSS width-percentage style value into an
// "X.X/5" rating string. The site renders star ratings as an overlay
// whose width is the rating as a percentage of five stars.
func ratingFromStyle(style string) (string, bool) {
	m := widthRe.FindStringSubmatch(style)
	if m == nil {
		return "", false
	}
	percent, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%.1f/5", percent/20), true
}

var intRe = regexp.MustCompile(`(\d+)`)

// firstInt extracts the first integer found in free text.
func firstInt(s string) (int, bool) {
	m := intRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
