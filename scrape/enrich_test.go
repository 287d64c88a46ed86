package scrape_test

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/fwojciec/partscat"
	"github.com/fwojciec/partscat/mock"
	"github.com/fwojciec/partscat/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnricher_Enrich(t *testing.T) {
	t.Parallel()

	const partURL = "https://www.partselect.com/PS11752778-Door-Shelf-Bin.htm"

	t.Run("navigation failure yields an empty detail", func(t *testing.T) {
		t.Parallel()

		e := &scrape.Enricher{
			Details: &mock.DetailParser{},
			Logger:  slog.New(slog.DiscardHandler),
		}
		session := &mock.Session{
			NavigateFn: func(ctx context.Context, url string) error {
				return fmt.Errorf("net::ERR_TUNNEL_CONNECTION_FAILED")
			},
		}

		detail := e.Enrich(context.Background(), session, partURL)
		require.NotNil(t, detail)
		assert.Equal(t, &partscat.PartDetail{}, detail)
	})

	t.Run("parses every section independently", func(t *testing.T) {
		t.Parallel()

		var clicked []string
		session := &mock.Session{
			NavigateFn: func(ctx context.Context, url string) error { return nil },
			HTMLFn:     func(ctx context.Context) (string, error) { return "<html>detail</html>", nil },
			ClickFn: func(ctx context.Context, selector string) error {
				clicked = append(clicked, selector)
				return nil
			},
		}

		e := &scrape.Enricher{
			Details: &mock.DetailParser{
				ParseBaseFn: func(html string, detail *partscat.PartDetail) {
					detail.Name = "Refrigerator Door Shelf Bin"
					detail.PartNumber = "WPW10321304"
				},
				ParseReviewsFn: func(html string) []partscat.Review {
					return []partscat.Review{{Rating: "5.0/5", Reviewer: "John", Date: "March 3, 2024"}}
				},
				ParseRepairStoriesFn: func(html string) []partscat.RepairStory {
					return nil
				},
				ParseVideosFn: func(html string) []partscat.Video {
					return []partscat.Video{partscat.NewVideo("Replacing the bin", "abc123")}
				},
				ParseTroubleshootingFn: func(html string, detail *partscat.PartDetail) {
					detail.SymptomsFixed = "Door won't close"
				},
			},
			SectionWait: 1, // nanosecond; tests don't wait
			Logger:      slog.New(slog.DiscardHandler),
		}

		detail := e.Enrich(context.Background(), session, partURL)
		assert.Equal(t, "Refrigerator Door Shelf Bin", detail.Name)
		assert.Len(t, detail.Reviews, 1)
		assert.Empty(t, detail.RepairStories)
		assert.Len(t, detail.Videos, 1)
		assert.Equal(t, "Door won't close", detail.SymptomsFixed)

		// All four section anchors were attempted.
		require.Len(t, clicked, 4)
		for _, sel := range clicked {
			assert.True(t, strings.HasPrefix(sel, "a[href*='#"), "unexpected selector %q", sel)
		}
	})

	t.Run("missing section anchor falls back to the page in hand", func(t *testing.T) {
		t.Parallel()

		session := &mock.Session{
			NavigateFn: func(ctx context.Context, url string) error { return nil },
			HTMLFn:     func(ctx context.Context) (string, error) { return "<html>base</html>", nil },
			ClickFn: func(ctx context.Context, selector string) error {
				return partscat.Errorf(partscat.ENOTFOUND, "element %q not found", selector)
			},
		}

		var sawHTML []string
		e := &scrape.Enricher{
			Details: &mock.DetailParser{
				ParseBaseFn: func(html string, detail *partscat.PartDetail) {},
				ParseReviewsFn: func(html string) []partscat.Review {
					sawHTML = append(sawHTML, html)
					return nil
				},
				ParseRepairStoriesFn:   func(html string) []partscat.RepairStory { return nil },
				ParseVideosFn:          func(html string) []partscat.Video { return nil },
				ParseTroubleshootingFn: func(html string, detail *partscat.PartDetail) {},
			},
			SectionWait: 1,
			Logger:      slog.New(slog.DiscardHandler),
		}

		e.Enrich(context.Background(), session, partURL)
		require.Len(t, sawHTML, 1)
		assert.Equal(t, "<html>base</html>", sawHTML[0])
	})
}
