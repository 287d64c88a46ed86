package partscat

import "fmt"

// Part represents one sellable component extracted from a parts page.
//
// Every field other than identity is optional: extraction of a single
// field may fail without invalidating the record, and absent fields are
// omitted from serialized output. Pointer fields distinguish "absent"
// from a legitimately empty value.
type Part struct {
	Name               *string `json:"name,omitempty" bson:"name,omitempty"`
	URL                *string `json:"url,omitempty" bson:"url,omitempty"`
	ImageURL           *string `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Description        *string `json:"description,omitempty" bson:"description,omitempty"`
	PartSelectNumber   *string `json:"partselect_number,omitempty" bson:"partselect_number,omitempty"`
	ManufacturerNumber *string `json:"manufacturer_number,omitempty" bson:"manufacturer_number,omitempty"`
	Price              *string `json:"price,omitempty" bson:"price,omitempty"`
	StockStatus        *string `json:"stock_status,omitempty" bson:"stock_status,omitempty"`
	Rating             *string `json:"rating,omitempty" bson:"rating,omitempty"`
	ReviewsCount       *int    `json:"reviews_count,omitempty" bson:"reviews_count,omitempty"`

	// Details holds per-part enrichment fetched from the part's own page.
	// A later Flatten pass hoists these fields to the top level.
	Details *PartDetail `json:"details,omitempty" bson:"details,omitempty"`

	// Flattened detail fields. Populated by Catalog.Flatten, not by the
	// listing extractor.
	Reviews       []Review      `json:"reviews,omitempty" bson:"reviews,omitempty"`
	RepairStories []RepairStory `json:"repair_stories,omitempty" bson:"repair_stories,omitempty"`
	Videos        []Video       `json:"videos,omitempty" bson:"videos,omitempty"`
	SymptomsFixed *string       `json:"symptoms_fixed,omitempty" bson:"symptoms_fixed,omitempty"`
	WorksWith     *string       `json:"works_with,omitempty" bson:"works_with,omitempty"`
	AlsoReplaces  []string      `json:"also_replaces,omitempty" bson:"also_replaces,omitempty"`
}

// Identified reports whether the part carries enough identity to be kept.
// A part with neither a name nor a URL cannot be deduplicated or
// displayed and is discarded by extractors.
func (p *Part) Identified() bool {
	return p.Name != nil || p.URL != nil
}

// PartDetail holds deep structured content from a single part's page.
// Every field is best-effort; zero values mean the extraction was
// abandoned for that field.
type PartDetail struct {
	Name          string        `json:"name,omitempty" bson:"name,omitempty"`
	PartNumber    string        `json:"part_number,omitempty" bson:"part_number,omitempty"`
	Price         string        `json:"price,omitempty" bson:"price,omitempty"`
	Rating        string        `json:"rating,omitempty" bson:"rating,omitempty"`
	ReviewsCount  int           `json:"reviews_count,omitempty" bson:"reviews_count,omitempty"`
	Reviews       []Review      `json:"reviews,omitempty" bson:"reviews,omitempty"`
	RepairStories []RepairStory `json:"repair_stories,omitempty" bson:"repair_stories,omitempty"`
	Videos        []Video       `json:"videos,omitempty" bson:"videos,omitempty"`
	SymptomsFixed string        `json:"symptoms_fixed,omitempty" bson:"symptoms_fixed,omitempty"`
	WorksWith     string        `json:"works_with,omitempty" bson:"works_with,omitempty"`
	AlsoReplaces  []string      `json:"also_replaces,omitempty" bson:"also_replaces,omitempty"`
}

// Review represents one customer review. Individual field extraction
// failures resolve to sentinel values; a review is never dropped
// wholesale because one field is missing.
type Review struct {
	Rating   string `json:"rating" bson:"rating"`     // "X.X/5" or "N/A"
	Reviewer string `json:"reviewer" bson:"reviewer"` // "Unknown" if not found
	Date     string `json:"date" bson:"date"`         // "Unknown" if not found
	Title    string `json:"title" bson:"title"`
	Content  string `json:"content" bson:"content"`
}

// RepairStory represents one customer repair story.
type RepairStory struct {
	Title        string `json:"title" bson:"title"`
	Instructions string `json:"instructions" bson:"instructions"`
	Author       string `json:"author" bson:"author"`         // "Unknown" if not found
	Difficulty   string `json:"difficulty" bson:"difficulty"` // "Unknown" if not found
	RepairTime   string `json:"repair_time" bson:"repair_time"`
	Helpfulness  string `json:"helpfulness" bson:"helpfulness"` // "<found>/<total>" or "N/A"
}

// Video represents one installation video. VideoURL and ThumbnailURL are
// derived from the YouTube ID.
type Video struct {
	Title        string `json:"title,omitempty" bson:"title,omitempty"`
	YouTubeID    string `json:"youtube_id,omitempty" bson:"youtube_id,omitempty"`
	VideoURL     string `json:"video_url,omitempty" bson:"video_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty" bson:"thumbnail_url,omitempty"`
}

// NewVideo creates a Video with URLs derived from the YouTube ID.
func NewVideo(title, youtubeID string) Video {
	v := Video{Title: title, YouTubeID: youtubeID}
	if youtubeID != "" {
		v.VideoURL = fmt.Sprintf("https://www.youtube.com/watch?v=%s", youtubeID)
		v.ThumbnailURL = fmt.Sprintf("https://img.youtube.com/vi/%s/0.jpg", youtubeID)
	}
	return v
}

// String returns a pointer to s. Convenience for building Parts with
// optional fields.
func String(s string) *string { return &s }

// Int returns a pointer to i.
func Int(i int) *int { return &i }
