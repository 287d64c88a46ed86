// Package partscat provides a scraper and query layer for an appliance
// parts catalog site. It drives a real browser session across paginated
// listing and detail pages, extracts structured part records with
// per-field fallback strategies, and persists the resulting catalogs to
// files and a document store for downstream conversational search.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/).
package partscat
