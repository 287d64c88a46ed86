package goquery

import "net/url"

// resolveURL resolves an href against a base URL. Unparseable hrefs are
// returned unchanged rather than dropped: a malformed URL still
// identifies the record it came from.
func resolveURL(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
