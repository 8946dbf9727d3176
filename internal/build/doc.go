// Package build runs the news build as an ordered list of stages.
//
// A build fetches entries from the content API, indexes their assets, splices
// listing cards into the listing template, writes one page per article, and
// emits the sitemap and the RSS feed. Every stage reports a classified result
// (success, warning, fatal, canceled); the first fatal or canceled stage stops
// the run. The Report returned by Service.Run records per-stage durations and
// counts, artifacts written, and the derived outcome.
package build
