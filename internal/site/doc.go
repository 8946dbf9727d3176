// Package site assembles the news listing and the per-article pages.
//
// The listing is an existing HTML file owned by the rest of the site. Only
// the region between two marker comments is rewritten; everything else,
// including the header and footer landmarks that article pages borrow, is
// left as the site author wrote it.
package site
