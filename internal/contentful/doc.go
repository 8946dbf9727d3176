// Package contentful fetches news entries and their linked assets from the
// Contentful Content Delivery API.
//
// A Client tries each configured environment in order and returns the first
// payload served with HTTP 200. Authorization failures stop the search;
// every other failure moves on to the next environment.
package contentful
