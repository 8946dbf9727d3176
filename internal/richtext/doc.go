// Package richtext models the content API's structured rich-text document as a
// closed set of node types and renders it to HTML.
//
// A Document is decoded once from the wire format (see Decode) and then only
// read. Rendering never fails: missing link targets, dangling media references,
// and node types this package does not know degrade to safe output instead of
// errors.
package richtext
