// Package feed provides a client for retrieving syndication feeds.
//
// This package enables newsagg to:
// - Fetch a feed over HTTP with a per-source timeout
// - Parse RSS, Atom and JSON Feed documents into one structure
// - Space out requests that target the same host
package feed
