// Package aggregator turns a list of feed sources into one ordered list of articles.
//
// This package enables newsagg to:
// - Fetch many feeds concurrently while keeping source order in the output
// - Contain a failing feed so it only costs its own articles
// - Hand back articles already annotated with their source domain
package aggregator

import (
	"context"

	"github.com/mmcdole/gofeed"
)

// Fetcher retrieves and parses one feed source.
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) (*gofeed.Feed, error)
}

const defaultConcurrency = 4
