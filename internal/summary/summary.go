// Package summary turns a list of articles into a short digest.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/gauthierbraillon/newsagg/internal/article"
)

// EmptyMessage is the digest for an empty article list.
const EmptyMessage = "No articles to summarize."

// maxListed is the number of titles listed in a composed digest.
const maxListed = 5

// Summarizer produces a digest of articles.
type Summarizer interface {
	Summarize(ctx context.Context, articles []article.Article) (string, error)
}

// Compose builds the deterministic digest: a count header followed by the
// numbered titles of the first five articles.
func Compose(articles []article.Article) string {
	if len(articles) == 0 {
		return EmptyMessage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d articles.\n\n", len(articles))
	for i, a := range articles {
		if i == maxListed {
			break
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, a.Title)
	}
	return b.String()
}

// Placeholder is the default Summarizer. It never performs I/O.
type Placeholder struct{}

// Summarize returns Compose(articles).
func (Placeholder) Summarize(_ context.Context, articles []article.Article) (string, error) {
	return Compose(articles), nil
}
