package article

import (
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"
)

// Normalize maps a parsed feed entry onto an Article. Fields the entry does
// not carry become empty strings; a nil entry yields an empty Article.
// Source is left for Annotate.
func Normalize(item *gofeed.Item) Article {
	if item == nil {
		return Article{}
	}
	return Article{
		Title:     item.Title,
		Link:      item.Link,
		Summary:   item.Description,
		Published: item.Published,
	}
}

// NormalizeAll maps every entry of a parsed feed, in feed order.
func NormalizeAll(feed *gofeed.Feed) []Article {
	if feed == nil {
		return []Article{}
	}
	articles := make([]Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		articles = append(articles, Normalize(item))
	}
	return articles
}

// SourceFromLink returns the host of link with a single leading "www."
// removed, or UnknownSource when the link is empty, unparseable or hostless.
func SourceFromLink(link string) string {
	if link == "" {
		return UnknownSource
	}
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return UnknownSource
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// Annotate sets Source on every article from its Link.
func Annotate(articles []Article) {
	for i := range articles {
		articles[i].Source = SourceFromLink(articles[i].Link)
	}
}
