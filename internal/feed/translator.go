package feed

import (
	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
	"github.com/mmcdole/gofeed/rss"
)

// newParser returns a parser whose items carry only the publication date the
// document states for them. gofeed's default translators fill Published from
// <updated> (Atom) or dc:date (RSS) when it is missing.
//
// A gofeed.Parser sets its translators lazily on first use, so it must not be
// shared between goroutines.
func newParser() *gofeed.Parser {
	p := gofeed.NewParser()
	p.AtomTranslator = &atomPublishedTranslator{}
	p.RSSTranslator = &rssPublishedTranslator{}
	return p
}

type atomPublishedTranslator struct {
	gofeed.DefaultAtomTranslator
}

func (t *atomPublishedTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	out, err := t.DefaultAtomTranslator.Translate(feed)
	if err != nil {
		return nil, err
	}
	af, ok := feed.(*atom.Feed)
	if !ok || len(af.Entries) != len(out.Items) {
		return out, nil
	}
	for i, entry := range af.Entries {
		setPublished(out.Items[i], entry.Published)
	}
	return out, nil
}

type rssPublishedTranslator struct {
	gofeed.DefaultRSSTranslator
}

func (t *rssPublishedTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	out, err := t.DefaultRSSTranslator.Translate(feed)
	if err != nil {
		return nil, err
	}
	rf, ok := feed.(*rss.Feed)
	if !ok || len(rf.Items) != len(out.Items) {
		return out, nil
	}
	for i, item := range rf.Items {
		setPublished(out.Items[i], item.PubDate)
	}
	return out, nil
}

func setPublished(item *gofeed.Item, published string) {
	if item == nil || item.Published == published {
		return
	}
	item.Published = published
	item.PublishedParsed = nil
}
