package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gauthierbraillon/newsagg/internal/article"
	"github.com/gauthierbraillon/newsagg/internal/metrics"
)

// Option configures the Ingestor.
type Option func(*Ingestor)

// WithConcurrency caps the number of feeds fetched at the same time.
func WithConcurrency(n int) Option {
	return func(i *Ingestor) {
		if n > 0 {
			i.concurrency = n
		}
	}
}

// WithLogger sets the logger used for per-feed failures and batch summaries.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Ingestor) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithMetrics records fetch and batch metrics.
func WithMetrics(m *metrics.Collector) Option {
	return func(i *Ingestor) {
		i.metrics = m
	}
}

// Ingestor fetches feed sources and normalizes their entries into articles.
type Ingestor struct {
	fetcher     Fetcher
	concurrency int
	logger      *slog.Logger
	metrics     *metrics.Collector
}

// New creates an Ingestor that retrieves feeds with fetcher.
func New(fetcher Fetcher, opts ...Option) *Ingestor {
	i := &Ingestor{
		fetcher:     fetcher,
		concurrency: defaultConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Ingest fetches every source and returns their articles, in source order
// and then entry order, each annotated with its source domain.
//
// A source that cannot be fetched or parsed contributes no articles and
// does not affect the others. The only error returned is for a context
// that is already done before any source is attempted.
func (i *Ingestor) Ingest(ctx context.Context, sources []string) ([]article.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ingestion not started: %w", err)
	}
	if len(sources) == 0 {
		return []article.Article{}, nil
	}

	perSource := make([][]article.Article, len(sources))
	failed := make([]bool, len(sources))

	var g errgroup.Group
	g.SetLimit(i.concurrency)
	for idx, source := range sources {
		g.Go(func() error {
			articles, err := i.ingestOne(ctx, source)
			if err != nil {
				failed[idx] = true
				i.logger.Warn("feed skipped", "url", source, "error", err)
				return nil
			}
			perSource[idx] = articles
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, articles := range perSource {
		total += len(articles)
	}
	result := make([]article.Article, 0, total)
	failures := 0
	for idx, articles := range perSource {
		if failed[idx] {
			failures++
		}
		result = append(result, articles...)
	}
	article.Annotate(result)

	i.metrics.ObserveBatch(len(sources), len(result))
	i.logger.Info("feed collection summary",
		"successful", len(sources)-failures,
		"failed", failures,
		"total", len(sources),
		"articles", len(result))

	return result, nil
}

// ingestOne is the containment boundary for a single source: errors and
// panics raised while fetching or normalizing it are returned as an error.
func (i *Ingestor) ingestOne(ctx context.Context, source string) (articles []article.Article, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			articles = nil
			err = fmt.Errorf("panic while ingesting feed: %v", r)
		}
		i.metrics.ObserveFetch(time.Since(start), err)
	}()

	feed, err := i.fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, err
	}
	return article.NormalizeAll(feed), nil
}
