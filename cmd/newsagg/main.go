// Package main provides the newsagg CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/newsagg/internal/aggregator"
	"github.com/gauthierbraillon/newsagg/internal/article"
	"github.com/gauthierbraillon/newsagg/internal/config"
	"github.com/gauthierbraillon/newsagg/internal/display"
	"github.com/gauthierbraillon/newsagg/internal/feed"
	"github.com/gauthierbraillon/newsagg/internal/metrics"
	"github.com/gauthierbraillon/newsagg/internal/server"
	"github.com/gauthierbraillon/newsagg/internal/summary"
)

var logLevel = new(slog.LevelVar)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	envFile string
	debug   bool
	cfg     config.Config
}

// newRootCmd creates the root command for newsagg CLI.
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "newsagg",
		Short:   "Aggregate and summarize RSS/Atom news feeds",
		Long:    "Newsagg fetches RSS and Atom feeds, normalizes their entries into articles and summarizes them.",
		Version: resolveVersion(version, readBuildInfo()),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.envFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logLevel.Set(cfg.LogLevel)
			if a.debug {
				logLevel.Set(slog.LevelDebug)
			}
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.SetVersionTemplate("newsagg version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Path to a .env file (default \".env\")")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newFetchCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

// newFetchCmd creates the fetch subcommand.
func newFetchCmd(a *app) *cobra.Command {
	var feedsFile string
	var showArticles bool
	var asJSON bool
	var summarizerName string

	cmd := &cobra.Command{
		Use:   "fetch [feed-url...]",
		Short: "Fetch feeds once and print a summary",
		Long: "Fetch the given feeds (or those listed in --feeds-file, or the built-in defaults), " +
			"normalize their entries and print a news summary.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sources, err := resolveSources(args, feedsFile)
			if err != nil {
				return err
			}

			if summarizerName == "" {
				summarizerName = a.cfg.Summarizer
			}
			summarizerName = strings.ToLower(summarizerName)
			if summarizerName != config.SummarizerPlaceholder && summarizerName != config.SummarizerOpenAI {
				return fmt.Errorf("invalid summarizer %q: must be '%s' or '%s'",
					summarizerName, config.SummarizerPlaceholder, config.SummarizerOpenAI)
			}

			logger := newLogger(cmd.ErrOrStderr(), false)
			ingestor := newIngestor(a.cfg, logger, nil)
			out := cmd.OutOrStdout()

			if asJSON {
				articles, err := ingestor.Ingest(ctx, sources)
				if err != nil {
					return fmt.Errorf("fetch failed: %w", err)
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(articles)
			}

			fmt.Fprintf(out, "Scraping %d feeds...\n", len(sources))
			articles, err := ingestor.Ingest(ctx, sources)
			if err != nil {
				return fmt.Errorf("fetch failed: %w", err)
			}
			fmt.Fprintf(out, "Collected %d articles.\n", len(articles))

			formatter := display.NewTerminalFormatter()
			if showArticles {
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.FormatArticles(articles))
			}

			fmt.Fprintln(out, "Summarizing news...")
			digest := summarize(ctx, newSummarizer(summarizerName, a.cfg, logger), articles, logger)

			fmt.Fprint(out, "\n=== News Summary ===\n\n")
			fmt.Fprintln(out, digest)
			fmt.Fprint(out, formatter.FormatStats(len(sources), len(articles)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&feedsFile, "feeds-file", "f", "", "YAML file listing feed URLs")
	cmd.Flags().BoolVarP(&showArticles, "articles", "a", false, "Print every article before the summary")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print articles as JSON instead of a summary")
	cmd.Flags().StringVarP(&summarizerName, "summarizer", "s", "", "Summarizer to use (placeholder, openai)")

	return cmd
}

// newServeCmd creates the serve subcommand.
func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the feed API over HTTP",
		Long:  "Start an HTTP server exposing POST /api/fetch, GET /api/health and GET /metrics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if !cmd.Flags().Changed("port") {
				port = a.cfg.Port
			}
			if port <= 0 || port > 65535 {
				return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
			}

			logger := newLogger(cmd.ErrOrStderr(), true)
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			ingestor := newIngestor(a.cfg, logger, metrics.New(reg))

			srv := server.New(ingestor, server.Options{
				Version:     resolveVersion(version, readBuildInfo()),
				CORSOrigins: a.cfg.CORSOrigins,
				Logger:      logger,
				Gatherer:    reg,
			})

			fmt.Fprintf(cmd.OutOrStdout(), "Server running on http://localhost:%d\n", port)
			return srv.ListenAndServe(ctx, ":"+strconv.Itoa(port))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8000, "Port to listen on (default from PORT)")

	return cmd
}

// newConfigCmd creates the config subcommand.
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration",
		Long:  "Print the configuration newsagg resolved from the environment and .env file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg := a.cfg
			fmt.Fprintf(out, "Port:            %d\n", cfg.Port)
			fmt.Fprintf(out, "CORS origins:    %s\n", strings.Join(cfg.CORSOrigins, ", "))
			fmt.Fprintf(out, "Fetch timeout:   %s\n", cfg.FetchTimeout)
			fmt.Fprintf(out, "Concurrency:     %d\n", cfg.Concurrency)
			fmt.Fprintf(out, "Host interval:   %s\n", cfg.HostInterval)
			fmt.Fprintf(out, "Log level:       %s\n", cfg.LogLevel)
			fmt.Fprintf(out, "Summarizer:      %s\n", cfg.Summarizer)
			fmt.Fprintf(out, "OpenAI API key:  %s\n", cfg.Redacted())
			fmt.Fprintf(out, "Default feeds:   %s\n", strings.Join(config.DefaultFeeds, ", "))
			return nil
		},
	}

	return cmd
}

// resolveSources picks feed URLs from args, then the feed list file, then defaults.
func resolveSources(args []string, feedsFile string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if feedsFile != "" {
		return config.LoadFeeds(feedsFile)
	}
	return config.DefaultFeeds, nil
}

func newLogger(w io.Writer, asJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevel}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func newIngestor(cfg config.Config, logger *slog.Logger, m *metrics.Collector) *aggregator.Ingestor {
	client := feed.NewClient(
		feed.WithTimeout(cfg.FetchTimeout),
		feed.WithUserAgent(cfg.UserAgent),
		feed.WithHostInterval(cfg.HostInterval),
	)
	return aggregator.New(client,
		aggregator.WithConcurrency(cfg.Concurrency),
		aggregator.WithLogger(logger),
		aggregator.WithMetrics(m),
	)
}

// newSummarizer returns the named summarizer, falling back to the
// placeholder when the language model cannot be configured.
func newSummarizer(name string, cfg config.Config, logger *slog.Logger) summary.Summarizer {
	if name != config.SummarizerOpenAI {
		return summary.Placeholder{}
	}
	s, err := summary.NewOpenAI(cfg.OpenAIAPIKey,
		summary.WithModel(cfg.OpenAIModel),
		summary.WithBaseURL(cfg.OpenAIBaseURL),
	)
	if err != nil {
		logger.Warn("openai summarizer unavailable, using placeholder", "error", err)
		return summary.Placeholder{}
	}
	return s
}

// summarize never fails: a summarizer error degrades to the composed digest.
func summarize(ctx context.Context, s summary.Summarizer, articles []article.Article, logger *slog.Logger) string {
	digest, err := s.Summarize(ctx, articles)
	if err != nil {
		logger.Warn("summarizer failed, using placeholder", "error", err)
		return summary.Compose(articles)
	}
	return digest
}
