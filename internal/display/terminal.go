// Package display provides terminal output formatting for newsagg.
package display

import (
	"fmt"
	"html"
	"strings"

	"github.com/fatih/color"
	"github.com/microcosm-cc/bluemonday"

	"github.com/gauthierbraillon/newsagg/internal/article"
)

const (
	separator         = " • "
	defaultSummaryLen = 200
)

// TerminalFormatter formats articles for terminal display.
type TerminalFormatter struct {
	policy     *bluemonday.Policy
	sourceTag  *color.Color
	summaryLen int
}

// NewTerminalFormatter creates a new terminal formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{
		policy:     bluemonday.StrictPolicy(),
		sourceTag:  color.New(color.FgCyan, color.Bold),
		summaryLen: defaultSummaryLen,
	}
}

// FormatArticle formats a single article for display.
func (f *TerminalFormatter) FormatArticle(a article.Article) string {
	var lines []string

	// Header: [SOURCE] Title
	header := fmt.Sprintf("%s %s", f.sourceTag.Sprintf("[%s]", a.Source), a.Title)
	lines = append(lines, header)

	if a.Published != "" {
		lines = append(lines, "  "+a.Published)
	}

	if summary := f.PlainText(a.Summary); summary != "" {
		lines = append(lines, "  "+f.TruncateText(summary, f.summaryLen))
	}

	if a.Link != "" {
		lines = append(lines, "  "+a.Link)
	}

	return strings.Join(lines, "\n") + "\n"
}

// FormatArticles formats multiple articles for display.
func (f *TerminalFormatter) FormatArticles(articles []article.Article) string {
	if len(articles) == 0 {
		return "No articles to display.\n"
	}

	var formatted []string
	for _, a := range articles {
		formatted = append(formatted, f.FormatArticle(a))
	}

	return strings.Join(formatted, "\n---\n\n")
}

// FormatStats formats the one-line outcome of a fetch run.
func (f *TerminalFormatter) FormatStats(feeds, articles int) string {
	return fmt.Sprintf("%s%s%s\n", pluralize(feeds, "feed"), separator, pluralize(articles, "article"))
}

// PlainText strips markup from feed HTML and collapses whitespace.
func (f *TerminalFormatter) PlainText(s string) string {
	stripped := html.UnescapeString(f.policy.Sanitize(s))
	return strings.Join(strings.Fields(stripped), " ")
}

// pluralize returns "N unit" or "N units" based on count.
func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// TruncateText truncates text to maxLen runes, adding "..." if truncated.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(runes[:maxLen-3]) + "..."
}
