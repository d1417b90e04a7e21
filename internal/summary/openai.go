package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/gauthierbraillon/newsagg/internal/article"
)

const (
	defaultModel       = openai.GPT3Dot5Turbo
	defaultMaxArticles = 20
	defaultAITimeout   = 30 * time.Second
	maxSummaryChars    = 400
)

const systemPrompt = `You are a news editor. Write a concise digest of the articles you are given.
Start with one sentence stating how many articles there are, then group the most important
stories by topic in short bullet points. Do not invent facts that are not in the input.`

// OpenAIOption configures the OpenAI summarizer.
type OpenAIOption func(*OpenAI)

// WithModel sets the chat model.
func WithModel(model string) OpenAIOption {
	return func(o *OpenAI) {
		if model != "" {
			o.model = model
		}
	}
}

// WithBaseURL points the client at a compatible API (useful for testing).
func WithBaseURL(url string) OpenAIOption {
	return func(o *OpenAI) {
		o.baseURL = url
	}
}

// WithMaxArticles caps how many articles are sent to the model.
func WithMaxArticles(n int) OpenAIOption {
	return func(o *OpenAI) {
		if n > 0 {
			o.maxArticles = n
		}
	}
}

// OpenAI summarizes articles with a chat completion model.
type OpenAI struct {
	client      *openai.Client
	baseURL     string
	model       string
	maxArticles int
}

// NewOpenAI creates an OpenAI-backed Summarizer.
func NewOpenAI(apiKey string, opts ...OpenAIOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI summarizer requires an API key (set OPENAI_API_KEY)")
	}
	o := &OpenAI{
		model:       defaultModel,
		maxArticles: defaultMaxArticles,
	}
	for _, opt := range opts {
		opt(o)
	}

	cfg := openai.DefaultConfig(apiKey)
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	o.client = openai.NewClientWithConfig(cfg)
	return o, nil
}

// Summarize asks the model for a digest. An empty list is answered locally.
func (o *OpenAI) Summarize(ctx context.Context, articles []article.Article) (string, error) {
	if len(articles) == 0 {
		return EmptyMessage, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultAITimeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: o.prompt(articles)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("OpenAI API returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("OpenAI API returned an empty digest")
	}
	return text, nil
}

func (o *OpenAI) prompt(articles []article.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "There are %d articles in total. ", len(articles))
	listed := articles
	if len(listed) > o.maxArticles {
		listed = listed[:o.maxArticles]
		fmt.Fprintf(&b, "The first %d follow.", o.maxArticles)
	}
	b.WriteString("\n\n")
	for i, a := range listed {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, a.Title, a.Source)
		if a.Summary != "" {
			fmt.Fprintf(&b, "   %s\n", truncate(a.Summary, maxSummaryChars))
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
