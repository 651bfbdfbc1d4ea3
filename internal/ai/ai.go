// Package ai implements the Claude fallback path: when structural feed
// fetching cannot fill the requested article count, we ask the model to
// retrieve and structure recent articles from a named outlet. The whole path
// is optional — no credential means no calls, silently.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/config"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/logger"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/news"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/observability"
)

const (
	defaultModel    = "claude-haiku-4-5-20251001"
	defaultEndpoint = "https://api.anthropic.com/v1/messages"
	callTimeout     = 25 * time.Second
	maxTokens       = 1024
)

const retrievePrompt = `You are a news research assistant for a disaster-relief site. List up to %d recent real news articles published by %s about %s.

Respond with ONLY a JSON array in exactly this shape, no prose before or after:
[{"title": "...", "description": "...", "url": "...", "publishedDate": "2006-01-02T15:04:05Z"}]

Use ISO-8601 timestamps. Keep descriptions under 200 characters. If you know of no matching articles, respond with [].`

const briefPrompt = `In one or two sentences (max 220 chars), summarize the current situation based on these %d news headlines about %s. Plain factual tone, no hype.

%s`

// Client talks to the Anthropic messages API.
type Client struct {
	apiKey   string
	model    string
	topic    string
	endpoint string
	client   *http.Client
	metrics  *observability.Metrics
	now      func() time.Time
}

func New(cfg *config.Config, metrics *observability.Metrics) *Client {
	model := defaultModel
	if cfg.AI != nil && cfg.AI.Model != "" {
		model = cfg.AI.Model
	}
	return &Client{
		apiKey:   cfg.AIKey(),
		model:    model,
		topic:    cfg.Topic(),
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: callTimeout},
		metrics:  metrics,
		now:      time.Now,
	}
}

// IsConfigured reports whether the client has a credential. Callers skip the
// path entirely when it does not.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// FetchArticles asks Claude for up to count recent articles from outlet.
// It never returns an error: missing credential, API failure, and a response
// with no parseable JSON array all come back as an empty list.
func (c *Client) FetchArticles(ctx context.Context, outlet string, count int) []news.Article {
	if !c.IsConfigured() {
		c.count("disabled")
		return nil
	}
	if count <= 0 {
		return nil
	}

	return news.WithTimeout(ctx, callTimeout, []news.Article(nil),
		func(ctx context.Context) ([]news.Article, error) {
			prompt := fmt.Sprintf(retrievePrompt, count, outlet, c.topic)
			text, err := c.call(ctx, prompt)
			if err != nil {
				c.count("error")
				logger.Warn("claude retrieval failed", "outlet", outlet, "error", err)
				return nil, nil
			}

			articles := c.parseArticles(text, outlet)
			if len(articles) == 0 {
				c.count("empty")
			} else {
				c.count("ok")
			}
			return articles, nil
		})
}

// Brief summarizes the given headlines into a one-line situation report.
func (c *Client) Brief(ctx context.Context, titles []string) (string, error) {
	if !c.IsConfigured() {
		return "", fmt.Errorf("AI not configured")
	}
	prompt := fmt.Sprintf(briefPrompt, len(titles), c.topic, strings.Join(titles, "\n"))
	text, err := c.call(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// llmArticle is the shape Claude is instructed to emit.
type llmArticle struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	URL           string `json:"url"`
	PublishedDate string `json:"publishedDate"`
}

// jsonArrayRe finds a JSON array inside free-form model output; the model
// may wrap the array in prose despite the prompt.
var jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)

// parseArticles extracts the JSON array from the response text and builds
// articles from it. Claude-sourced URLs are less trustworthy than feed URLs,
// so its output is deduplicated by lowercased title rather than URL.
func (c *Client) parseArticles(text, outlet string) []news.Article {
	raw := jsonArrayRe.FindString(text)
	if raw == "" {
		return nil
	}

	var items []llmArticle
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}

	now := c.now()
	seen := make(map[string]bool, len(items))
	var articles []news.Article
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		key := strings.ToLower(title)
		if seen[key] {
			continue
		}
		seen[key] = true

		pub, err := time.Parse(time.RFC3339, item.PublishedDate)
		if err != nil {
			pub = now
		}

		id := news.ArticleID(item.URL)
		if item.URL == "" {
			id = news.ArticleID(title)
		}

		articles = append(articles, news.Article{
			ID:          id,
			Title:       title,
			Description: strings.TrimSpace(item.Description),
			URL:         strings.TrimSpace(item.URL),
			Source:      outlet,
			Published:   pub,
			FetchMethod: news.MethodClaude,
		})
	}
	return articles
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (c *Client) call(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(claudeRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("claude API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("claude API %d: %s", resp.StatusCode, string(b))
	}

	var cr claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Content) == 0 {
		return "", fmt.Errorf("empty claude response")
	}
	return cr.Content[0].Text, nil
}

func (c *Client) count(outcome string) {
	if c.metrics != nil {
		c.metrics.ClaudeCalls.WithLabelValues(outcome).Inc()
	}
}
