// Package gemini implements the text-generation client against the Google
// Generative Language API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/a-thamaraiselvan/Spin-wheel/internal/domain"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/metrics"
	"github.com/sony/gobreaker"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.0-flash"

	temperature     = 0.9
	maxOutputTokens = 200
)

// Client implements domain.QuoteGenerator via the generateContent endpoint.
// Calls run through a circuit breaker so a dead upstream fails fast and the
// coordinator falls back to template text instead of stacking timeouts.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
	breaker    *gobreaker.CircuitBreaker
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "gemini",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "component", name, "from", from.String(), "to", to.String())
			metrics.QuoteBreakerState.Set(stateToFloat(to))
		},
	})

	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		breaker:    breaker,
	}
}

// generateRequest / generateResponse mirror the generateContent API shapes.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate requests one congratulatory quote for the given pairing.
func (c *Client) Generate(ctx context.Context, req domain.QuoteRequest) (string, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		return c.call(ctx, buildPrompt(req))
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (c *Client) call(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxOutputTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	return strings.TrimSpace(genResp.Candidates[0].Content.Parts[0].Text), nil
}

func buildPrompt(req domain.QuoteRequest) string {
	var b strings.Builder
	b.WriteString("Generate a heartfelt, blessing-style Teacher's Day quote in one or two lines.\n\n")
	b.WriteString("Format:\n")
	fmt.Fprintf(&b, "- Start with \"Dear, %s\"\n", req.StaffName)
	fmt.Fprintf(&b, "- Mention one of their favorite things: %s\n", strings.Join(req.FavoriteThings, ", "))
	fmt.Fprintf(&b, "- Connect it with %s in a joyful and inspiring way\n", req.Outcome)
	b.WriteString("- Use blessing/aim/destination style: wish them joy, guidance, light, inspiration\n")
	fmt.Fprintf(&b, "- Appreciate their contribution to the %s department\n", req.Department)
	b.WriteString("- End with \"Happy Teacher's Day 🎉\"\n")
	b.WriteString("- Add positive emojis like 🌟🙏✨🌸🎉\n\n")
	b.WriteString("Example style:\n")
	b.WriteString("\"Dear, Meena 🌸 Since you love Coffee ☕, Rajinikanth says your energy blesses every student's journey towards success 🌟🙏 Thank you for guiding the Computer Science department. Happy Teacher's Day 🎉\"")
	return b.String()
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
