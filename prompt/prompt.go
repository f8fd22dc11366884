// Package prompt supplies the daily humor challenge shown above the feed.
// When a Gemini key is configured the prompt is generated; otherwise (or on
// any failure) a canned prompt is rotated in, so the feature never errors
// out user-visibly.
package prompt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
)

const baseURL = "https://generativelanguage.googleapis.com/v1beta/models"

var fallbackPrompts = []string{
	"Describe the flavor of the color beige.",
	"Your group chat is silent after you sent a meme. What's your next move?",
	"The year is 2050. What's a '/r/OldPeopleFacebook' post about?",
	"Your phone autocorrects 'okay' to 'ok boomer'. How do you respond?",
	"You're stuck in an elevator with your ex. What's the first thing you say?",
	"Your WiFi password is 'password123'. How do you explain this to guests?",
	"You accidentally liked a post from 2018. What's your excuse?",
	"Your mom just discovered TikTok. What's the first thing she posts?",
	"You're at a restaurant and the waiter calls you 'boss'. How do you react?",
	"Your dating app bio says 'I'm not like other girls'. What's your actual personality?",
	"You're in a meeting and someone says 'synergy'. What's your internal monologue?",
	"Your friend just said 'I'm not a morning person' at 3 PM. Your thoughts?",
	"You're at a party and someone asks 'What do you do?'. What's your elevator pitch?",
	"Your neighbor is mowing their lawn at 7 AM on Sunday. What's your revenge plan?",
	"You're in a group chat and someone sends 'This aged well'. What's the context?",
}

// Generator produces one humor prompt.
type Generator interface {
	Daily(ctx context.Context) (string, error)
}

type geminiGenerator struct {
	apiKey  string
	model   string
	client  *http.Client
	baseURL string
}

// NewGenerator creates a Generator backed by the Gemini API.
func NewGenerator(apiKey, model string, client *http.Client) Generator {
	return &geminiGenerator{apiKey: apiKey, model: model, client: client, baseURL: baseURL}
}

// newGeneratorWithURL creates a Generator with a custom base URL for testing.
func newGeneratorWithURL(apiKey, model string, client *http.Client, url string) Generator {
	return &geminiGenerator{apiKey: apiKey, model: model, client: client, baseURL: url}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *geminiGenerator) Daily(ctx context.Context) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{
				Text: "Write one short, absurd humor writing prompt for a social comedy app. " +
					"One sentence, no preamble, no quotation marks.",
			}},
		}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encoding prompt request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating prompt request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decoding gemini response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	text := strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("gemini returned empty prompt")
	}
	return text, nil
}

// Source wraps an optional Generator with the fallback rotation.
type Source struct {
	gen Generator
}

// NewSource returns a Source; gen may be nil to always use fallbacks.
func NewSource(gen Generator) *Source {
	return &Source{gen: gen}
}

// Daily returns today's prompt, falling back to a canned one on any failure.
func (s *Source) Daily(ctx context.Context) string {
	if s.gen != nil {
		text, err := s.gen.Daily(ctx)
		if err == nil {
			return text
		}
		slog.Debug("prompt generation failed, using fallback", "error", err)
	}
	return fallbackPrompts[rand.Intn(len(fallbackPrompts))]
}
