// Package narrative talks to the generative-text service that produces the
// game's flavor text: locker-room messages, show recaps, and booking advice.
// Its output is decoration, never simulation state; every failure degrades
// to a fixed fallback string so the simulation is never blocked.
package narrative

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fallback strings used when the service is unavailable or disabled.
const (
	FallbackRecap   = "No recap could be generated for this show."
	FallbackMessage = "Hey boss, can we talk when you have a minute?"
	FallbackAdvice  = "The assistant couldn't come up with a response. Try rephrasing your question."
)

// Generator produces freeform text from a persona instruction and a
// user-style prompt.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Client is a Generator backed by a generateContent-style HTTP API.
type Client struct {
	http   *resty.Client
	model  string
	apiKey string
}

// NewClient builds a client for the given base URL, model and API key.
func NewClient(baseURL, model, apiKey string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30 * time.Second),
		model:  model,
		apiKey: apiKey,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate calls the text service and returns the first candidate's text.
func (c *Client) Generate(ctx context.Context, system, user string) (string, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: user}}}},
	}
	if system != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}

	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(req).
		SetResult(&out).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("narrative service status %d", resp.StatusCode())
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("narrative service returned no candidates")
	}
	text := out.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("narrative service returned empty text")
	}
	return text, nil
}

// Disabled is a Generator that always fails, forcing callers onto their
// fallback strings. Used when the service is not configured.
type Disabled struct{}

func (Disabled) Generate(ctx context.Context, system, user string) (string, error) {
	return "", fmt.Errorf("narrative generation disabled")
}
