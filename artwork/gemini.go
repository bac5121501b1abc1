// Package artwork generates palette artwork with the Gemini image models.
package artwork

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
	"prism/metrics"
)

var (
	// ErrAuth the image API rejected the key
	ErrAuth = errors.New("image api authentication failed")
	// ErrQuota the image API refused for quota or billing reasons
	ErrQuota = errors.New("image api quota exceeded")
	// ErrNoImage the model answered without an image
	ErrNoImage = errors.New("no image in response")
)

// Image one generated picture plus whatever text the model returned with it
type Image struct {
	Data     []byte
	MIMEType string
	Text     string
}

// Generator wraps a genai client bound to one model.
type Generator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGenerator creates a Gemini API client. baseUrl overrides the API endpoint when not empty.
func NewGenerator(ctx context.Context, apiKey, model, baseUrl string, timeout time.Duration) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseUrl != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseUrl}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Generator{client: client, model: model, timeout: timeout}, nil
}

// Model name of the model in use
func (g *Generator) Model() string {
	return g.model
}

// Generate asks the model for an image and returns the first one in the response.
func (g *Generator) Generate(ctx context.Context, prompt string) (*Image, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	)
	metrics.ObserveExternal("genai", "generate_content", start, err)
	if err != nil {
		return nil, Classify(err)
	}
	return firstImage(resp)
}

func firstImage(resp *genai.GenerateContentResponse) (*Image, error) {
	var img *Image
	var text []string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				text = append(text, part.Text)
			}
			if img == nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				img = &Image{Data: part.InlineData.Data, MIMEType: part.InlineData.MIMEType}
			}
		}
	}
	if img == nil {
		return nil, ErrNoImage
	}
	if img.MIMEType == "" {
		img.MIMEType = "image/png"
	}
	img.Text = strings.Join(text, "\n")
	return img, nil
}

// Classify wraps upstream auth and quota failures in ErrAuth and ErrQuota.
func Classify(err error) error {
	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
	}
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %v", ErrAuth, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", ErrQuota, err)
	}
	// the Gemini API answers a malformed key with 400 API_KEY_INVALID
	if code == http.StatusBadRequest && strings.Contains(err.Error(), "API_KEY_INVALID") {
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}
	return err
}
