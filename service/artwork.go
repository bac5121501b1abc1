package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"prism/artwork"
	"prism/common/types"
	"prism/log"
	"prism/metrics"
)

// ImageModel generates one image for a prompt.
type ImageModel interface {
	Generate(ctx context.Context, prompt string) (*artwork.Image, error)
	Model() string
}

// ArtworkReq body of POST /generate-artwork
type ArtworkReq struct {
	Colors []string `json:"colors" example:"#FF5733,#33FF57"`
}

// ArtworkRes generated artwork
type ArtworkRes struct {
	Success     bool             `json:"success"`
	ImageUrl    string           `json:"imageUrl"` //base64 data URL of the image
	Title       string           `json:"title" example:"Harmony Duo"`
	Colors      []types.HexColor `json:"colors"`
	Prompt      string           `json:"prompt"`
	OutputText  string           `json:"outputText"`
	ModelUsed   string           `json:"modelUsed"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

// ArtworkError failure of the artwork endpoint with its HTTP status
type ArtworkError struct {
	Status int
	Msg    string
	Err    error
}

func (e *ArtworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ArtworkError) Unwrap() error {
	return e.Err
}

var harmonyTitles = [...]string{1: "Mono", 2: "Duo", 3: "Trio", 4: "Quartet", 5: "Quintet"}

// ArtworkTitle names a palette by its size.
func ArtworkTitle(n int) string {
	if n < 1 || n >= len(harmonyTitles) {
		n = len(harmonyTitles) - 1
	}
	return "Harmony " + harmonyTitles[n]
}

// ArtworkPrompt asks for a composition restricted to the exact colors.
func ArtworkPrompt(colors []types.HexColor) string {
	list := make([]string, len(colors))
	for i, c := range colors {
		list[i] = string(c)
	}
	return fmt.Sprintf(`Create a modern digital artwork using ONLY the following exact colors.

CRITICAL REQUIREMENTS:
- Use ONLY the %d exact colors: %s
- Match the colors EXACTLY, no variations, approximations or interpretations
- Each color must be clearly visible and distinct in the final artwork
- NO additional colors, shades, tints, gradients or color mixing allowed
- The background must use one of the specified colors
- The artwork should be modern and digital in style

The final result must be a precise composition using only these colors, with no blending or additional colors introduced.`,
		len(colors), strings.Join(list, ", "))
}

// ArtworkService generates palette artwork.
type ArtworkService struct {
	model ImageModel
	now   func() time.Time
}

func NewArtworkService(model ImageModel) *ArtworkService {
	return &ArtworkService{model: model, now: time.Now}
}

// Generate the returned error is always an *ArtworkError.
func (s *ArtworkService) Generate(ctx context.Context, colors []string) (*ArtworkRes, error) {
	if len(colors) == 0 {
		metrics.ArtworkRequests.WithLabelValues("bad_request").Inc()
		return nil, &ArtworkError{Status: http.StatusBadRequest, Msg: "Colors array is required and must not be empty"}
	}
	palette, err := ValidateColors(colors)
	if err != nil {
		metrics.ArtworkRequests.WithLabelValues("bad_request").Inc()
		return nil, &ArtworkError{Status: http.StatusBadRequest, Msg: err.Error()}
	}
	if s.model == nil {
		metrics.ArtworkRequests.WithLabelValues("error").Inc()
		return nil, &ArtworkError{Status: http.StatusInternalServerError, Msg: "Failed to generate artwork. Please try again.",
			Err: errors.New("no image model configured")}
	}

	prompt := ArtworkPrompt(palette)
	img, err := s.model.Generate(ctx, prompt)
	if err != nil {
		aerr := upstreamError(err)
		metrics.ArtworkRequests.WithLabelValues(outcome(aerr.Status)).Inc()
		log.Errorf("generate artwork %v: %v", palette, err)
		return nil, aerr
	}
	metrics.ArtworkRequests.WithLabelValues("generated").Inc()
	log.Infof("generated artwork colors=%v bytes=%d", palette, len(img.Data))

	return &ArtworkRes{
		Success:     true,
		ImageUrl:    fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data)),
		Title:       ArtworkTitle(len(palette)),
		Colors:      palette,
		Prompt:      prompt,
		OutputText:  img.Text,
		ModelUsed:   s.model.Model(),
		GeneratedAt: s.now().UTC(),
	}, nil
}

func upstreamError(err error) *ArtworkError {
	switch {
	case errors.Is(err, artwork.ErrAuth):
		return &ArtworkError{Status: http.StatusUnauthorized, Msg: "Invalid image API key. Please check your environment variables.", Err: err}
	case errors.Is(err, artwork.ErrQuota):
		return &ArtworkError{Status: http.StatusTooManyRequests, Msg: "Image API quota exceeded. Please check your billing.", Err: err}
	}
	return &ArtworkError{Status: http.StatusInternalServerError, Msg: "Failed to generate artwork. Please try again.", Err: err}
}

func outcome(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "auth_error"
	case http.StatusTooManyRequests:
		return "quota_error"
	}
	return "error"
}
