package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"prism/metrics"
)

// maxImageSize caps downloaded artwork
const maxImageSize = 20 << 20

// ImageFetcher loads the generated artwork referenced by a relay request. The artwork endpoint
// hands out base64 data URLs, other callers may pass http(s) links.
type ImageFetcher struct {
	http    *http.Client
	timeout time.Duration
}

func NewImageFetcher(httpClient *http.Client, timeout time.Duration) *ImageFetcher {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &ImageFetcher{http: httpClient, timeout: timeout}
}

func (f *ImageFetcher) Fetch(ctx context.Context, imageUrl string) ([]byte, error) {
	if strings.HasPrefix(imageUrl, "data:") {
		return decodeDataURL(imageUrl)
	}
	u, err := url.Parse(imageUrl)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("unsupported image url %q", truncate(imageUrl, 64))
	}

	start := time.Now()
	data, err := f.download(ctx, u.String())
	metrics.ObserveExternal("image", "download", start, err)
	return data, err
}

func (f *ImageFetcher) download(ctx context.Context, imageUrl string) ([]byte, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageUrl, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download image: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageSize {
		return nil, fmt.Errorf("image larger than %d bytes", maxImageSize)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image")
	}
	return data, nil
}

// decodeDataURL handles data:[<mediatype>][;base64],<data>
func decodeDataURL(s string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data url")
	}
	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		var err error
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decode data url: %w", err)
		}
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("decode data url: %w", err)
		}
		data = []byte(unescaped)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image")
	}
	if len(data) > maxImageSize {
		return nil, fmt.Errorf("image larger than %d bytes", maxImageSize)
	}
	return data, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
