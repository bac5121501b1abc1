// Package ipfs uploads files to an IPFS pinning service speaking the Kubo `/api/v0/add` protocol.
package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"prism/metrics"
)

// UploadError a pinning gateway upload did not succeed
type UploadError struct {
	Status int //HTTP status, 0 for transport errors
	Err    error
}

func (e *UploadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("ipfs upload failed with status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("ipfs upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Client talks to one pinning endpoint.
type Client struct {
	uploadUrl string
	timeout   time.Duration
	http      *http.Client
}

func New(uploadUrl string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{uploadUrl: strings.TrimSuffix(uploadUrl, "/"), timeout: timeout, http: httpClient}
}

// addResponse covers both the Zora uploader ({"cid"}) and Kubo ({"Hash"}).
type addResponse struct {
	Cid  string `json:"cid"`
	Hash string `json:"Hash"`
}

// Add uploads one file and returns its CIDv1. It is attempted once.
func (c *Client) Add(ctx context.Context, filename, contentType string, data []byte) (cid string, err error) {
	start := time.Now()
	defer func() { metrics.ObserveExternal("ipfs", "add", start, err) }()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := form.CreatePart(header)
	if err != nil {
		return "", &UploadError{Err: err}
	}
	if _, err = part.Write(data); err != nil {
		return "", &UploadError{Err: err}
	}
	if err = form.Close(); err != nil {
		return "", &UploadError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadUrl+"/api/v0/add?cid-version=1", body)
	if err != nil {
		return "", &UploadError{Err: err}
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	resp, err := c.http.Do(req)
	if err != nil {
		return "", &UploadError{Err: err}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UploadError{Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(raw) > 256 {
			raw = raw[:256]
		}
		return "", &UploadError{Status: resp.StatusCode, Err: fmt.Errorf("%s", raw)}
	}

	var res addResponse
	if err = json.Unmarshal(raw, &res); err != nil {
		return "", &UploadError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	cid = res.Cid
	if cid == "" {
		cid = res.Hash
	}
	if cid == "" {
		return "", &UploadError{Status: resp.StatusCode, Err: fmt.Errorf("no cid in response")}
	}
	return cid, nil
}
