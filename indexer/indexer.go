// Package indexer is a client for the Alchemy NFT API (v3) used to list the tokens of the color
// collection and to look up their owners.
package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sethvargo/go-retry"
	"prism/metrics"
)

// Config of the index client.
type Config struct {
	BaseUrl  string        //e.g. https://base-mainnet.g.alchemy.com
	ApiKey   string        //path segment of the v3 API
	Contract string        //collection to read
	PageSize int           //limit of getNFTsForContract, at most 100
	Timeout  time.Duration //per attempt
	Backoff  time.Duration //delay before the single retry
}

// NFT is the subset of an indexed token used for color matching.
type NFT struct {
	TokenId string `json:"tokenId"`
	Name    string `json:"name"`
	Raw     struct {
		Metadata struct {
			Name string `json:"name"`
		} `json:"metadata"`
	} `json:"raw"`
}

// DisplayName is the indexed name, falling back to the raw metadata name.
func (n NFT) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.Raw.Metadata.Name
}

// StatusError non-2xx answer from the index
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d %s", e.Code, e.Body)
}

type Client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{cfg: cfg, http: httpClient}
}

// NFTsForContract fetches one page (up to PageSize tokens) of the configured collection.
func (c *Client) NFTsForContract(ctx context.Context) ([]NFT, error) {
	q := url.Values{}
	q.Set("contractAddress", c.cfg.Contract)
	q.Set("withMetadata", "true")
	q.Set("limit", fmt.Sprint(c.cfg.PageSize))
	body := struct {
		NFTs []NFT `json:"nfts"`
	}{}
	if err := c.get(ctx, "getNFTsForContract", q, &body); err != nil {
		return nil, err
	}
	return body.NFTs, nil
}

// OwnersForNFT lists the current owners of a token, usually one for ERC721.
func (c *Client) OwnersForNFT(ctx context.Context, tokenId string) ([]string, error) {
	q := url.Values{}
	q.Set("contractAddress", c.cfg.Contract)
	q.Set("tokenId", tokenId)
	body := struct {
		Owners []string `json:"owners"`
	}{}
	if err := c.get(ctx, "getOwnersForNFT", q, &body); err != nil {
		return nil, err
	}
	return body.Owners, nil
}

// get performs an idempotent read with a per attempt timeout and one retry with backoff on
// transport errors, 429 and 5xx.
func (c *Client) get(ctx context.Context, method string, q url.Values, out interface{}) error {
	endpoint := fmt.Sprintf("%s/nft/v3/%s/%s?%s", c.cfg.BaseUrl, url.PathEscape(c.cfg.ApiKey), method, q.Encode())
	backoff := retry.WithMaxRetries(1, retry.NewExponential(c.cfg.Backoff))

	start := time.Now()
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.once(ctx, endpoint, out)
		if err != nil && retryable(err) && ctx.Err() == nil {
			return retry.RetryableError(err)
		}
		return err
	})
	metrics.ObserveExternal("indexer", method, start, err)
	return err
}

func (c *Client) once(ctx context.Context, endpoint string, out interface{}) error {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(data) > 256 {
			data = data[:256]
		}
		return &StatusError{Code: resp.StatusCode, Body: string(data)}
	}
	return json.Unmarshal(data, out)
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	// transport failures surface from http.Client as *url.Error
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
