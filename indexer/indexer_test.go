package indexer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return New(Config{
		BaseUrl:  url,
		ApiKey:   "key",
		Contract: "0x7Bc1C072742D8391817EB4Eb2317F98dc72C61dB",
		PageSize: 100,
		Timeout:  time.Second,
		Backoff:  time.Millisecond,
	}, nil)
}

func TestNFTsForContract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nft/v3/key/getNFTsForContract", r.URL.Path)
		assert.Equal(t, "0x7Bc1C072742D8391817EB4Eb2317F98dc72C61dB", r.URL.Query().Get("contractAddress"))
		assert.Equal(t, "true", r.URL.Query().Get("withMetadata"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"nfts":[{"tokenId":"1","name":"ff6b6b-sunset"},{"tokenId":"2","raw":{"metadata":{"name":"4ecdc4"}}}],"pageKey":"x"}`))
	}))
	defer srv.Close()

	nfts, err := newTestClient(srv.URL).NFTsForContract(context.Background())
	require.NoError(t, err)
	require.Len(t, nfts, 2)
	assert.Equal(t, "ff6b6b-sunset", nfts[0].DisplayName())
	assert.Equal(t, "4ecdc4", nfts[1].DisplayName())
}

func TestOwnersForNFT(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nft/v3/key/getOwnersForNFT", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("tokenId"))
		_, _ = w.Write([]byte(`{"owners":["0x1111111111111111111111111111111111111111"]}`))
	}))
	defer srv.Close()

	owners, err := newTestClient(srv.URL).OwnersForNFT(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, []string{"0x1111111111111111111111111111111111111111"}, owners)
}

func TestRetriesOnceOnServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"owners":[]}`))
	}))
	defer srv.Close()

	owners, err := newTestClient(srv.URL).OwnersForNFT(context.Background(), "1")
	require.NoError(t, err)
	assert.Empty(t, owners)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGivesUpAfterOneRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).NFTsForContract(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).NFTsForContract(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
