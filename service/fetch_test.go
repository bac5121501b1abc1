package service

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchDataURL(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	f := NewImageFetcher(nil, time.Second)

	data, err := f.Fetch(context.Background(), "data:image/png;base64,"+base64.StdEncoding.EncodeToString(png))
	require.NoError(t, err)
	assert.Equal(t, png, data)

	data, err = f.Fetch(context.Background(), "data:text/plain,hello%20world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	for _, bad := range []string{"data:image/png;base64", "data:image/png;base64,!!!", "data:image/png;base64,"} {
		_, err := f.Fetch(context.Background(), bad)
		assert.Error(t, err, bad)
	}
}

func TestFetchHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	f := NewImageFetcher(srv.Client(), time.Second)
	data, err := f.Fetch(context.Background(), srv.URL+"/art.png")
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.png")
	assert.Error(t, err)

	_, err = f.Fetch(context.Background(), "ftp://example.com/a.png")
	assert.Error(t, err)
}
