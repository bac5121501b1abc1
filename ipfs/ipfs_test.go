package ipfs

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUploadsMultipartFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v0/add", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("cid-version"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		data, _ := io.ReadAll(file)
		assert.Equal(t, "artwork.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
		_, _ = w.Write([]byte(`{"cid":"bafyimage"}`))
	}))
	defer srv.Close()

	cid, err := New(srv.URL+"/", time.Second, nil).Add(context.Background(), "artwork.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	assert.Equal(t, "bafyimage", cid)
}

func TestAddAcceptsKuboResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Name":"metadata.json","Hash":"bafymeta","Size":"12"}`))
	}))
	defer srv.Close()

	cid, err := New(srv.URL, time.Second, nil).Add(context.Background(), "metadata.json", "application/json", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "bafymeta", cid)
}

func TestAddFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "pin quota exceeded", http.StatusForbidden)
	}))

	_, err := New(srv.URL, time.Second, nil).Add(context.Background(), "a", "b", nil)
	var ue *UploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusForbidden, ue.Status)

	// nothing listens any more
	srv.Close()
	_, err = New(srv.URL, time.Second, nil).Add(context.Background(), "a", "b", nil)
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 0, ue.Status)
}

func TestAddWithoutCid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second, nil).Add(context.Background(), "a", "b", nil)
	var ue *UploadError
	assert.ErrorAs(t, err, &ue)
}
