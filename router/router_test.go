package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"prism/artwork"
	"prism/common/types"
	"prism/service"
)

const paymentHash = "0x5f3c1d2b4a69870e7d6c5b4a39281706f5e4d3c2b1a09f8e7d6c5b4a39281706"

type stubChain struct{ senderErr error }

func (s *stubChain) TransactionSender(ctx context.Context, hash types.Hash) (types.Address, error) {
	return "0x8ba1f109551bD432803012645Ac136ddd64DBA72", s.senderErr
}

func (s *stubChain) SubmitMint(ctx context.Context, to types.Address, recipients []types.Address, uri string) (types.Hash, error) {
	return "0x" + fmt.Sprintf("%064x", 7), nil
}

func (s *stubChain) WaitConfirmed(ctx context.Context, hash types.Hash) error { return nil }

type stubRecipients struct{}

func (stubRecipients) ResolveRecipients(ctx context.Context, colors []types.HexColor) ([]service.RecipientMatch, error) {
	res := make([]service.RecipientMatch, len(colors))
	for i, c := range colors {
		res[i] = service.RecipientMatch{HexColor: c, OwnerAddress: "0xAD7c065112dCF8891b10F8e70eF74F5E4A168Fa4"}
	}
	return res, nil
}

type stubImages struct{}

func (stubImages) Fetch(ctx context.Context, imageUrl string) ([]byte, error) {
	return []byte("png"), nil
}

type stubPinner struct{}

func (stubPinner) Add(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	return "bafy" + filename, nil
}

type stubModel struct{ err error }

func (m stubModel) Generate(ctx context.Context, prompt string) (*artwork.Image, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &artwork.Image{Data: []byte("png"), MIMEType: "image/png"}, nil
}

func (stubModel) Model() string { return "stub" }

func testRouter(chain *stubChain, model stubModel) *gin.Engine {
	gin.SetMode(gin.TestMode)
	orch := &service.Orchestrator{
		Sender:     chain,
		Recipients: stubRecipients{},
		Images:     stubImages{},
		Publisher:  service.NewArtifactPublisher(stubPinner{}),
		Minter:     chain,
		Gateway:    "https://gw",
	}
	return New(Services{
		Relay:   service.NewRelayService(orch, nil),
		Artwork: service.NewArtworkService(model),
		Signer:  "0x8ba1f109551bd432803012645ac136ddd64dba72",
	})
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	var res service.ErrRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.Error
}

func TestRelayEndpoint(t *testing.T) {
	r := testRouter(&stubChain{}, stubModel{})
	body := fmt.Sprintf(`{"txHash":%q,"hexColors":["#FF5733","#33ff57"],"imageUrl":"data:image/png;base64,cG5n"}`, paymentHash)

	w := do(r, http.MethodPost, "/relay", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Success bool               `json:"success"`
		Data    service.MintResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, "minted", res.Data.Status)
	assert.Len(t, res.Data.RecipientMatches, 2)
	assert.Equal(t, "https://gw/ipfs/bafymetadata.json", res.Data.MetadataViewUrl)
}

func TestRelayEndpointErrors(t *testing.T) {
	cases := []struct {
		name   string
		chain  *stubChain
		body   string
		status int
		msg    string
	}{
		{"not json", &stubChain{}, `{"txHash":`, http.StatusBadRequest, "Invalid JSON body"},
		{"missing", &stubChain{}, `{"txHash":"0x1"}`, http.StatusBadRequest, "txHash, hexColors, and imageUrl are required"},
		{"bad hash", &stubChain{}, `{"txHash":"0x1","hexColors":["#FFFFFF"],"imageUrl":"x"}`, http.StatusBadRequest, "Invalid transaction hash format"},
		{"bad color", &stubChain{}, fmt.Sprintf(`{"txHash":%q,"hexColors":["#FFFFFG"],"imageUrl":"x"}`, paymentHash), http.StatusBadRequest, "Invalid hex colors: #FFFFFG"},
		{"sender", &stubChain{senderErr: errors.New("not found")}, fmt.Sprintf(`{"txHash":%q,"hexColors":["#FFFFFF"],"imageUrl":"x"}`, paymentHash), http.StatusInternalServerError, "Failed to decode transaction sender"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := do(testRouter(c.chain, stubModel{}), http.MethodPost, "/relay", c.body)
			assert.Equal(t, c.status, w.Code)
			assert.Equal(t, c.msg, errorOf(t, w))
		})
	}
}

func TestArtworkEndpoint(t *testing.T) {
	w := do(testRouter(&stubChain{}, stubModel{}), http.MethodPost, "/generate-artwork", `{"colors":["#FF5733"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	var res service.ArtworkRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "Harmony Mono", res.Title)
	assert.Equal(t, "data:image/png;base64,cG5n", res.ImageUrl)

	w = do(testRouter(&stubChain{}, stubModel{err: artwork.ErrQuota}), http.MethodPost, "/generate-artwork", `{"colors":["#FF5733"]}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = do(testRouter(&stubChain{}, stubModel{}), http.MethodPost, "/generate-artwork", `{"colors":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Colors array is required and must not be empty", errorOf(t, w))
}

func TestOptionalRoutes(t *testing.T) {
	r := testRouter(&stubChain{}, stubModel{})
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/metrics", "").Code)
	// no database configured
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/mints", "").Code)
}
