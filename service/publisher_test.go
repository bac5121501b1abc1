package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"prism/common/types"
	"prism/ipfs"
)

func TestBuildMetadataDocument(t *testing.T) {
	doc := BuildMetadataDocument("bafyimage", []types.HexColor{"#AAAAAA", "#BBBBBB"})
	assert.Equal(t, []Attribute{
		{TraitType: "Color 1", Value: "#AAAAAA"},
		{TraitType: "Color 2", Value: "#BBBBBB"},
	}, doc.Attributes)

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "PRISM",
		"description": "Metaphor for colors combining into art",
		"image": "ipfs://bafyimage",
		"attributes": [
			{"trait_type": "Color 1", "value": "#AAAAAA"},
			{"trait_type": "Color 2", "value": "#BBBBBB"}
		]
	}`, string(data))
}

func TestContentID(t *testing.T) {
	c := ContentID("bafymeta")
	assert.Equal(t, "ipfs://bafymeta", c.URI())
	assert.Equal(t, "https://magic.decentralized-content.com/ipfs/bafymeta", c.GatewayURL("https://magic.decentralized-content.com"))
}

type recordingPinner struct {
	files map[string][]byte
	err   error
}

func (p *recordingPinner) Add(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	if p.files == nil {
		p.files = map[string][]byte{}
	}
	p.files[filename] = data
	return "cid-" + filename, nil
}

func TestPublisher(t *testing.T) {
	pinner := &recordingPinner{}
	pub := NewArtifactPublisher(pinner)

	img, err := pub.PublishImage(context.Background(), []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, ContentID("cid-artwork.png"), img)

	meta, err := pub.PublishMetadata(context.Background(), BuildMetadataDocument(img, []types.HexColor{"#010203"}))
	require.NoError(t, err)
	assert.Equal(t, ContentID("cid-metadata.json"), meta)

	var doc MetadataDocument
	require.NoError(t, json.Unmarshal(pinner.files["metadata.json"], &doc))
	assert.Equal(t, "ipfs://cid-artwork.png", doc.Image)
}

func TestPublisherKeepsUploadError(t *testing.T) {
	pub := NewArtifactPublisher(&recordingPinner{err: &ipfs.UploadError{Status: 502, Err: errors.New("bad gateway")}})
	_, err := pub.PublishImage(context.Background(), []byte("png"))
	var ue *ipfs.UploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 502, ue.Status)
}
