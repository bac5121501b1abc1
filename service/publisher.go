package service

import (
	"context"
	"encoding/json"
	"fmt"

	"prism/common/types"
)

const (
	metadataName        = "PRISM"
	metadataDescription = "Metaphor for colors combining into art"
)

// ContentID content address returned by the pinning service
type ContentID string

// URI is the ipfs:// form stored in metadata.
func (c ContentID) URI() string {
	return "ipfs://" + string(c)
}

// GatewayURL is the retrieval URL of the content on an HTTP gateway.
func (c ContentID) GatewayURL(gateway string) string {
	return gateway + "/ipfs/" + string(c)
}

// Attribute one ERC721 metadata trait
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// MetadataDocument ERC721 token metadata of a Prism artwork
type MetadataDocument struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []Attribute `json:"attributes"`
}

// BuildMetadataDocument describes an artwork; attributes follow the color order exactly.
func BuildMetadataDocument(image ContentID, colors []types.HexColor) MetadataDocument {
	attrs := make([]Attribute, len(colors))
	for i, c := range colors {
		attrs[i] = Attribute{TraitType: fmt.Sprintf("Color %d", i+1), Value: string(c)}
	}
	return MetadataDocument{
		Name:        metadataName,
		Description: metadataDescription,
		Image:       image.URI(),
		Attributes:  attrs,
	}
}

// Pinner uploads a single file to content addressed storage.
type Pinner interface {
	Add(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// ArtifactPublisher pins artwork images and their metadata.
type ArtifactPublisher struct {
	pinner Pinner
}

func NewArtifactPublisher(pinner Pinner) *ArtifactPublisher {
	return &ArtifactPublisher{pinner: pinner}
}

func (p *ArtifactPublisher) PublishImage(ctx context.Context, image []byte) (ContentID, error) {
	cid, err := p.pinner.Add(ctx, "artwork.png", "image/png", image)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return ContentID(cid), nil
}

func (p *ArtifactPublisher) PublishMetadata(ctx context.Context, doc MetadataDocument) (ContentID, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	cid, err := p.pinner.Add(ctx, "metadata.json", "application/json", data)
	if err != nil {
		return "", fmt.Errorf("upload metadata: %w", err)
	}
	return ContentID(cid), nil
}
