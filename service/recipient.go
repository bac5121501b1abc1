package service

import (
	"context"
	"strings"

	"prism/common/types"
	"prism/indexer"
	"prism/log"
	"prism/metrics"
)

// RecipientMatch ties one requested color to the royalty recipient resolved for it.
type RecipientMatch struct {
	HexColor     types.HexColor `json:"hexColor"`
	TokenId      *string        `json:"tokenId"` //null when the color fell back
	TokenName    *string        `json:"name"`    //null when the color fell back
	OwnerAddress types.Address  `json:"owner"`   //always set
}

// TokenIndex is the part of the NFT index the resolver reads.
type TokenIndex interface {
	NFTsForContract(ctx context.Context) ([]indexer.NFT, error)
	OwnersForNFT(ctx context.Context, tokenId string) ([]string, error)
}

// RecipientResolver maps colors to the owners of the color collection tokens named after them.
type RecipientResolver struct {
	index    TokenIndex
	fallback types.Address
}

func NewRecipientResolver(index TokenIndex, fallback types.Address) *RecipientResolver {
	return &RecipientResolver{index: index, fallback: fallback}
}

// ResolveRecipients returns exactly one match per color, in input order. Lookup failures fall
// back to the default address per color. If the token list itself cannot be fetched every color
// falls back. The only error returned is the caller's context ending.
func (r *RecipientResolver) ResolveRecipients(ctx context.Context, colors []types.HexColor) ([]RecipientMatch, error) {
	nfts, err := r.index.NFTsForContract(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warnf("Error fetching NFTs from contract, all %d colors use the fallback address: %v", len(colors), err)
		metrics.RecipientFallbacks.WithLabelValues("token_list").Add(float64(len(colors)))
		return r.allFallback(colors), nil
	}

	matches := make([]RecipientMatch, 0, len(colors))
	for _, color := range colors {
		nft := firstMatch(nfts, color)
		if nft == nil {
			log.Warnf("No matching NFT found for hex color: %s", color)
			metrics.RecipientFallbacks.WithLabelValues("no_match").Inc()
			matches = append(matches, r.fallbackMatch(color))
			continue
		}

		owner, err := r.owner(ctx, nft.TokenId)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warnf("Error fetching owner for token %s (%s): %v", nft.TokenId, color, err)
			metrics.RecipientFallbacks.WithLabelValues("owner_lookup").Inc()
			matches = append(matches, r.fallbackMatch(color))
			continue
		}
		if owner == "" {
			log.Warnf("No owner found for token %s (%s)", nft.TokenId, color)
			metrics.RecipientFallbacks.WithLabelValues("no_owner").Inc()
			matches = append(matches, r.fallbackMatch(color))
			continue
		}

		tokenId, name := nft.TokenId, nft.DisplayName()
		log.Debugf("Found matching NFT for %s: token %s %q owned by %s", color, tokenId, name, owner)
		matches = append(matches, RecipientMatch{
			HexColor:     color,
			TokenId:      &tokenId,
			TokenName:    &name,
			OwnerAddress: owner,
		})
	}
	return matches, nil
}

// owner returns the first owner of a token, or "" if it has none. An owner that is not a valid
// address counts as none.
func (r *RecipientResolver) owner(ctx context.Context, tokenId string) (types.Address, error) {
	owners, err := r.index.OwnersForNFT(ctx, tokenId)
	if err != nil {
		return "", err
	}
	if len(owners) == 0 {
		return "", nil
	}
	addr, err := types.ParseAddress(owners[0])
	if err != nil {
		log.Warnf("Ignoring owner of token %s: %v", tokenId, err)
		return "", nil
	}
	return addr, nil
}

func (r *RecipientResolver) fallbackMatch(color types.HexColor) RecipientMatch {
	return RecipientMatch{HexColor: color, OwnerAddress: r.fallback}
}

func (r *RecipientResolver) allFallback(colors []types.HexColor) []RecipientMatch {
	matches := make([]RecipientMatch, len(colors))
	for i, c := range colors {
		matches[i] = r.fallbackMatch(c)
	}
	return matches
}

// firstMatch is the first token, in index order, whose name contains the color digits ignoring
// case. Several colors may land on the same token.
func firstMatch(nfts []indexer.NFT, color types.HexColor) *indexer.NFT {
	digits := strings.ToLower(color.Digits())
	for i := range nfts {
		name := nfts[i].DisplayName()
		if name == "" || nfts[i].TokenId == "" {
			continue
		}
		if strings.Contains(strings.ToLower(name), digits) {
			return &nfts[i]
		}
	}
	return nil
}

// Recipients flattens matches into the address list passed to the contract.
func Recipients(matches []RecipientMatch) []types.Address {
	res := make([]types.Address, len(matches))
	for i, m := range matches {
		res[i] = m.OwnerAddress
	}
	return res
}
