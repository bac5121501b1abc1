package ethclient

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const prismABI = `[
	{
		"type": "function",
		"name": "mint",
		"stateMutability": "payable",
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "recipients", "type": "address[]"},
			{"name": "tokenURI", "type": "string"}
		],
		"outputs": []
	}
]`

var collectionABI = mustParseABI(prismABI)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}

// PackMint encodes the calldata of mint(to, recipients, tokenURI).
func PackMint(to common.Address, recipients []common.Address, tokenURI string) ([]byte, error) {
	data, err := collectionABI.Pack("mint", to, recipients, tokenURI)
	if err != nil {
		return nil, fmt.Errorf("pack mint: %w", err)
	}
	return data, nil
}
