package utils

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
	"prism/common/types"
)

// PubkeyToAddress public key to address
func PubkeyToAddress(p *secp256k1.PublicKey) types.Address {
	data := elliptic.Marshal(secp256k1.S256(), p.X(), p.Y())
	return types.Address("0x" + hex.EncodeToString(Keccak256(data[1:])[12:]))
}

// Keccak256 Calculate Keccak256 return byte array (32 bytes)
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// HexToECDSA hexadecimal string restore private key object, a 0x prefix is accepted
func HexToECDSA(key string) (*secp256k1.PrivateKey, error) {
	key = strings.TrimPrefix(strings.TrimPrefix(key, "0x"), "0X")
	if len(key) != 64 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d hex digits", len(key))
	}
	b, err := hex.DecodeString(key)
	if byteErr, ok := err.(hex.InvalidByteError); ok {
		return nil, fmt.Errorf("invalid hex character %q in private key", byte(byteErr))
	} else if err != nil {
		return nil, fmt.Errorf("invalid hex data for private key")
	}
	prv := secp256k1.PrivKeyFromBytes(b)
	if prv.Key.IsZero() {
		return nil, fmt.Errorf("private key is zero")
	}
	return prv, nil
}

// SigningKey is the relayer key in the two shapes the service needs: the ecdsa key for signing
// transactions and its account address.
type SigningKey struct {
	Key     *ecdsa.PrivateKey
	Address types.Address
}

// LoadSigningKey parses the configured hex key and derives the relayer address.
func LoadSigningKey(hexKey string) (*SigningKey, error) {
	prv, err := HexToECDSA(hexKey)
	if err != nil {
		return nil, err
	}
	key, err := crypto.ToECDSA(prv.Serialize())
	if err != nil {
		return nil, err
	}
	return &SigningKey{Key: key, Address: PubkeyToAddress(prv.PubKey())}, nil
}
