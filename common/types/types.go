package types

import (
	"fmt"
	"strings"
)

// Address 0x prefixed 20 byte account address, 40 hex digits
type Address string

// Hash 0x prefixed 32 byte hash, 64 hex digits
type Hash string

// HexColor canonical #RRGGBB color, upper case
type HexColor string

// Digits returns the six hex digits without the leading #.
func (c HexColor) Digits() string {
	return strings.TrimPrefix(string(c), "#")
}

func (a Address) String() string { return string(a) }

func (h Hash) String() string { return string(h) }

// ParseAddress checks a 0x prefixed address. The hex digits keep their case so that checksummed
// addresses survive the round trip.
func ParseAddress(s string) (Address, error) {
	if err := checkHex(s, 40); err != nil {
		return "", fmt.Errorf("invalid address %q: %w", s, err)
	}
	return Address("0x" + s[2:]), nil
}

// ParseHash checks a 0x prefixed 32 byte hash and lower-cases it.
func ParseHash(s string) (Hash, error) {
	if err := checkHex(s, 64); err != nil {
		return "", fmt.Errorf("invalid hash %q: %w", s, err)
	}
	return Hash("0x" + strings.ToLower(s[2:])), nil
}

// ParseHexColor checks #RRGGBB case-insensitively and returns the upper case form.
func ParseHexColor(s string) (HexColor, error) {
	if len(s) != 7 || s[0] != '#' {
		return "", fmt.Errorf("invalid hex color %q", s)
	}
	for i := 1; i < 7; i++ {
		if !isHex(s[i]) {
			return "", fmt.Errorf("invalid hex color %q", s)
		}
	}
	return HexColor(strings.ToUpper(s)), nil
}

func checkHex(s string, digits int) error {
	if len(s) != digits+2 {
		return fmt.Errorf("length is not %d", digits+2)
	}
	if s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return fmt.Errorf("prefix is not 0x")
	}
	for i := 2; i < len(s); i++ {
		if !isHex(s[i]) {
			return fmt.Errorf("illegal character: %q", s[i])
		}
	}
	return nil
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
