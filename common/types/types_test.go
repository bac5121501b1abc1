package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff6b6b")
	require.NoError(t, err)
	assert.Equal(t, HexColor("#FF6B6B"), c)
	assert.Equal(t, "FF6B6B", c.Digits())

	for _, bad := range []string{"#ZZZZZZ", "red", "#fff", "FF6B6B", "#FF6B6B0", ""} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseHash(t *testing.T) {
	h, err := ParseHash("0xABCDEF0000000000000000000000000000000000000000000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, Hash("0xabcdef0000000000000000000000000000000000000000000000000000000001"), h)

	for _, bad := range []string{"", "0x1234", "abcdef0000000000000000000000000000000000000000000000000000000001zz",
		"0xZZcdef0000000000000000000000000000000000000000000000000000000001"} {
		_, err := ParseHash(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseAddress(t *testing.T) {
	a, err := ParseAddress("0xAD7c065112dCF8891b10F8e70eF74F5E4A168Fa4")
	require.NoError(t, err)
	assert.Equal(t, "0xAD7c065112dCF8891b10F8e70eF74F5E4A168Fa4", a.String())

	_, err = ParseAddress("0xAD7c065112dCF8891b10F8e70eF74F5E4A168Fa")
	assert.Error(t, err)
	_, err = ParseAddress("1xAD7c065112dCF8891b10F8e70eF74F5E4A168Fa4")
	assert.Error(t, err)
}
