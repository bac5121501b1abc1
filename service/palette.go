package service

import (
	"prism/common/types"
)

// MaxColors is the largest palette a request may carry.
const MaxColors = 5

// ValidateColors checks a submitted palette and returns it in canonical #RRGGBB form. It never
// accepts part of a palette: one bad value rejects the whole list. Duplicates are allowed.
func ValidateColors(colors []string) ([]types.HexColor, error) {
	if len(colors) == 0 {
		return nil, &ValidationError{Msg: "hexColors must be a non-empty array"}
	}
	if len(colors) > MaxColors {
		return nil, &ValidationError{Msg: "Maximum 5 colors allowed"}
	}
	res := make([]types.HexColor, 0, len(colors))
	var invalid []string
	for _, c := range colors {
		hc, err := types.ParseHexColor(c)
		if err != nil {
			invalid = append(invalid, c)
			continue
		}
		res = append(res, hc)
	}
	if len(invalid) > 0 {
		return nil, invalidColors(invalid)
	}
	return res, nil
}
