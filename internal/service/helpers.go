package service

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// minorToDecimal converts a provider minor-unit amount (cents) to a
// currency-unit decimal.
func minorToDecimal(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

func nullDecimal(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func strPtr(s string) *string {
	return &s
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toJSONMap(m map[string]string) datatypes.JSONMap {
	if len(m) == 0 {
		return nil
	}

	out := make(datatypes.JSONMap, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}
