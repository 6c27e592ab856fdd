package enums

import "fmt"

// SortKey selects the ordering applied to a projected item sequence.
type SortKey string

const (
	SortKeyColor      SortKey = "color"
	SortKeyNameAsc    SortKey = "name_asc"
	SortKeyNameDesc   SortKey = "name_desc"
	SortKeyAmountAsc  SortKey = "amount_asc"
	SortKeyAmountDesc SortKey = "amount_desc"
)

var validSortKeys = []SortKey{
	SortKeyColor,
	SortKeyNameAsc,
	SortKeyNameDesc,
	SortKeyAmountAsc,
	SortKeyAmountDesc,
}

// String implements fmt.Stringer.
func (s SortKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortKey.
func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey.
func ParseSortKey(value string) (SortKey, error) {
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
