package enums

import "fmt"

// ListKind names one of the two views every item can belong to.
type ListKind string

const (
	ListKindShopping  ListKind = "shopping_list"
	ListKindInventory ListKind = "inventory"
)

var validListKinds = []ListKind{
	ListKindShopping,
	ListKindInventory,
}

// String implements fmt.Stringer.
func (l ListKind) String() string {
	return string(l)
}

// IsValid reports whether the value is a known ListKind.
func (l ListKind) IsValid() bool {
	for _, candidate := range validListKinds {
		if candidate == l {
			return true
		}
	}
	return false
}

// Other returns the opposite list.
func (l ListKind) Other() ListKind {
	if l == ListKindShopping {
		return ListKindInventory
	}
	return ListKindShopping
}

// ParseListKind converts raw input into a ListKind.
func ParseListKind(value string) (ListKind, error) {
	for _, candidate := range validListKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid list kind %q", value)
}
