package enums

import "fmt"

// GroupSelectionMode controls whether picking a group deselects the others.
type GroupSelectionMode string

const (
	GroupSelectionModeSingle GroupSelectionMode = "single"
	GroupSelectionModeMulti  GroupSelectionMode = "multi"
)

var validGroupSelectionModes = []GroupSelectionMode{
	GroupSelectionModeSingle,
	GroupSelectionModeMulti,
}

// String implements fmt.Stringer.
func (g GroupSelectionMode) String() string {
	return string(g)
}

// IsValid reports whether the value is a known GroupSelectionMode.
func (g GroupSelectionMode) IsValid() bool {
	for _, candidate := range validGroupSelectionModes {
		if candidate == g {
			return true
		}
	}
	return false
}

// Toggled returns the other selection mode.
func (g GroupSelectionMode) Toggled() GroupSelectionMode {
	if g == GroupSelectionModeSingle {
		return GroupSelectionModeMulti
	}
	return GroupSelectionModeSingle
}

// ParseGroupSelectionMode converts raw input into a GroupSelectionMode.
func ParseGroupSelectionMode(value string) (GroupSelectionMode, error) {
	for _, candidate := range validGroupSelectionModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid group selection mode %q", value)
}
