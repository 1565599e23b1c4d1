package backport

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a dotted numeric release version, e.g. "5.10".
// Components are compared numerically, "5.10" is newer than "5.9".
type Version struct {
	parts []int
	str   string
}

func ParseVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, fmt.Errorf("version is empty")
	}

	components := strings.Split(s, ".")
	parts := make([]int, 0, len(components))
	for _, component := range components {
		nr, err := strconv.Atoi(component)
		if err != nil || nr < 0 {
			return Version{}, fmt.Errorf("invalid version %q: component %q is not a positive number", s, component)
		}

		parts = append(parts, nr)
	}

	return Version{parts: parts, str: s}, nil
}

// Compare returns a negative number if v is older than other, 0 if they are
// equal and a positive number if v is newer.
// Missing components compare as 0, "5" and "5.0" are equal.
func (v Version) Compare(other Version) int {
	for i := 0; i < len(v.parts) || i < len(other.parts); i++ {
		var a, b int
		if i < len(v.parts) {
			a = v.parts[i]
		}
		if i < len(other.parts) {
			b = other.parts[i]
		}

		if a != b {
			return a - b
		}
	}

	return 0
}

func (v Version) String() string {
	return v.str
}
