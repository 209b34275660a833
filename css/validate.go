package css

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// ErrInvalidPrefix is returned when scoping token cannot be used as custom
// element name.
var ErrInvalidPrefix = errors.New("invalid scoping prefix")

// ValidPrefix checks that name may serve both as a custom element tag and as
// a selector prefix. It has to start with a lowercase letter, contain a
// hyphen and otherwise be a slug.
func ValidPrefix(name string) error {
	switch {
	case len(name) == 0:
		return fmt.Errorf("%w: empty name", ErrInvalidPrefix)
	case name[0] < 'a' || name[0] > 'z':
		return fmt.Errorf("%w: %q must start with lowercase ASCII letter", ErrInvalidPrefix, name)
	case !strings.Contains(name, "-"):
		return fmt.Errorf("%w: %q must contain hyphen", ErrInvalidPrefix, name)
	case !slug.IsSlug(name):
		return fmt.Errorf("%w: %q may only contain lowercase letters, digits, hyphens and underscores and may not end with either", ErrInvalidPrefix, name)
	}
	return nil
}
