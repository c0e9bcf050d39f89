package blob

import "errors"

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("blob: key not found")

// IsNotFound reports whether err means an absent key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
