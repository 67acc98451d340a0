//go:build !linux && !darwin && !windows

package clip

import "fmt"

// NewSystem reports ErrUnavailable: golang.design/x/clipboard has no
// implementation for this platform.
func NewSystem() (Backend, error) {
	return nil, fmt.Errorf("%w: no native clipboard on this platform", ErrUnavailable)
}
