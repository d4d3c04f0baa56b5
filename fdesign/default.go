package fdesign

import (
	"sync"

	"github.com/cwbudde/algo-em/dlf"
)

var defaultHankel struct {
	once sync.Once
	filt *dlf.Filter
	err  error
}

// DefaultHankel returns the package's 201-point Hankel J0/J1 filter,
// designed once on first use with a known-good spacing and shift and
// cached for subsequent calls. The returned filter is shared and must
// not be modified.
func DefaultHankel() (*dlf.Filter, error) {
	defaultHankel.once.Do(func() {
		defaultHankel.filt, _, defaultHankel.err = Design(
			201,
			Fixed(0.0641),
			Fixed(-1.2847),
			[]Ghosh{J01(5), J11(5)},
			WithName("hankel_201"),
		)
	})

	return defaultHankel.filt, defaultHankel.err
}
