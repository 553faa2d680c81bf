package option

import "github.com/pkg/errors"

var (
	// ErrInvalidParameter is returned by Params.Validate before any simulation cost is paid.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidInput marks corrupted input handed to a pricer, e.g. a non-positive terminal price.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNumericOverflow is surfaced when a parameter combination produces non-finite prices.
	ErrNumericOverflow = errors.New("numeric overflow")
)
