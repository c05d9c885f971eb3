package txscript

import "errors"

var (
	// ErrUnsupportedFormat indicates an address format with no script
	// template.
	ErrUnsupportedFormat = errors.New("txscript: unsupported address format")

	// ErrInvalidScript indicates an address whose payload cannot be
	// re-decoded into script form.
	ErrInvalidScript = errors.New("txscript: invalid script payload")
)
