package tx

import "errors"

var (
	// ErrInvalidVarInt indicates a variable-length integer that is not
	// canonically minimal or implausibly large.
	ErrInvalidVarInt = errors.New("tx: invalid variable size integer")

	// ErrInvalidSegwitFlag indicates a segwit marker followed by a flag
	// byte other than 0x01.
	ErrInvalidSegwitFlag = errors.New("tx: invalid segwit flag")

	// ErrInvalidOutpoint indicates a malformed outpoint reference.
	ErrInvalidOutpoint = errors.New("tx: invalid outpoint")

	// ErrMissingScript indicates an input whose outpoint carries no
	// script to sign against.
	ErrMissingScript = errors.New("tx: missing outpoint script")

	// ErrInvalidInputs indicates input data inconsistent with its address
	// format, such as a missing witness script.
	ErrInvalidInputs = errors.New("tx: invalid inputs")
)
