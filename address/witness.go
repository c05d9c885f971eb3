package address

import "fmt"

// Witness program bounds per BIP141.
const (
	minProgramLen = 2
	maxProgramLen = 40
	maxVersion    = 16
)

// WitnessProgram is a segwit version byte and its program payload.
type WitnessProgram struct {
	Version uint8
	Program []byte
}

// NewWitnessProgram parses the version byte, declared program length and
// program from data, then validates the version/length rules: programs
// are 2..40 bytes, versions at most 16, and version 0 programs exactly 20
// or 32 bytes.
func NewWitnessProgram(data []byte) (*WitnessProgram, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidProgramLength, len(data))
	}
	version, declared, program := data[0], int(data[1]), data[2:]
	if declared != len(program) {
		return nil, fmt.Errorf("%w: expected %d, found %d", ErrMismatchedProgramLength, declared, len(program))
	}

	wp := &WitnessProgram{Version: version, Program: program}
	if err := wp.Validate(); err != nil {
		return nil, err
	}
	return wp, nil
}

// Validate checks the version/length rules.
func (wp *WitnessProgram) Validate() error {
	if len(wp.Program) < minProgramLen || len(wp.Program) > maxProgramLen {
		return fmt.Errorf("%w: %d bytes", ErrInvalidProgramLength, len(wp.Program))
	}
	if wp.Version > maxVersion {
		return fmt.Errorf("%w: %d", ErrInvalidVersion, wp.Version)
	}
	if wp.Version == 0 && len(wp.Program) != 20 && len(wp.Program) != 32 {
		return fmt.Errorf("%w: %d bytes for version 0", ErrInvalidProgramLengthForVersion, len(wp.Program))
	}
	return nil
}
