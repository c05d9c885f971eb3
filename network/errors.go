package network

import "errors"

var (
	// ErrUnknownNetwork indicates a network name with no parameter table.
	ErrUnknownNetwork = errors.New("network: unknown network")

	// ErrInvalidPrefix indicates an address prefix byte that belongs to no
	// format on the network.
	ErrInvalidPrefix = errors.New("network: invalid address prefix")

	// ErrInvalidVersionBytes indicates extended-key version bytes that
	// belong to no format on the network.
	ErrInvalidVersionBytes = errors.New("network: invalid extended key version bytes")

	// ErrUnsupportedFormat indicates a format with no extended-key version
	// bytes (bech32 formats have no BIP32 serialization).
	ErrUnsupportedFormat = errors.New("network: format has no extended key version bytes")
)
