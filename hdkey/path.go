package hdkey

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcwalletorg/libbtcwallet-go/network"
)

// HardenedOffset is the index bit that marks hardened derivation.
const HardenedOffset uint32 = 0x80000000

// ChildNumber is a BIP32 child index, hardened bit included.
type ChildNumber uint32

// Normal returns the non-hardened child number for index i.
func Normal(i uint32) ChildNumber {
	return ChildNumber(i &^ HardenedOffset)
}

// Hardened returns the hardened child number for index i.
func Hardened(i uint32) ChildNumber {
	return ChildNumber(i | HardenedOffset)
}

// IsHardened reports whether the child number uses hardened derivation.
func (c ChildNumber) IsHardened() bool {
	return uint32(c)&HardenedOffset != 0
}

// Index returns the index without the hardened bit.
func (c ChildNumber) Index() uint32 {
	return uint32(c) &^ HardenedOffset
}

// String renders the index with a trailing apostrophe when hardened.
func (c ChildNumber) String() string {
	if c.IsHardened() {
		return strconv.FormatUint(uint64(c.Index()), 10) + "'"
	}
	return strconv.FormatUint(uint64(c.Index()), 10)
}

// Path is an ordered list of child numbers below a key. Derivation walks
// it left to right.
type Path []ChildNumber

// ParsePath parses a path of the form m/44'/0'/0'/0/0. Hardened components
// end in ' or h.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(s, "/")
	if parts[0] != "m" {
		return nil, fmt.Errorf("%w: %q must start with m/", ErrInvalidPath, s)
	}

	path := make(Path, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := false
		if strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h") {
			hardened = true
			part = part[:len(part)-1]
		}
		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil || index >= uint64(HardenedOffset) {
			return nil, fmt.Errorf("%w: component %q in %q", ErrInvalidChildNumber, part, s)
		}
		if hardened {
			path = append(path, Hardened(uint32(index)))
		} else {
			path = append(path, Normal(uint32(index)))
		}
	}
	return path, nil
}

// BIP44Path builds m/44'/coin'/account'/change/index for the network's
// coin type.
func BIP44Path(params *network.Params, account, change, index uint32) Path {
	return Path{Hardened(44), Hardened(params.HDCoinType), Hardened(account), Normal(change), Normal(index)}
}

// BIP49Path builds m/49'/coin'/account'/change/index for the network's
// coin type. Deriving it forces the child format to P2SH-P2WPKH.
func BIP49Path(params *network.Params, account, change, index uint32) Path {
	return Path{Hardened(49), Hardened(params.HDCoinType), Hardened(account), Normal(change), Normal(index)}
}

// IsBIP49 reports whether the path is a full five-level BIP49 path.
func (p Path) IsBIP49() bool {
	return len(p) == 5 &&
		p[0] == Hardened(49) && p[1].IsHardened() && p[2].IsHardened() &&
		!p[3].IsHardened() && !p[4].IsHardened()
}

// String renders the path with a leading m.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, c := range p {
		b.WriteString("/")
		b.WriteString(c.String())
	}
	return b.String()
}
