// Package address parses and renders 20 byte account addresses.
//
// An address has two textual forms that decode to the same bytes:
//
//	0x1234...cdef     chain-native (Ethereum style)
//	sync:1234...cdef  rollup-native
//
// Both are rendered as lowercase hex.
package address

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/matter-labs-archive/zksync-go/codecerr"
)

// Length of an address in bytes.
const Length = 20

// Textual prefixes.
const (
	HexPrefix  = "0x"
	SyncPrefix = "sync:"
)

var (
	// ErrBadPrefix is returned for strings without a known prefix.
	ErrBadPrefix = errors.New("bad address prefix")

	// ErrBadLength is returned when the decoded address is not 20 bytes.
	ErrBadLength = errors.New("bad address length")
)

// Address is a 20 byte account address.
type Address [Length]byte

// Parse decodes either textual form.
func Parse(s string) (a Address, err error) {
	var data []byte

	switch {
	case strings.HasPrefix(s, HexPrefix):
		data, err = hexutil.Decode(s)
	case strings.HasPrefix(s, SyncPrefix):
		rest := s[len(SyncPrefix):]
		if strings.ToLower(rest) != rest {
			return a, codecerr.AddressFormat.New("%q: sync addresses are lowercase", s)
		}

		data, err = hex.DecodeString(rest)
	default:
		return a, codecerr.AddressFormat.Wrap(ErrBadPrefix)
	}

	if err != nil {
		return a, codecerr.AddressFormat.New("%q: %v", s, err)
	}

	return FromBytes(data)
}

// MustParse is Parse for constants. It panics on error.
func MustParse(s string) Address {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return a
}

// FromBytes copies exactly 20 bytes into an address.
func FromBytes(data []byte) (a Address, err error) {
	if len(data) != Length {
		return a, codecerr.AddressFormat.Wrap(ErrBadLength)
	}

	copy(a[:], data)

	return a, nil
}

// FromCommon converts a go-ethereum address.
func FromCommon(c common.Address) Address {
	return Address(c)
}

// Bytes returns a copy of the address bytes.
func (a Address) Bytes() []byte {
	return append([]byte(nil), a[:]...)
}

// Hex renders the 0x form.
func (a Address) Hex() string {
	return hexutil.Encode(a[:])
}

// Sync renders the sync: form.
func (a Address) Sync() string {
	return SyncPrefix + hex.EncodeToString(a[:])
}

// String renders the sync: form.
func (a Address) String() string {
	return a.Sync()
}

// Common converts to a go-ethereum address.
func (a Address) Common() common.Address {
	return common.Address(a)
}

// IsZero reports whether every byte is zero.
func (a Address) IsZero() bool {
	return a == Address{}
}
