package zksync

import (
	"encoding/hex"

	"github.com/matter-labs-archive/zksync-go/primitive/ecdsa"
	"github.com/matter-labs-archive/zksync-go/primitive/edwards"
)

// Primitive is an external signing scheme. Keys, signatures and addresses
// are opaque byte strings to the rest of this module.
type Primitive interface {
	// ScalarFromSeed deterministically expands seed into a private scalar.
	ScalarFromSeed(seed []byte) (scalar []byte, err error)
	PublicKey(scalar []byte) (pubKey []byte, err error)
	Sign(scalar, msg []byte) (sig []byte, err error)
	Verify(pubKey, msg, sig []byte) (ok bool, err error)
	// Address derives the 20 byte account address of pubKey.
	Address(pubKey []byte) (addr []byte, err error)
}

// Backend names.
const (
	BackendEdwards = "edwards"
	BackendECDSA   = "ecdsa"
)

// Backend returns the primitive registered under name. The empty name
// selects the edwards primitive.
func Backend(name string) (p Primitive, err error) {
	switch name {
	case "", BackendEdwards:
		return edwards.New(), nil
	case BackendECDSA:
		return ecdsa.New(), nil
	}

	return nil, Error.New("unknown backend: %q", name)
}

// HexBytes is rendered as lowercase hex without a prefix.
type HexBytes []byte

func (b HexBytes) String() string {
	return hex.EncodeToString(b)
}

// MarshalText implements encoding.TextMarshaler.
func (b HexBytes) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(b)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *HexBytes) UnmarshalText(text []byte) (err error) {
	data, err := hex.DecodeString(string(text))
	if err != nil {
		return Error.Wrap(err)
	}

	*b = data

	return nil
}

// Signature is a signature together with the public key that verifies it.
type Signature struct {
	PubKey    HexBytes `json:"pubKey"`
	Signature HexBytes `json:"signature"`
}
