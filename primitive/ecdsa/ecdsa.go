// Package ecdsa signs messages with secp256k1 ECDSA.
//
// Messages are hashed with Keccak-256 before signing. Signatures are the 65
// byte compact (recoverable) form and addresses are derived the way chain
// accounts are: the last 20 bytes of the Keccak-256 hash of the uncompressed
// public key without its prefix byte.
package ecdsa

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	decdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/zeebo/errs"
	"golang.org/x/crypto/sha3"
)

// Error is the class of ecdsa primitive errors.
var Error = errs.Class("ecdsa")

// Sizes in bytes.
const (
	ScalarSize    = 32
	PublicKeySize = 33
	SignatureSize = 65
	AddressSize   = 20
)

// Primitive is the ECDSA signing primitive. The zero value is ready to use.
type Primitive struct{}

// New returns the primitive.
func New() Primitive {
	return Primitive{}
}

func keccak(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}

	return h.Sum(nil)
}

func validScalar(b []byte) bool {
	var s secp256k1.ModNScalar

	overflow := s.SetByteSlice(b)

	return !overflow && !s.IsZero()
}

// ScalarFromSeed hashes seed until the digest is a valid scalar.
func (Primitive) ScalarFromSeed(seed []byte) (scalar []byte, err error) {
	if len(seed) == 0 {
		return nil, Error.New("empty seed")
	}

	scalar = keccak(seed)
	for !validScalar(scalar) {
		scalar = keccak(scalar)
	}

	return scalar, nil
}

func privateKey(scalar []byte) (priv *secp256k1.PrivateKey, err error) {
	if len(scalar) != ScalarSize {
		return nil, Error.New("scalar must be %d bytes, got %d", ScalarSize, len(scalar))
	}

	if !validScalar(scalar) {
		return nil, Error.New("scalar out of range")
	}

	return secp256k1.PrivKeyFromBytes(scalar), nil
}

// PublicKey returns the compressed public key of scalar.
func (Primitive) PublicKey(scalar []byte) (pubKey []byte, err error) {
	priv, err := privateKey(scalar)
	if err != nil {
		return nil, err
	}

	return priv.PubKey().SerializeCompressed(), nil
}

// Sign signs the Keccak-256 hash of msg.
func (Primitive) Sign(scalar, msg []byte) (sig []byte, err error) {
	priv, err := privateKey(scalar)
	if err != nil {
		return nil, err
	}

	return decdsa.SignCompact(priv, keccak(msg), true), nil
}

// Verify recovers the signing key from sig and compares it to pubKey.
func (Primitive) Verify(pubKey, msg, sig []byte) (ok bool, err error) {
	want, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return false, Error.Wrap(err)
	}

	if len(sig) != SignatureSize {
		return false, Error.New("signature must be %d bytes, got %d", SignatureSize, len(sig))
	}

	got, _, err := decdsa.RecoverCompact(sig, keccak(msg))
	if err != nil {
		// Unrecoverable signatures are invalid, not failures.
		return false, nil
	}

	return got.IsEqual(want), nil
}

// Address derives the chain address of pubKey.
func (Primitive) Address(pubKey []byte) (addr []byte, err error) {
	pub, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return nil, Error.Wrap(err)
	}

	return keccak(pub.SerializeUncompressed()[1:])[32-AddressSize:], nil
}
