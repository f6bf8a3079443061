// Package edwards signs messages with EdDSA over the twisted Edwards curve
// embedded in BN254.
//
// A private key is a 32 byte big-endian scalar. Public keys are 32 byte
// compressed points and signatures are the 64 byte R || S encoding. Message
// hashing inside the signature uses SHA3-256, and nonces are derived from
// the scalar, so signing the same message with the same key always yields
// the same signature.
package edwards

import (
	"bytes"
	"math/big"

	"github.com/calebcase/oops"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards/eddsa"
	"github.com/zeebo/errs"
	"golang.org/x/crypto/sha3"
)

// Error is the class of edwards primitive errors.
var Error = errs.Class("edwards")

// Sizes in bytes.
const (
	ScalarSize    = 32
	PublicKeySize = 32
	SignatureSize = 64
	AddressSize   = 20
)

// Primitive is the EdDSA signing primitive. The zero value is ready to use.
type Primitive struct{}

// New returns the primitive.
func New() Primitive {
	return Primitive{}
}

// ScalarFromSeed expands an arbitrary seed into a private scalar. The key
// derivation prunes the scalar to 254 bits, so it is reduced modulo the
// subgroup order before use.
func (Primitive) ScalarFromSeed(seed []byte) (scalar []byte, err error) {
	if len(seed) == 0 {
		return nil, Error.New("empty seed")
	}

	h := sha3.Sum256(seed)

	priv, err := eddsa.GenerateKey(bytes.NewReader(h[:]))
	if err != nil {
		return nil, Error.Wrap(err)
	}

	buf := priv.Bytes()

	s := new(big.Int).SetBytes(buf[PublicKeySize : PublicKeySize+ScalarSize])
	curve := twistededwards.GetEdwardsCurve()
	s.Mod(s, &curve.Order)

	if s.Sign() == 0 {
		return nil, Error.New("seed derives the zero scalar")
	}

	return s.FillBytes(make([]byte, ScalarSize)), nil
}

// checkScalar accepts scalars in [1, order).
func checkScalar(scalar []byte) (s *big.Int, err error) {
	if len(scalar) != ScalarSize {
		return nil, Error.New("scalar must be %d bytes, got %d", ScalarSize, len(scalar))
	}

	s = new(big.Int).SetBytes(scalar)
	if s.Sign() == 0 {
		return nil, Error.New("zero scalar")
	}

	curve := twistededwards.GetEdwardsCurve()
	if s.Cmp(&curve.Order) >= 0 {
		return nil, Error.New("scalar not below the subgroup order")
	}

	return s, nil
}

// PublicKey returns the compressed public point of scalar.
func (Primitive) PublicKey(scalar []byte) (pubKey []byte, err error) {
	s, err := checkScalar(scalar)
	if err != nil {
		return nil, err
	}

	curve := twistededwards.GetEdwardsCurve()

	var p twistededwards.PointAffine
	p.ScalarMultiplication(&curve.Base, s)

	b := p.Bytes()

	return b[:], nil
}

func privateKey(scalar []byte) (priv *eddsa.PrivateKey, err error) {
	pub, err := Primitive{}.PublicKey(scalar)
	if err != nil {
		return nil, err
	}

	randSrc := sha3.Sum256(scalar)

	buf := make([]byte, 0, PublicKeySize+ScalarSize+len(randSrc))
	buf = append(buf, pub...)
	buf = append(buf, scalar...)
	buf = append(buf, randSrc[:]...)

	priv = &eddsa.PrivateKey{}

	_, err = priv.SetBytes(buf)
	if err != nil {
		return nil, Error.Wrap(err)
	}

	return priv, nil
}

// Sign signs msg with scalar.
func (Primitive) Sign(scalar, msg []byte) (sig []byte, err error) {
	priv, err := privateKey(scalar)
	if err != nil {
		return nil, err
	}

	sig, err = priv.Sign(msg, sha3.New256())
	if err != nil {
		return nil, oops.Trace(err)
	}

	return sig, nil
}

// Verify reports whether sig is a valid signature of msg by pubKey.
func (Primitive) Verify(pubKey, msg, sig []byte) (ok bool, err error) {
	if len(pubKey) != PublicKeySize {
		return false, Error.New("public key must be %d bytes, got %d", PublicKeySize, len(pubKey))
	}

	if len(sig) != SignatureSize {
		return false, Error.New("signature must be %d bytes, got %d", SignatureSize, len(sig))
	}

	var pub eddsa.PublicKey

	_, err = pub.SetBytes(pubKey)
	if err != nil {
		return false, Error.Wrap(err)
	}

	ok, err = pub.Verify(sig, msg, sha3.New256())
	if err != nil {
		// Malformed signatures are invalid, not failures.
		return false, nil
	}

	return ok, nil
}

// Address is the last 20 bytes of the Keccak-256 hash of the compressed
// public key.
func (Primitive) Address(pubKey []byte) (addr []byte, err error) {
	if len(pubKey) != PublicKeySize {
		return nil, Error.New("public key must be %d bytes, got %d", PublicKeySize, len(pubKey))
	}

	h := sha3.NewLegacyKeccak256()
	h.Write(pubKey)

	return h.Sum(nil)[32-AddressSize:], nil
}
