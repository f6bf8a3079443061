// Package integer encodes unsigned integers as fixed width big-endian fields.
package integer

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/zeebo/errs"

	"github.com/matter-labs-archive/zksync-go/codecerr"
)

// Error is the class of malformed integer fields.
var Error = errs.Class("integer")

// Schema for a fixed width integer field.
type Schema struct {
	// Size is the field width in bytes (at most 32).
	Size int

	// Limit is the exclusive upper bound. When nil the bound is
	// 2^(8*Size).
	Limit *uint256.Int
}

// Bound returns the exclusive upper bound of the field, or nil when every
// 256 bit value fits.
func (s Schema) Bound() *uint256.Int {
	if s.Limit != nil {
		return s.Limit
	}

	if s.Size >= 32 {
		return nil
	}

	return new(uint256.Int).Lsh(uint256.NewInt(1), uint(8*s.Size))
}

// Fits reports whether v is inside the field's range.
func (s Schema) Fits(v *uint256.Int) bool {
	bound := s.Bound()

	return bound == nil || v.Lt(bound)
}

// Encode writes v as exactly Size big-endian bytes.
func (s Schema) Encode(v *uint256.Int) (data []byte, err error) {
	if v == nil {
		return nil, codecerr.Range.New("missing value")
	}

	if !s.Fits(v) {
		return nil, codecerr.Range.New("%s does not fit below %s", v.Dec(), s.Bound().Dec())
	}

	return v.PaddedBytes(s.Size), nil
}

// EncodeUint64 is Encode for small values.
func (s Schema) EncodeUint64(v uint64) (data []byte, err error) {
	return s.Encode(uint256.NewInt(v))
}

// EncodeBig is Encode for arbitrary precision values. Negative values are
// rejected.
func (s Schema) EncodeBig(v *big.Int) (data []byte, err error) {
	if v == nil || v.Sign() < 0 {
		return nil, codecerr.Range.New("negative value: %v", v)
	}

	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil, codecerr.Range.New("%s does not fit 256 bits", v)
	}

	return s.Encode(u)
}

// Decode parses exactly Size big-endian bytes.
func (s Schema) Decode(data []byte) (v *uint256.Int, err error) {
	if len(data) != s.Size {
		return nil, Error.New("expected %d bytes, got %d", s.Size, len(data))
	}

	v = new(uint256.Int).SetBytes(data)
	if !s.Fits(v) {
		return nil, codecerr.Range.New("%s does not fit below %s", v.Dec(), s.Bound().Dec())
	}

	return v, nil
}

// Block is an integer bound to its schema.
type Block struct {
	Schema Schema
	Value  *uint256.Int
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (b Block) MarshalBinary() (data []byte, err error) {
	return b.Schema.Encode(b.Value)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The schema must be
// set before calling.
func (b *Block) UnmarshalBinary(data []byte) (err error) {
	v, err := b.Schema.Decode(data)
	if err != nil {
		return err
	}

	b.Value = v

	return nil
}
