package floatpack

import (
	"math/big"

	"github.com/zeebo/errs"

	"github.com/matter-labs-archive/zksync-go/codecerr"
)

// Error is the class of malformed packed input.
var Error = errs.Class("floatpack")

// Schema describes a compact float format.
type Schema struct {
	ExponentBits uint
	MantissaBits uint

	// Base defaults to 10 when zero.
	Base int64
}

// Formats used by rollup transactions.
var (
	// Amount packs transfer and withdrawal amounts into 5 bytes. Every amount
	// below 2^35 is packable as is, so 1000000003 is its own closest packable
	// amount. Rounding it to 1000000000 needs the 19 bit mantissa of early
	// clients, Schema{ExponentBits: 5, MantissaBits: 19}.
	Amount = Schema{ExponentBits: 5, MantissaBits: 35, Base: 10}

	// Fee packs fees into 2 bytes.
	Fee = Schema{ExponentBits: 5, MantissaBits: 11, Base: 10}
)

// Size is the number of bytes an encoded value occupies.
func (s Schema) Size() int {
	return int((s.ExponentBits + s.MantissaBits + 7) / 8)
}

// MaxMantissa returns 2^MantissaBits - 1.
func (s Schema) MaxMantissa() *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), s.MantissaBits)

	return m.Sub(m, big.NewInt(1))
}

// MaxExponent returns 2^ExponentBits - 1.
func (s Schema) MaxExponent() uint64 {
	return 1<<s.ExponentBits - 1
}

// Max returns the largest value the schema can encode.
func (s Schema) Max() *big.Int {
	f := s.factor(s.MaxExponent())

	return f.Mul(f, s.MaxMantissa())
}

func (s Schema) base() *big.Int {
	if s.Base == 0 {
		return big.NewInt(10)
	}

	return big.NewInt(s.Base)
}

func (s Schema) factor(exponent uint64) *big.Int {
	return new(big.Int).Exp(s.base(), new(big.Int).SetUint64(exponent), nil)
}

// split divides value by the base until the mantissa fits.
func (s Schema) split(value *big.Int) (exponent uint64, mantissa *big.Int) {
	maxMantissa := s.MaxMantissa()
	base := s.base()

	mantissa = new(big.Int).Set(value)
	for mantissa.Cmp(maxMantissa) > 0 {
		mantissa.Quo(mantissa, base)
		exponent++
	}

	return exponent, mantissa
}

// Encode writes value in the packed layout: the big-endian bytes of
// mantissa<<ExponentBits | exponent. Digits that do not fit the mantissa are
// truncated; use Pack to reject such values instead.
func (s Schema) Encode(value *big.Int) (data []byte, err error) {
	if value == nil || value.Sign() < 0 {
		return nil, codecerr.Range.New("negative value: %v", value)
	}

	limit := s.Max()
	if value.Cmp(limit) > 0 {
		return nil, codecerr.EncodingOverflow.New("%s exceeds %s", value, limit)
	}

	exponent, mantissa := s.split(value)

	word := new(big.Int).Lsh(mantissa, s.ExponentBits)
	word.Or(word, new(big.Int).SetUint64(exponent))

	return word.FillBytes(make([]byte, s.Size())), nil
}

// Decode reads a value written by Encode. Exponent bits are the low-order
// bits of the big-endian word.
func (s Schema) Decode(data []byte) (value *big.Int, err error) {
	if len(data) != s.Size() {
		return nil, Error.New("expected %d bytes, got %d", s.Size(), len(data))
	}

	word := new(big.Int).SetBytes(data)
	if uint(word.BitLen()) > s.ExponentBits+s.MantissaBits {
		return nil, Error.New("padding bits set: %x", data)
	}

	exponent := new(big.Int).And(word, new(big.Int).SetUint64(s.MaxExponent()))
	mantissa := word.Rsh(word, s.ExponentBits)

	value = s.factor(exponent.Uint64())

	return value.Mul(value, mantissa), nil
}

// Closest returns the value that encoding and then decoding value produces:
// the largest representable number not above value.
func (s Schema) Closest(value *big.Int) (closest *big.Int, err error) {
	data, err := s.Encode(value)
	if err != nil {
		return nil, err
	}

	return s.Decode(data)
}

// Packable reports whether value survives a round trip unchanged.
func (s Schema) Packable(value *big.Int) bool {
	closest, err := s.Closest(value)
	if err != nil {
		return false
	}

	return closest.Cmp(value) == 0
}

// Pack encodes value, failing when the encoding would lose digits.
func (s Schema) Pack(value *big.Int) (data []byte, err error) {
	data, err = s.Encode(value)
	if err != nil {
		return nil, err
	}

	closest, err := s.Decode(data)
	if err != nil {
		return nil, err
	}

	if closest.Cmp(value) != 0 {
		return nil, codecerr.NotPackable.New("%s (closest packable is %s)", value, closest)
	}

	return data, nil
}

// Unpack is the inverse of Pack.
func (s Schema) Unpack(data []byte) (value *big.Int, err error) {
	return s.Decode(data)
}

// PackAmount packs a transaction amount.
func PackAmount(amount *big.Int) ([]byte, error) { return Amount.Pack(amount) }

// PackFee packs a transaction fee.
func PackFee(fee *big.Int) ([]byte, error) { return Fee.Pack(fee) }

// UnpackAmount decodes a packed transaction amount.
func UnpackAmount(data []byte) (*big.Int, error) { return Amount.Unpack(data) }

// UnpackFee decodes a packed transaction fee.
func UnpackFee(data []byte) (*big.Int, error) { return Fee.Unpack(data) }

// ClosestPackableAmount rounds amount down to the nearest packable amount.
func ClosestPackableAmount(amount *big.Int) (*big.Int, error) { return Amount.Closest(amount) }

// ClosestPackableFee rounds fee down to the nearest packable fee.
func ClosestPackableFee(fee *big.Int) (*big.Int, error) { return Fee.Closest(fee) }

// IsPackableAmount reports whether amount can be packed without loss.
func IsPackableAmount(amount *big.Int) bool { return Amount.Packable(amount) }

// IsPackableFee reports whether fee can be packed without loss.
func IsPackableFee(fee *big.Int) bool { return Fee.Packable(fee) }
