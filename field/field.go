// Package field serializes individual transaction fields into their fixed
// width wire form.
//
//  | field          | domain                  | bytes |
//  |----------------|-------------------------|-------|
//  | address        | 0x.. or sync:..         | 20    |
//  | account id     | [0, 2^24)               | 3     |
//  | token id       | [0, 4096)               | 2     |
//  | nonce          | [0, 2^32)               | 4     |
//  | packed amount  | packable, see floatpack | 5     |
//  | full amount    | [0, 2^128)              | 16    |
//  | packed fee     | packable, see floatpack | 2     |
//  |----------------|-------------------------|-------|
//
// Integers are big-endian. Every function validates before producing any
// output.
package field

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/matter-labs-archive/zksync-go/address"
	"github.com/matter-labs-archive/zksync-go/codecerr"
	"github.com/matter-labs-archive/zksync-go/floatpack"
	"github.com/matter-labs-archive/zksync-go/integer"
)

// Field widths in bytes.
const (
	AddressSize      = address.Length
	AccountIDSize    = 3
	TokenIDSize      = 2
	NonceSize        = 4
	PackedAmountSize = 5
	FullAmountSize   = 16
	PackedFeeSize    = 2
)

// Exclusive upper bounds.
const (
	MaxAccountID = 1 << 24
	MaxTokenID   = 4096
	MaxNonce     = 1 << 32
)

var (
	ErrNegativeID     = errors.New("negative id")
	ErrIDTooLarge     = errors.New("id too large")
	ErrNegativeNonce  = errors.New("negative nonce")
	ErrNonceTooLarge  = errors.New("nonce too large")
	ErrNegativeAmount = errors.New("negative amount")
	ErrAmountTooLarge = errors.New("amount too large")
)

var (
	accountIDSchema  = integer.Schema{Size: AccountIDSize, Limit: uint256.NewInt(MaxAccountID)}
	tokenIDSchema    = integer.Schema{Size: TokenIDSize, Limit: uint256.NewInt(MaxTokenID)}
	nonceSchema      = integer.Schema{Size: NonceSize}
	fullAmountSchema = integer.Schema{Size: FullAmountSize}
)

func rangeErr(kind error, v interface{}) error {
	return codecerr.Range.Wrap(fmt.Errorf("%w: %v", kind, v))
}

// Address decodes either textual address form.
func Address(s string) (data []byte, err error) {
	a, err := address.Parse(s)
	if err != nil {
		return nil, err
	}

	return a.Bytes(), nil
}

// AccountID encodes an account id.
func AccountID(id int64) (data []byte, err error) {
	if id < 0 {
		return nil, rangeErr(ErrNegativeID, id)
	}

	if id >= MaxAccountID {
		return nil, rangeErr(ErrIDTooLarge, id)
	}

	return accountIDSchema.EncodeUint64(uint64(id))
}

// TokenID encodes a token id.
func TokenID(id int64) (data []byte, err error) {
	if id < 0 {
		return nil, rangeErr(ErrNegativeID, id)
	}

	if id >= MaxTokenID {
		return nil, rangeErr(ErrIDTooLarge, id)
	}

	return tokenIDSchema.EncodeUint64(uint64(id))
}

// Nonce encodes an account nonce.
func Nonce(n int64) (data []byte, err error) {
	if n < 0 {
		return nil, rangeErr(ErrNegativeNonce, n)
	}

	if n >= MaxNonce {
		return nil, rangeErr(ErrNonceTooLarge, n)
	}

	return nonceSchema.EncodeUint64(uint64(n))
}

// PackedAmount encodes an amount in the 5 byte compact float format. The
// amount must be packable.
func PackedAmount(v *big.Int) (data []byte, err error) {
	if v == nil || v.Sign() < 0 {
		return nil, rangeErr(ErrNegativeAmount, v)
	}

	return floatpack.Amount.Pack(v)
}

// FullAmount encodes an amount as 16 big-endian bytes.
func FullAmount(v *big.Int) (data []byte, err error) {
	if v == nil || v.Sign() < 0 {
		return nil, rangeErr(ErrNegativeAmount, v)
	}

	if v.BitLen() > 8*FullAmountSize {
		return nil, rangeErr(ErrAmountTooLarge, v)
	}

	return fullAmountSchema.EncodeBig(v)
}

// PackedFee encodes a fee in the 2 byte compact float format. The fee must be
// packable.
func PackedFee(v *big.Int) (data []byte, err error) {
	if v == nil || v.Sign() < 0 {
		return nil, rangeErr(ErrNegativeAmount, v)
	}

	return floatpack.Fee.Pack(v)
}

// ParseAddress is the inverse of Address.
func ParseAddress(data []byte) (address.Address, error) {
	return address.FromBytes(data)
}

// ParseAccountID is the inverse of AccountID.
func ParseAccountID(data []byte) (uint32, error) {
	v, err := accountIDSchema.Decode(data)
	if err != nil {
		return 0, err
	}

	return uint32(v.Uint64()), nil
}

// ParseTokenID is the inverse of TokenID.
func ParseTokenID(data []byte) (uint16, error) {
	v, err := tokenIDSchema.Decode(data)
	if err != nil {
		return 0, err
	}

	return uint16(v.Uint64()), nil
}

// ParseNonce is the inverse of Nonce.
func ParseNonce(data []byte) (uint32, error) {
	v, err := nonceSchema.Decode(data)
	if err != nil {
		return 0, err
	}

	return uint32(v.Uint64()), nil
}

// ParsePackedAmount is the inverse of PackedAmount.
func ParsePackedAmount(data []byte) (*big.Int, error) {
	return floatpack.Amount.Unpack(data)
}

// ParseFullAmount is the inverse of FullAmount.
func ParseFullAmount(data []byte) (*big.Int, error) {
	v, err := fullAmountSchema.Decode(data)
	if err != nil {
		return nil, err
	}

	return v.ToBig(), nil
}

// ParsePackedFee is the inverse of PackedFee.
func ParsePackedFee(data []byte) (*big.Int, error) {
	return floatpack.Fee.Unpack(data)
}
