package message

import (
	"fmt"

	"github.com/matter-labs-archive/zksync-go/field"
)

// Kind is the wire encoding of a field.
type Kind uint8

// Field kinds.
const (
	KindInvalid Kind = iota
	KindAddress
	KindAccountID
	KindTokenID
	KindNonce
	KindPackedAmount
	KindFullAmount
	KindPackedFee
)

var kindInfo = map[Kind]struct {
	size int
	name string
}{
	KindAddress:      {field.AddressSize, "address"},
	KindAccountID:    {field.AccountIDSize, "account-id"},
	KindTokenID:      {field.TokenIDSize, "token-id"},
	KindNonce:        {field.NonceSize, "nonce"},
	KindPackedAmount: {field.PackedAmountSize, "amount-packed"},
	KindFullAmount:   {field.FullAmountSize, "amount-full"},
	KindPackedFee:    {field.PackedFeeSize, "fee-packed"},
}

// Size is the width of the field in bytes.
func (k Kind) Size() int {
	return kindInfo[k].size
}

func (k Kind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}

	return fmt.Sprintf("kind(%d)", uint8(k))
}

// FieldSpec is one slot of a layout.
type FieldSpec struct {
	Name string
	Kind Kind
}

// Type is the transaction type tag.
type Type byte

// Transaction types.
const (
	TypeUnknown      Type = 0
	TypeWithdraw     Type = 3
	TypeCloseAccount Type = 4
	TypeTransfer     Type = 5
)

// Layout is the fixed field sequence that follows a type tag.
type Layout struct {
	Type   Type
	Name   string
	Abbr   string
	Fields []FieldSpec
}

// Size is the total message length including the tag.
func (l Layout) Size() int {
	size := 1
	for _, f := range l.Fields {
		size += f.Kind.Size()
	}

	return size
}

type layouts []Layout

// Match returns the layout for a tag.
func (ls layouts) Match(tag byte) (l Layout, ok bool) {
	for _, l := range ls {
		if byte(l.Type) == tag {
			return l, true
		}
	}

	return l, false
}

// Layouts lists every supported transaction type.
var Layouts = layouts{
	{
		Type: TypeTransfer,
		Name: "Transfer",
		Abbr: "tr",
		Fields: []FieldSpec{
			{"from", KindAddress},
			{"to", KindAddress},
			{"token", KindTokenID},
			{"amount", KindPackedAmount},
			{"fee", KindPackedFee},
			{"nonce", KindNonce},
		},
	},
	{
		Type: TypeWithdraw,
		Name: "Withdraw",
		Abbr: "wd",
		Fields: []FieldSpec{
			{"account", KindAddress},
			{"ethAddress", KindAddress},
			{"token", KindTokenID},
			{"amount", KindFullAmount},
			{"fee", KindPackedFee},
			{"nonce", KindNonce},
		},
	},
	{
		Type: TypeCloseAccount,
		Name: "Close",
		Abbr: "ca",
		Fields: []FieldSpec{
			{"account", KindAddress},
			{"nonce", KindNonce},
		},
	},
}

// Layout returns the layout of t.
func (t Type) Layout() (Layout, bool) {
	return Layouts.Match(byte(t))
}

// Size returns the message length of t, or 0 for unknown types.
func (t Type) Size() int {
	l, ok := t.Layout()
	if !ok {
		return 0
	}

	return l.Size()
}

func (t Type) String() string {
	if l, ok := t.Layout(); ok {
		return l.Name
	}

	return fmt.Sprintf("type(%d)", byte(t))
}
