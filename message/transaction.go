package message

import (
	"bytes"
	"math/big"

	"github.com/matter-labs-archive/zksync-go/address"
)

// Transaction is a message that can be assembled for signing.
type Transaction interface {
	Type() Type
	MarshalBinary() (data []byte, err error)
}

// Transfer moves tokens between two rollup accounts.
type Transfer struct {
	From   string
	To     string
	Token  int64
	Amount *big.Int
	Fee    *big.Int
	Nonce  int64
}

// Withdraw moves tokens from a rollup account to a chain address.
type Withdraw struct {
	Account    string
	EthAddress string
	Token      int64
	Amount     *big.Int
	Fee        *big.Int
	Nonce      int64
}

// CloseAccount closes a rollup account.
type CloseAccount struct {
	Account string
	Nonce   int64
}

func (Transfer) Type() Type     { return TypeTransfer }
func (Withdraw) Type() Type     { return TypeWithdraw }
func (CloseAccount) Type() Type { return TypeCloseAccount }

func marshal(t Type, fn func(e Encoder) error) (data []byte, err error) {
	buf := &bytes.Buffer{}
	e := NewEncoder(buf)

	err = e.Begin(t)
	if err != nil {
		return nil, err
	}

	err = fn(e)
	if err != nil {
		return nil, err
	}

	err = e.Close()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (tx Transfer) MarshalBinary() (data []byte, err error) {
	return marshal(TypeTransfer, func(e Encoder) (err error) {
		if err = e.Address(tx.From); err != nil {
			return err
		}
		if err = e.Address(tx.To); err != nil {
			return err
		}
		if err = e.TokenID(tx.Token); err != nil {
			return err
		}
		if err = e.PackedAmount(tx.Amount); err != nil {
			return err
		}
		if err = e.PackedFee(tx.Fee); err != nil {
			return err
		}

		return e.Nonce(tx.Nonce)
	})
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (tx Withdraw) MarshalBinary() (data []byte, err error) {
	return marshal(TypeWithdraw, func(e Encoder) (err error) {
		if err = e.Address(tx.Account); err != nil {
			return err
		}
		if err = e.Address(tx.EthAddress); err != nil {
			return err
		}
		if err = e.TokenID(tx.Token); err != nil {
			return err
		}
		if err = e.FullAmount(tx.Amount); err != nil {
			return err
		}
		if err = e.PackedFee(tx.Fee); err != nil {
			return err
		}

		return e.Nonce(tx.Nonce)
	})
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (tx CloseAccount) MarshalBinary() (data []byte, err error) {
	return marshal(TypeCloseAccount, func(e Encoder) (err error) {
		if err = e.Address(tx.Account); err != nil {
			return err
		}

		return e.Nonce(tx.Nonce)
	})
}

// unmarshal decodes every field of a message of type want, keyed by field
// name.
func unmarshal(data []byte, want Type) (values map[string]interface{}, err error) {
	d := NewDecoder(bytes.NewReader(data))

	values = map[string]interface{}{}
	for d.Next() {
		if d.Type() != want {
			return nil, Error.New("expected %s message, got %s", want, d.Type())
		}

		v, err := d.Value()
		if err != nil {
			return nil, err
		}

		values[d.Field().Name] = v
	}

	err = d.Err()
	if err != nil {
		return nil, err
	}

	return values, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Addresses are set
// in their sync: form.
func (tx *Transfer) UnmarshalBinary(data []byte) (err error) {
	values, err := unmarshal(data, TypeTransfer)
	if err != nil {
		return err
	}

	*tx = Transfer{
		From:   values["from"].(address.Address).Sync(),
		To:     values["to"].(address.Address).Sync(),
		Token:  int64(values["token"].(uint16)),
		Amount: values["amount"].(*big.Int),
		Fee:    values["fee"].(*big.Int),
		Nonce:  int64(values["nonce"].(uint32)),
	}

	return nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The account is set
// in sync: form and the destination in 0x form.
func (tx *Withdraw) UnmarshalBinary(data []byte) (err error) {
	values, err := unmarshal(data, TypeWithdraw)
	if err != nil {
		return err
	}

	*tx = Withdraw{
		Account:    values["account"].(address.Address).Sync(),
		EthAddress: values["ethAddress"].(address.Address).Hex(),
		Token:      int64(values["token"].(uint16)),
		Amount:     values["amount"].(*big.Int),
		Fee:        values["fee"].(*big.Int),
		Nonce:      int64(values["nonce"].(uint32)),
	}

	return nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (tx *CloseAccount) UnmarshalBinary(data []byte) (err error) {
	values, err := unmarshal(data, TypeCloseAccount)
	if err != nil {
		return err
	}

	*tx = CloseAccount{
		Account: values["account"].(address.Address).Sync(),
		Nonce:   int64(values["nonce"].(uint32)),
	}

	return nil
}

// Parse decodes a canonical message of any known type.
func Parse(data []byte) (tx Transaction, err error) {
	if len(data) == 0 {
		return nil, Error.New("empty message")
	}

	switch Type(data[0]) {
	case TypeTransfer:
		t := Transfer{}
		if err = t.UnmarshalBinary(data); err != nil {
			return nil, err
		}

		return t, nil
	case TypeWithdraw:
		w := Withdraw{}
		if err = w.UnmarshalBinary(data); err != nil {
			return nil, err
		}

		return w, nil
	case TypeCloseAccount:
		c := CloseAccount{}
		if err = c.UnmarshalBinary(data); err != nil {
			return nil, err
		}

		return c, nil
	}

	return nil, Error.New("unknown transaction type: %d", data[0])
}

// Build assembles the canonical message of tx.
func Build(tx Transaction) (data []byte, err error) {
	return tx.MarshalBinary()
}
