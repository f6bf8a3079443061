package zksync

import (
	"math/big"

	"github.com/matter-labs-archive/zksync-go/internal/jsonx"
	"github.com/matter-labs-archive/zksync-go/message"
)

// Signed transaction type names.
const (
	TypeTransfer     = "Transfer"
	TypeWithdraw     = "Withdraw"
	TypeCloseAccount = "Close"
)

// SignedTransaction is a signed transaction in the form the rollup API
// accepts. Amounts and fees are decimal strings.
type SignedTransaction struct {
	Type       string    `json:"type"`
	Account    string    `json:"account,omitempty"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to,omitempty"`
	EthAddress string    `json:"ethAddress,omitempty"`
	Token      *uint16   `json:"token,omitempty"`
	Amount     string    `json:"amount,omitempty"`
	Fee        string    `json:"fee,omitempty"`
	Nonce      uint32    `json:"nonce"`
	Signature  Signature `json:"signature"`

	// Message is the canonical message that was signed.
	Message []byte `json:"-"`
}

// MarshalJSON renders tx with the module's JSON codec.
func (tx *SignedTransaction) MarshalJSON() ([]byte, error) {
	type plain SignedTransaction

	return jsonx.Marshal((*plain)(tx))
}

// UnmarshalJSON parses tx and rebuilds its canonical message.
func (tx *SignedTransaction) UnmarshalJSON(data []byte) (err error) {
	type plain SignedTransaction

	var p plain

	err = jsonx.Unmarshal(data, &p)
	if err != nil {
		return Error.Wrap(err)
	}

	*tx = SignedTransaction(p)

	tx.Message, err = tx.Build()

	return err
}

func decimal(name, s string) (v *big.Int, err error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, Error.New("%s: not a decimal integer: %q", name, s)
	}

	return v, nil
}

func (tx *SignedTransaction) token() (id int64, err error) {
	if tx.Token == nil {
		return 0, Error.New("%s: missing token", tx.Type)
	}

	return int64(*tx.Token), nil
}

// Transaction returns the unsigned transaction described by tx.
func (tx *SignedTransaction) Transaction() (t message.Transaction, err error) {
	switch tx.Type {
	case TypeTransfer, TypeWithdraw:
		token, err := tx.token()
		if err != nil {
			return nil, err
		}

		amount, err := decimal("amount", tx.Amount)
		if err != nil {
			return nil, err
		}

		fee, err := decimal("fee", tx.Fee)
		if err != nil {
			return nil, err
		}

		if tx.Type == TypeTransfer {
			return message.Transfer{
				From:   tx.From,
				To:     tx.To,
				Token:  token,
				Amount: amount,
				Fee:    fee,
				Nonce:  int64(tx.Nonce),
			}, nil
		}

		return message.Withdraw{
			Account:    tx.Account,
			EthAddress: tx.EthAddress,
			Token:      token,
			Amount:     amount,
			Fee:        fee,
			Nonce:      int64(tx.Nonce),
		}, nil
	case TypeCloseAccount:
		return message.CloseAccount{
			Account: tx.Account,
			Nonce:   int64(tx.Nonce),
		}, nil
	}

	return nil, Error.New("unknown transaction type: %q", tx.Type)
}

// Build assembles the canonical message from the human readable fields.
func (tx *SignedTransaction) Build() (msg []byte, err error) {
	t, err := tx.Transaction()
	if err != nil {
		return nil, err
	}

	return message.Build(t)
}

// Verify rebuilds the canonical message of tx and checks its signature with
// prim.
func Verify(prim Primitive, tx *SignedTransaction) (ok bool, err error) {
	msg, err := tx.Build()
	if err != nil {
		return false, err
	}

	if tx.Message != nil && string(tx.Message) != string(msg) {
		return false, nil
	}

	ok, err = prim.Verify(tx.Signature.PubKey, msg, tx.Signature.Signature)
	if err != nil {
		return false, Error.Wrap(err)
	}

	return ok, nil
}
