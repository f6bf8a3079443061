package zksync

import (
	"github.com/calebcase/oops"
	"github.com/zeebo/errs"

	"github.com/matter-labs-archive/zksync-go/address"
	"github.com/matter-labs-archive/zksync-go/message"
)

// Error is the class of signer errors.
var Error = errs.Class("zksync")

// Signer holds a key pair. It is immutable and safe for concurrent use.
type Signer struct {
	prim   Primitive
	scalar []byte
	pubKey []byte
	addr   address.Address
}

// NewSigner derives the public key and address of scalar with prim.
func NewSigner(prim Primitive, scalar []byte) (s *Signer, err error) {
	defer Error.WrapP(&err)

	if prim == nil {
		return nil, Error.New("nil primitive")
	}

	pubKey, err := prim.PublicKey(scalar)
	if err != nil {
		return nil, err
	}

	raw, err := prim.Address(pubKey)
	if err != nil {
		return nil, err
	}

	addr, err := address.FromBytes(raw)
	if err != nil {
		return nil, err
	}

	return &Signer{
		prim:   prim,
		scalar: append([]byte{}, scalar...),
		pubKey: pubKey,
		addr:   addr,
	}, nil
}

// FromPrivateKey returns an edwards signer for scalar.
func FromPrivateKey(scalar []byte) (s *Signer, err error) {
	prim, err := Backend(BackendEdwards)
	if err != nil {
		return nil, err
	}

	return NewSigner(prim, scalar)
}

// FromSeed returns an edwards signer for the scalar derived from seed.
func FromSeed(seed []byte) (s *Signer, err error) {
	prim, err := Backend(BackendEdwards)
	if err != nil {
		return nil, err
	}

	return FromSeedWith(prim, seed)
}

// FromSeedWith returns a signer of prim for the scalar derived from seed.
func FromSeedWith(prim Primitive, seed []byte) (s *Signer, err error) {
	if prim == nil {
		return nil, Error.New("nil primitive")
	}

	scalar, err := prim.ScalarFromSeed(seed)
	if err != nil {
		return nil, Error.Wrap(err)
	}

	return NewSigner(prim, scalar)
}

// Address returns the signer's rollup address in sync: form.
func (s *Signer) Address() string {
	return s.addr.Sync()
}

// PublicKey returns a copy of the signer's public key.
func (s *Signer) PublicKey() []byte {
	return append([]byte{}, s.pubKey...)
}

// Primitive returns the signing primitive.
func (s *Signer) Primitive() Primitive {
	return s.prim
}

func (s *Signer) sign(tx message.Transaction) (msg []byte, sig Signature, err error) {
	msg, err = message.Build(tx)
	if err != nil {
		return nil, sig, err
	}

	raw, err := s.prim.Sign(s.scalar, msg)
	if err != nil {
		return nil, sig, oops.Trace(err)
	}

	return msg, Signature{
		PubKey:    s.PublicKey(),
		Signature: raw,
	}, nil
}

// SignSyncTransfer signs a transfer.
//
// tx.From is signed as given. It is not required to match Address, so a
// key may sign transfers out of an account whose address it does not
// derive.
func (s *Signer) SignSyncTransfer(tx message.Transfer) (signed *SignedTransaction, err error) {
	msg, sig, err := s.sign(tx)
	if err != nil {
		return nil, err
	}

	token := uint16(tx.Token)

	return &SignedTransaction{
		Type:      TypeTransfer,
		From:      tx.From,
		To:        tx.To,
		Token:     &token,
		Amount:    tx.Amount.String(),
		Fee:       tx.Fee.String(),
		Nonce:     uint32(tx.Nonce),
		Signature: sig,
		Message:   msg,
	}, nil
}

// SignSyncWithdraw signs a withdrawal to a chain address.
//
// Like SignSyncTransfer, tx.Account is signed as given and not checked
// against Address.
func (s *Signer) SignSyncWithdraw(tx message.Withdraw) (signed *SignedTransaction, err error) {
	msg, sig, err := s.sign(tx)
	if err != nil {
		return nil, err
	}

	token := uint16(tx.Token)

	return &SignedTransaction{
		Type:       TypeWithdraw,
		Account:    tx.Account,
		EthAddress: tx.EthAddress,
		Token:      &token,
		Amount:     tx.Amount.String(),
		Fee:        tx.Fee.String(),
		Nonce:      uint32(tx.Nonce),
		Signature:  sig,
		Message:    msg,
	}, nil
}

// SignSyncCloseAccount signs the closing of the signer's own account.
func (s *Signer) SignSyncCloseAccount(nonce int64) (signed *SignedTransaction, err error) {
	tx := message.CloseAccount{
		Account: s.Address(),
		Nonce:   nonce,
	}

	msg, sig, err := s.sign(tx)
	if err != nil {
		return nil, err
	}

	return &SignedTransaction{
		Type:      TypeCloseAccount,
		Account:   tx.Account,
		Nonce:     uint32(tx.Nonce),
		Signature: sig,
		Message:   msg,
	}, nil
}
