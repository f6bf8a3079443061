package message

import (
	"bytes"
	"io"
	"math/big"

	"github.com/calebcase/oops"
	"github.com/zeebo/errs"

	"github.com/matter-labs-archive/zksync-go/field"
)

// Error is the class of message assembly and parsing errors.
var Error = errs.Class("message")

// Encoder writes one canonical message. Fields must be written in layout
// order. Nothing reaches the underlying writer until Close succeeds, so a
// failed message never leaves partial output behind.
type Encoder interface {
	Begin(t Type) (err error)

	Address(s string) (err error)
	AccountID(id int64) (err error)
	TokenID(id int64) (err error)
	Nonce(n int64) (err error)
	PackedAmount(v *big.Int) (err error)
	FullAmount(v *big.Int) (err error)
	PackedFee(v *big.Int) (err error)

	Close() (err error)
}

type encoder struct {
	w io.Writer

	buf    bytes.Buffer
	layout Layout
	begun  bool
	next   int
	err    error
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) Encoder {
	return &encoder{
		w: w,
	}
}

func (e *encoder) Begin(t Type) (err error) {
	defer e.latch(&err)

	if e.begun {
		return Error.New("message already started: %s", e.layout.Name)
	}

	l, ok := t.Layout()
	if !ok {
		return Error.New("unknown transaction type: %d", byte(t))
	}

	e.layout = l
	e.begun = true
	e.buf.WriteByte(byte(t))

	return nil
}

// latch keeps the first error; once an encoder failed every later call fails
// with it.
func (e *encoder) latch(err *error) {
	if *err != nil && e.err == nil {
		e.err = *err
	}
}

func (e *encoder) expect(kind Kind) (err error) {
	if e.err != nil {
		return e.err
	}

	if !e.begun {
		return Error.New("field %s written before Begin", kind)
	}

	if e.next >= len(e.layout.Fields) {
		return Error.New("%s: unexpected %s field after %d fields", e.layout.Name, kind, e.next)
	}

	spec := e.layout.Fields[e.next]
	if spec.Kind != kind {
		return Error.New("%s: field %d (%s) is %s, got %s", e.layout.Name, e.next, spec.Name, spec.Kind, kind)
	}

	return nil
}

func (e *encoder) write(kind Kind, serialize func() ([]byte, error)) (err error) {
	defer e.latch(&err)

	err = e.expect(kind)
	if err != nil {
		return err
	}

	data, err := serialize()
	if err != nil {
		return err
	}

	e.buf.Write(data)
	e.next++

	return nil
}

func (e *encoder) Address(s string) (err error) {
	return e.write(KindAddress, func() ([]byte, error) { return field.Address(s) })
}

func (e *encoder) AccountID(id int64) (err error) {
	return e.write(KindAccountID, func() ([]byte, error) { return field.AccountID(id) })
}

func (e *encoder) TokenID(id int64) (err error) {
	return e.write(KindTokenID, func() ([]byte, error) { return field.TokenID(id) })
}

func (e *encoder) Nonce(n int64) (err error) {
	return e.write(KindNonce, func() ([]byte, error) { return field.Nonce(n) })
}

func (e *encoder) PackedAmount(v *big.Int) (err error) {
	return e.write(KindPackedAmount, func() ([]byte, error) { return field.PackedAmount(v) })
}

func (e *encoder) FullAmount(v *big.Int) (err error) {
	return e.write(KindFullAmount, func() ([]byte, error) { return field.FullAmount(v) })
}

func (e *encoder) PackedFee(v *big.Int) (err error) {
	return e.write(KindPackedFee, func() ([]byte, error) { return field.PackedFee(v) })
}

func (e *encoder) Close() (err error) {
	defer e.latch(&err)

	if e.err != nil {
		return e.err
	}

	if !e.begun {
		return Error.New("empty message")
	}

	if e.next != len(e.layout.Fields) {
		return Error.New("%s: incomplete message: %d of %d fields", e.layout.Name, e.next, len(e.layout.Fields))
	}

	_, err = e.w.Write(e.buf.Bytes())
	if err != nil {
		return oops.Trace(err)
	}

	e.buf.Reset()
	e.err = Error.New("%s: message already closed", e.layout.Name)

	return nil
}
