package message

import (
	"errors"
	"io"

	"github.com/calebcase/oops"

	"github.com/matter-labs-archive/zksync-go/field"
)

// ErrInvalidOperation is returned when a value is requested from a field of
// a different kind.
var ErrInvalidOperation = Error.New("invalid operation")

// Decoder reads the fields of one canonical message.
//
//	d := message.NewDecoder(r)
//	for d.Next() {
//		v, err := d.Value()
//		...
//	}
//	if err := d.Err(); err != nil {
//		...
//	}
type Decoder interface {
	Next() (ok bool)
	Err() (err error)

	Type() Type
	Field() FieldSpec
	Data() []byte
	Value() (v interface{}, err error)
	Consumed() uint64
}

type decoder struct {
	r io.Reader

	consumed uint64

	layout Layout
	begun  bool
	index  int
	spec   FieldSpec
	data   []byte

	err error
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) Decoder {
	return &decoder{
		r:     r,
		index: -1,
	}
}

func (d *decoder) readTag() (err error) {
	var tag [1]byte

	_, err = io.ReadFull(d.r, tag[:])
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Error.New("empty message")
		}

		return Error.Wrap(err)
	}

	d.consumed++

	l, ok := Layouts.Match(tag[0])
	if !ok {
		return Error.New("unknown transaction type: %d", tag[0])
	}

	d.layout = l
	d.begun = true

	return nil
}

// Next moves to the next field. It returns false at the end of the message or
// on error; check Err to tell them apart.
func (d *decoder) Next() (ok bool) {
	if d.err != nil {
		return false
	}

	if !d.begun {
		d.err = d.readTag()
		if d.err != nil {
			return false
		}
	}

	if d.index >= len(d.layout.Fields) {
		return false
	}

	d.index++
	d.spec = FieldSpec{}
	d.data = nil

	if d.index >= len(d.layout.Fields) {
		d.index = len(d.layout.Fields)

		// The message must end exactly here.
		var extra [1]byte
		n, err := d.r.Read(extra[:])
		if n > 0 {
			d.err = Error.New("%s: trailing data after %d bytes", d.layout.Name, d.consumed)
		} else if err != nil && !errors.Is(err, io.EOF) {
			d.err = oops.Trace(err)
		}

		return false
	}

	spec := d.layout.Fields[d.index]

	data := make([]byte, spec.Kind.Size())
	_, err := io.ReadFull(d.r, data)
	if err != nil {
		d.err = Error.New("%s: short message reading %s at byte %d: %v", d.layout.Name, spec.Name, d.consumed, err)

		return false
	}

	d.consumed += uint64(len(data))
	d.spec = spec
	d.data = data

	return true
}

func (d *decoder) Err() error {
	return d.err
}

// Type is known after the first call to Next.
func (d *decoder) Type() Type {
	return d.layout.Type
}

func (d *decoder) Field() FieldSpec {
	return d.spec
}

// Data returns the raw bytes of the current field.
func (d *decoder) Data() []byte {
	return d.data
}

func (d *decoder) Consumed() uint64 {
	return d.consumed
}

// Value parses the current field. Addresses are address.Address, ids and
// nonces are uint16/uint32 and amounts are *big.Int.
func (d *decoder) Value() (v interface{}, err error) {
	defer func() {
		if err != nil {
			d.err = err
		}
	}()

	switch d.spec.Kind {
	case KindAddress:
		return field.ParseAddress(d.data)
	case KindAccountID:
		return field.ParseAccountID(d.data)
	case KindTokenID:
		return field.ParseTokenID(d.data)
	case KindNonce:
		return field.ParseNonce(d.data)
	case KindPackedAmount:
		return field.ParsePackedAmount(d.data)
	case KindFullAmount:
		return field.ParseFullAmount(d.data)
	case KindPackedFee:
		return field.ParsePackedFee(d.data)
	}

	return nil, oops.Trace(ErrInvalidOperation)
}
