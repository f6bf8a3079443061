package message_test

import (
	"bytes"
	"fmt"
	"math/big"
	"testing"

	"github.com/calebcase/oops"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/matter-labs-archive/zksync-go/address"
	"github.com/matter-labs-archive/zksync-go/message"
)

func TestDecoder(t *testing.T) {
	type TC struct {
		Input  []byte
		Type   message.Type
		Fields []interface{}
		Mark   error
	}

	one := address.MustParse(oneSync)
	two := address.MustParse(twoHex)

	tcs := []TC{
		{
			Input: bytes.Join([][]byte{
				{0x04},
				bytes.Repeat([]byte{0x01}, 20),
				{0x00, 0x00, 0x00, 0x07},
			}, nil),
			Type:   message.TypeCloseAccount,
			Fields: []interface{}{one, uint32(7)},
			Mark:   oops.New("unexpected"),
		},
		{
			Input: bytes.Join([][]byte{
				{0x05},
				bytes.Repeat([]byte{0x01}, 20),
				bytes.Repeat([]byte{0x02}, 20),
				{0x00, 0x01},
				{0x00, 0x00, 0x00, 0x01, 0x40},
				{0x7d, 0x01},
				{0x00, 0x00, 0x01, 0x00},
			}, nil),
			Type: message.TypeTransfer,
			Fields: []interface{}{
				one,
				two,
				uint16(1),
				big.NewInt(10),
				big.NewInt(10000),
				uint32(256),
			},
			Mark: oops.New("unexpected"),
		},
		{
			Input: bytes.Join([][]byte{
				{0x03},
				bytes.Repeat([]byte{0x01}, 20),
				bytes.Repeat([]byte{0x02}, 20),
				{0x0f, 0xff},
				append(make([]byte, 15), 0x2a),
				{0xff, 0xe0},
				{0xff, 0xff, 0xff, 0xff},
			}, nil),
			Type: message.TypeWithdraw,
			Fields: []interface{}{
				one,
				two,
				uint16(4095),
				big.NewInt(42),
				big.NewInt(2047),
				uint32(1<<32 - 1),
			},
			Mark: oops.New("unexpected"),
		},
	}

	for i, tc := range tcs {
		t.Run(shortName(i, tc.Input), func(t *testing.T) {
			d := message.NewDecoder(bytes.NewReader(tc.Input))

			var fields []interface{}
			for d.Next() {
				require.Equal(t, tc.Type, d.Type(), tc.Mark)
				require.Len(t, d.Data(), d.Field().Kind.Size(), tc.Mark)

				v, err := d.Value()
				require.NoError(t, err, tc.Mark)

				fields = append(fields, v)
			}
			require.NoError(t, d.Err(), tc.Mark)

			t.Logf("fields:\n%s", spew.Sdump(fields))

			require.Equal(t, tc.Fields, fields, tc.Mark)
			require.Equal(t, uint64(len(tc.Input)), d.Consumed(), tc.Mark)
			require.Equal(t, tc.Type.Size(), int(d.Consumed()), tc.Mark)

			// Exhausted decoders stay exhausted.
			require.False(t, d.Next(), tc.Mark)
			require.NoError(t, d.Err(), tc.Mark)
		})
	}
}

func TestDecoderErrors(t *testing.T) {
	type TC struct {
		name  string
		input []byte
	}

	closeMsg := append([]byte{0x04}, make([]byte, 24)...)

	tcs := []TC{
		{"empty", nil},
		{"unknown tag", []byte{0x09, 0x00}},
		{"zero tag", append([]byte{0x00}, make([]byte, 24)...)},
		{"short", closeMsg[:20]},
		{"trailing", append(closeMsg[:len(closeMsg):len(closeMsg)], 0x00)},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			d := message.NewDecoder(bytes.NewReader(tc.input))

			for d.Next() {
				if _, err := d.Value(); err != nil {
					break
				}
			}

			err := d.Err()
			t.Logf("err: %+v", err)
			require.Error(t, err)

			_, err = message.Parse(tc.input)
			require.Error(t, err)
		})
	}
}

func TestDecoderInvalidOperation(t *testing.T) {
	d := message.NewDecoder(bytes.NewReader(append([]byte{0x04}, make([]byte, 24)...)))

	// No field has been read yet.
	_, err := d.Value()
	require.ErrorIs(t, err, message.ErrInvalidOperation)
	require.False(t, d.Next())
}

func TestParseTypeMismatch(t *testing.T) {
	data := append([]byte{0x04}, make([]byte, 24)...)

	tr := message.Transfer{}
	require.Error(t, tr.UnmarshalBinary(data))

	tx, err := message.Parse(data)
	require.NoError(t, err)
	require.Equal(t, message.TypeCloseAccount, tx.Type())
}

func TestRoundTrip(t *testing.T) {
	tcs := []message.Transaction{
		message.Transfer{
			From:   oneSync,
			To:     zeroSync,
			Token:  7,
			Amount: big.NewInt(1000000003),
			Fee:    big.NewInt(10000),
			Nonce:  12,
		},
		message.Withdraw{
			Account:    zeroSync,
			EthAddress: twoHex,
			Token:      4095,
			Amount:     new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)),
			Fee:        big.NewInt(2040),
			Nonce:      1<<32 - 1,
		},
		message.CloseAccount{
			Account: oneSync,
			Nonce:   3,
		},
	}

	for i, tx := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tx.Type()), func(t *testing.T) {
			data, err := message.Build(tx)
			require.NoError(t, err)
			require.Len(t, data, tx.Type().Size())

			parsed, err := message.Parse(data)
			require.NoError(t, err)

			t.Logf("parsed:\n%s", spew.Sdump(parsed))

			again, err := message.Build(parsed)
			require.NoError(t, err)
			require.Equal(t, data, again)
		})
	}
}
