package message_test

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/calebcase/oops"
	"github.com/stretchr/testify/require"

	"github.com/matter-labs-archive/zksync-go/codecerr"
	"github.com/matter-labs-archive/zksync-go/field"
	"github.com/matter-labs-archive/zksync-go/message"
)

const (
	zeroSync = "sync:0000000000000000000000000000000000000000"
	oneSync  = "sync:0101010101010101010101010101010101010101"
	twoHex   = "0x0202020202020202020202020202020202020202"
)

func shortName(i int, data []byte) string {
	sb := &strings.Builder{}

	sb.WriteString(fmt.Sprintf("%02d/", i))

	if len(data) == 0 {
		sb.WriteString("(len=0)")

		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("%02x", data[0]))
	prev := data[0]
	var dots bool

	for i, b := range data[1:] {
		if len(data) > 16 && prev == b {
			if !dots {
				sb.WriteString("..")
				dots = true
			}

			continue
		}

		if (i+1)%2 == 0 {
			sb.WriteString("_")
		}

		sb.WriteString(fmt.Sprintf("%02x", b))
		prev = b
		dots = false
	}

	sb.WriteString(fmt.Sprintf("(len=%d)", len(data)))

	return sb.String()
}

func TestLayouts(t *testing.T) {
	require.Equal(t, 54, message.TypeTransfer.Size())
	require.Equal(t, 65, message.TypeWithdraw.Size())
	require.Equal(t, 25, message.TypeCloseAccount.Size())
	require.Equal(t, 0, message.TypeUnknown.Size())

	require.Equal(t, "Transfer", message.TypeTransfer.String())
	require.Equal(t, "Close", message.TypeCloseAccount.String())
	require.Equal(t, "type(9)", message.Type(9).String())

	for _, l := range message.Layouts {
		for _, f := range l.Fields {
			require.NotZero(t, f.Kind.Size(), "%s.%s", l.Name, f.Name)
		}
	}
}

func TestCloseAccountLayout(t *testing.T) {
	data, err := message.CloseAccount{Account: zeroSync, Nonce: 0}.MarshalBinary()
	require.NoError(t, err)

	want := append([]byte{0x04}, make([]byte, 24)...)
	require.Equal(t, want, data)
}

func TestEncoder(t *testing.T) {
	type TC struct {
		Type   message.Type
		Fields func(e message.Encoder) error
		Output []byte
		Mark   error
	}

	tcs := []TC{
		{
			Type: message.TypeCloseAccount,
			Fields: func(e message.Encoder) error {
				if err := e.Address(oneSync); err != nil {
					return err
				}

				return e.Nonce(1)
			},
			Output: append(append([]byte{0x04}, bytes.Repeat([]byte{0x01}, 20)...), 0x00, 0x00, 0x00, 0x01),
			Mark:   oops.New("unexpected"),
		},
		{
			Type: message.TypeWithdraw,
			Fields: func(e message.Encoder) error {
				for _, fn := range []func() error{
					func() error { return e.Address(oneSync) },
					func() error { return e.Address(twoHex) },
					func() error { return e.TokenID(4095) },
					func() error { return e.FullAmount(big.NewInt(1)) },
					func() error { return e.PackedFee(big.NewInt(1)) },
					func() error { return e.Nonce(2) },
				} {
					if err := fn(); err != nil {
						return err
					}
				}

				return nil
			},
			Output: bytes.Join([][]byte{
				{0x03},
				bytes.Repeat([]byte{0x01}, 20),
				bytes.Repeat([]byte{0x02}, 20),
				{0x0f, 0xff},
				append(make([]byte, 15), 0x01),
				{0x00, 0x20},
				{0x00, 0x00, 0x00, 0x02},
			}, nil),
			Mark: oops.New("unexpected"),
		},
	}

	for i, tc := range tcs {
		t.Run(shortName(i, tc.Output), func(t *testing.T) {
			output := &bytes.Buffer{}
			e := message.NewEncoder(output)

			require.NoError(t, e.Begin(tc.Type), tc.Mark)
			require.NoError(t, tc.Fields(e), tc.Mark)
			require.Empty(t, output.Bytes(), tc.Mark)
			require.NoError(t, e.Close(), tc.Mark)
			require.Equal(t, len(tc.Output), len(output.Bytes()), tc.Mark)
			require.Equal(t, tc.Output, output.Bytes(), tc.Mark)

			require.Error(t, e.Close(), tc.Mark)
		})
	}
}

func TestEncoderOrder(t *testing.T) {
	t.Run("before begin", func(t *testing.T) {
		e := message.NewEncoder(&bytes.Buffer{})

		err := e.Nonce(1)
		require.Error(t, err)
		require.True(t, message.Error.Has(err))
	})

	t.Run("wrong kind", func(t *testing.T) {
		e := message.NewEncoder(&bytes.Buffer{})
		require.NoError(t, e.Begin(message.TypeCloseAccount))

		err := e.Nonce(1)
		require.Error(t, err)
		require.True(t, message.Error.Has(err))
	})

	t.Run("too many", func(t *testing.T) {
		e := message.NewEncoder(&bytes.Buffer{})
		require.NoError(t, e.Begin(message.TypeCloseAccount))
		require.NoError(t, e.Address(zeroSync))
		require.NoError(t, e.Nonce(1))

		require.Error(t, e.Nonce(2))
	})

	t.Run("incomplete", func(t *testing.T) {
		output := &bytes.Buffer{}
		e := message.NewEncoder(output)
		require.NoError(t, e.Begin(message.TypeCloseAccount))
		require.NoError(t, e.Address(zeroSync))

		require.Error(t, e.Close())
		require.Empty(t, output.Bytes())
	})

	t.Run("unknown type", func(t *testing.T) {
		e := message.NewEncoder(&bytes.Buffer{})
		require.Error(t, e.Begin(message.Type(9)))
		require.Error(t, e.Close())
	})

	t.Run("begin twice", func(t *testing.T) {
		e := message.NewEncoder(&bytes.Buffer{})
		require.NoError(t, e.Begin(message.TypeTransfer))
		require.Error(t, e.Begin(message.TypeTransfer))
	})
}

func TestEncoderFailureLeavesNoOutput(t *testing.T) {
	output := &bytes.Buffer{}
	e := message.NewEncoder(output)

	require.NoError(t, e.Begin(message.TypeTransfer))
	require.NoError(t, e.Address(oneSync))
	require.NoError(t, e.Address(oneSync))

	err := e.TokenID(4096)
	require.True(t, errors.Is(err, field.ErrIDTooLarge))

	// The first failure sticks.
	require.Equal(t, err, e.PackedAmount(big.NewInt(1)))
	require.Equal(t, err, e.Close())
	require.Empty(t, output.Bytes())
}

func TestMarshalErrors(t *testing.T) {
	type TC struct {
		name string
		tx   message.Transaction
		has  func(error) bool
		is   error
	}

	tcs := []TC{
		{
			name: "transfer/bad from",
			tx:   message.Transfer{From: "0101", To: oneSync, Amount: big.NewInt(1), Fee: big.NewInt(1)},
			has:  codecerr.AddressFormat.Has,
		},
		{
			name: "transfer/not packable amount",
			tx:   message.Transfer{From: oneSync, To: oneSync, Amount: big.NewInt(34359738368), Fee: big.NewInt(1)},
			has:  codecerr.NotPackable.Has,
		},
		{
			name: "transfer/not packable fee",
			tx:   message.Transfer{From: oneSync, To: oneSync, Amount: big.NewInt(1), Fee: big.NewInt(12345)},
			has:  codecerr.NotPackable.Has,
		},
		{
			name: "transfer/negative nonce",
			tx:   message.Transfer{From: oneSync, To: oneSync, Amount: big.NewInt(1), Fee: big.NewInt(1), Nonce: -1},
			has:  codecerr.Range.Has,
			is:   field.ErrNegativeNonce,
		},
		{
			name: "withdraw/negative token",
			tx:   message.Withdraw{Account: oneSync, EthAddress: twoHex, Token: -1, Amount: big.NewInt(1), Fee: big.NewInt(1)},
			has:  codecerr.Range.Has,
			is:   field.ErrNegativeID,
		},
		{
			name: "withdraw/amount too large",
			tx:   message.Withdraw{Account: oneSync, EthAddress: twoHex, Amount: new(big.Int).Lsh(big.NewInt(1), 128), Fee: big.NewInt(1)},
			has:  codecerr.Range.Has,
			is:   field.ErrAmountTooLarge,
		},
		{
			name: "withdraw/short eth address",
			tx:   message.Withdraw{Account: oneSync, EthAddress: "0x0202", Amount: big.NewInt(1), Fee: big.NewInt(1)},
			has:  codecerr.AddressFormat.Has,
		},
		{
			name: "close/nonce too large",
			tx:   message.CloseAccount{Account: oneSync, Nonce: 1 << 32},
			has:  codecerr.Range.Has,
			is:   field.ErrNonceTooLarge,
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			data, err := tc.tx.MarshalBinary()
			require.Error(t, err)
			require.Nil(t, data)
			require.True(t, tc.has(err), err.Error())

			if tc.is != nil {
				require.True(t, errors.Is(err, tc.is), err.Error())
			}
		})
	}
}
