package integer

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/matter-labs-archive/zksync-go/codecerr"
)

func TestMarshalUnmarshal(t *testing.T) {
	type TC struct {
		name   string
		schema Schema
		value  uint64
		data   []byte
	}

	tcs := []TC{
		{
			name:   "0/3",
			schema: Schema{Size: 3},
			value:  0,
			data:   []byte{0b0000_0000, 0b0000_0000, 0b0000_0000},
		},
		{
			name:   "1/3",
			schema: Schema{Size: 3},
			value:  1,
			data:   []byte{0b0000_0000, 0b0000_0000, 0b0000_0001},
		},
		{
			name:   "16777215/3",
			schema: Schema{Size: 3},
			value:  1<<24 - 1,
			data:   []byte{0b1111_1111, 0b1111_1111, 0b1111_1111},
		},
		{
			name:   "4095/2",
			schema: Schema{Size: 2, Limit: uint256.NewInt(4096)},
			value:  4095,
			data:   []byte{0b0000_1111, 0b1111_1111},
		},
		{
			name:   "258/2",
			schema: Schema{Size: 2},
			value:  258,
			data:   []byte{0b0000_0001, 0b0000_0010},
		},
		{
			name:   "3735928559/4",
			schema: Schema{Size: 4},
			value:  0xdeadbeef,
			data:   []byte{0xde, 0xad, 0xbe, 0xef},
		},
		{
			name:   "42/16",
			schema: Schema{Size: 16},
			value:  42,
			data:   append(make([]byte, 15), 42),
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			t.Run("marshal", func(t *testing.T) {
				blk := Block{Schema: tc.schema, Value: uint256.NewInt(tc.value)}

				data, err := blk.MarshalBinary()
				require.NoError(t, err)
				require.Equal(t, tc.data, data)
			})

			t.Run("unmarshal", func(t *testing.T) {
				blk := &Block{Schema: tc.schema}

				err := blk.UnmarshalBinary(tc.data)
				require.NoError(t, err)
				require.Equal(t, tc.value, blk.Value.Uint64())
			})
		})
	}
}

func TestBounds(t *testing.T) {
	type TC struct {
		name   string
		schema Schema
		value  *big.Int
		err    bool
	}

	over128 := new(big.Int).Lsh(big.NewInt(1), 128)
	max128 := new(big.Int).Sub(over128, big.NewInt(1))

	tcs := []TC{
		{name: "2^24/3", schema: Schema{Size: 3}, value: big.NewInt(1 << 24), err: true},
		{name: "4096/2 limited", schema: Schema{Size: 2, Limit: uint256.NewInt(4096)}, value: big.NewInt(4096), err: true},
		{name: "4096/2", schema: Schema{Size: 2}, value: big.NewInt(4096), err: false},
		{name: "2^32/4", schema: Schema{Size: 4}, value: big.NewInt(1 << 32), err: true},
		{name: "2^128-1/16", schema: Schema{Size: 16}, value: max128, err: false},
		{name: "2^128/16", schema: Schema{Size: 16}, value: over128, err: true},
		{name: "2^256/32", schema: Schema{Size: 32}, value: new(big.Int).Lsh(big.NewInt(1), 256), err: true},
		{name: "-1/4", schema: Schema{Size: 4}, value: big.NewInt(-1), err: true},
		{name: "nil/4", schema: Schema{Size: 4}, value: nil, err: true},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			data, err := tc.schema.EncodeBig(tc.value)
			if tc.err {
				require.Error(t, err)
				require.True(t, codecerr.Range.Has(err))

				return
			}

			require.NoError(t, err)
			require.Len(t, data, tc.schema.Size)
			require.Equal(t, tc.value.Bytes(), new(big.Int).SetBytes(data).Bytes())
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Schema{Size: 3}.Decode([]byte{0x00})
	require.Error(t, err)
	require.True(t, Error.Has(err))

	_, err = Schema{Size: 2, Limit: uint256.NewInt(4096)}.Decode([]byte{0x10, 0x00})
	require.Error(t, err)
	require.True(t, codecerr.Range.Has(err))

	_, err = Schema{Size: 4}.Encode(nil)
	require.True(t, codecerr.Range.Has(err))

	data, err := Schema{Size: 4}.EncodeUint64(7)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 7}, data)
}
