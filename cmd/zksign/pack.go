package main

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/matter-labs-archive/zksync-go/floatpack"
)

var schemas = map[string]floatpack.Schema{
	"amount": floatpack.Amount,
	"fee":    floatpack.Fee,
}

func schemaArg(name string) (floatpack.Schema, error) {
	s, ok := schemas[name]
	if !ok {
		return s, fmt.Errorf("unknown schema %q: want amount or fee", name)
	}

	return s, nil
}

func decimalArg(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("not a decimal integer: %q", s)
	}

	return v, nil
}

func newPackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack amount|fee <decimal>",
		Short: "Encode a packable amount or fee",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := schemaArg(args[0])
			if err != nil {
				return err
			}

			v, err := decimalArg(args[1])
			if err != nil {
				return err
			}

			data, err := s.Pack(v)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(data))

			return nil
		},
	}
}

func newClosestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "closest amount|fee <decimal>",
		Short: "Round down to the nearest packable value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := schemaArg(args[0])
			if err != nil {
				return err
			}

			v, err := decimalArg(args[1])
			if err != nil {
				return err
			}

			closest, err := s.Closest(v)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), closest.String())

			return nil
		},
	}
}

func newUnpackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpack amount|fee <hex>",
		Short: "Decode a packed amount or fee",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := schemaArg(args[0])
			if err != nil {
				return err
			}

			data, err := hex.DecodeString(args[1])
			if err != nil {
				return err
			}

			v, err := s.Unpack(data)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), v.String())

			return nil
		},
	}
}
