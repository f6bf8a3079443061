package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matter-labs-archive/zksync-go/address"
	"github.com/matter-labs-archive/zksync-go/internal/jsonx"
)

func newAddressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address <0x...|sync:...>",
		Short: "Print both textual forms of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := address.Parse(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, a.Hex())
			fmt.Fprintln(out, a.Sync())

			return nil
		},
	}
}

func newWhoamiCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the signer address and public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.signer()
			if err != nil {
				return err
			}

			return jsonx.NewEncoder(cmd.OutOrStdout()).Encode(struct {
				Address   string `json:"address"`
				PublicKey string `json:"pubKey"`
				Backend   string `json:"backend"`
			}{
				Address:   s.Address(),
				PublicKey: fmt.Sprintf("%x", s.PublicKey()),
				Backend:   g.cfg.Signer.Backend,
			})
		},
	}
}
