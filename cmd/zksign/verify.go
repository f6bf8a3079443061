package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	zksync "github.com/matter-labs-archive/zksync-go"
	"github.com/matter-labs-archive/zksync-go/internal/jsonx"
	"github.com/matter-labs-archive/zksync-go/internal/logx"
)

func newVerifyCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [file]",
		Short: "Check the signature of signed transactions read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prim, err := zksync.Backend(g.cfg.Signer.Backend)
			if err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()

			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()

				r = f
			}

			dec := jsonx.NewDecoder(r)

			for n := 0; dec.More(); n++ {
				var tx zksync.SignedTransaction

				err = dec.Decode(&tx)
				if err != nil {
					return err
				}

				ok, err := zksync.Verify(prim, &tx)
				if err != nil {
					return err
				}

				if !ok {
					logx.Warn("VERIFY", tx.Type, " nonce=", tx.Nonce, " bad signature")

					return fmt.Errorf("transaction %d: invalid signature", n)
				}

				logx.Info("VERIFY", tx.Type, " nonce=", tx.Nonce, " ok")

				fmt.Fprintf(cmd.OutOrStdout(), "%s %d ok\n", tx.Type, tx.Nonce)
			}

			return nil
		},
	}
}
