package main

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	zksync "github.com/matter-labs-archive/zksync-go"
	"github.com/matter-labs-archive/zksync-go/address"
	"github.com/matter-labs-archive/zksync-go/internal/jsonx"
	"github.com/matter-labs-archive/zksync-go/internal/logx"
	"github.com/matter-labs-archive/zksync-go/message"
)

type signFlags struct {
	from       string
	to         string
	account    string
	ethAddress string
	token      int64
	amount     string
	fee        string
	nonce      int64
}

func (f *signFlags) amounts() (amount, fee *big.Int, err error) {
	amount, err = decimalArg(f.amount)
	if err != nil {
		return nil, nil, err
	}

	fee, err = decimalArg(f.fee)
	if err != nil {
		return nil, nil, err
	}

	return amount, fee, nil
}

// warnForeign logs when a transaction names an account other than the
// signer's own. The rollup rejects such transactions unless the account's
// signing key was changed to this signer.
func warnForeign(role, addr string, s *zksync.Signer) {
	a, err := address.Parse(addr)
	if err != nil {
		return
	}

	if a.Sync() != s.Address() {
		logx.Warn("SIGN", role, " ", a.Sync(), " is not the signer address ", s.Address())
	}
}

func newSignCmd(g *globals) *cobra.Command {
	signCmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a rollup transaction",
	}

	f := &signFlags{}

	emit := func(cmd *cobra.Command, tx *zksync.SignedTransaction) error {
		logx.Debug("SIGN", tx.Type, " message=", zksync.HexBytes(tx.Message).String())

		data, err := jsonx.MarshalIndent(tx, "", "  ")
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		if err != nil {
			return err
		}

		logx.Info("SIGN", tx.Type, " nonce=", tx.Nonce, " pubKey=", tx.Signature.PubKey.String())

		return nil
	}

	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Sign a transfer between rollup accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.signer()
			if err != nil {
				return err
			}

			amount, fee, err := f.amounts()
			if err != nil {
				return err
			}

			from := f.from
			if from == "" {
				from = s.Address()
			}
			warnForeign("sender", from, s)

			tx, err := s.SignSyncTransfer(message.Transfer{
				From:   from,
				To:     f.to,
				Token:  f.token,
				Amount: amount,
				Fee:    fee,
				Nonce:  f.nonce,
			})
			if err != nil {
				return err
			}

			return emit(cmd, tx)
		},
	}
	transferCmd.Flags().StringVar(&f.from, "from", "", "sender address (defaults to the signer address)")
	transferCmd.Flags().StringVar(&f.to, "to", "", "recipient address")
	transferCmd.Flags().Int64Var(&f.token, "token", 0, "token id")
	transferCmd.Flags().StringVar(&f.amount, "amount", "", "amount in base units")
	transferCmd.Flags().StringVar(&f.fee, "fee", "0", "fee in base units")
	transferCmd.Flags().Int64Var(&f.nonce, "nonce", 0, "account nonce")
	_ = transferCmd.MarkFlagRequired("to")
	_ = transferCmd.MarkFlagRequired("amount")

	withdrawCmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Sign a withdrawal to a chain address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.signer()
			if err != nil {
				return err
			}

			amount, fee, err := f.amounts()
			if err != nil {
				return err
			}

			account := f.account
			if account == "" {
				account = s.Address()
			}
			warnForeign("account", account, s)

			tx, err := s.SignSyncWithdraw(message.Withdraw{
				Account:    account,
				EthAddress: f.ethAddress,
				Token:      f.token,
				Amount:     amount,
				Fee:        fee,
				Nonce:      f.nonce,
			})
			if err != nil {
				return err
			}

			return emit(cmd, tx)
		},
	}
	withdrawCmd.Flags().StringVar(&f.account, "account", "", "rollup account (defaults to the signer address)")
	withdrawCmd.Flags().StringVar(&f.ethAddress, "eth-address", "", "destination chain address")
	withdrawCmd.Flags().Int64Var(&f.token, "token", 0, "token id")
	withdrawCmd.Flags().StringVar(&f.amount, "amount", "", "amount in base units")
	withdrawCmd.Flags().StringVar(&f.fee, "fee", "0", "fee in base units")
	withdrawCmd.Flags().Int64Var(&f.nonce, "nonce", 0, "account nonce")
	_ = withdrawCmd.MarkFlagRequired("eth-address")
	_ = withdrawCmd.MarkFlagRequired("amount")

	closeCmd := &cobra.Command{
		Use:   "close",
		Short: "Sign the closing of the signer's account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.signer()
			if err != nil {
				return err
			}

			tx, err := s.SignSyncCloseAccount(f.nonce)
			if err != nil {
				return err
			}

			return emit(cmd, tx)
		},
	}
	closeCmd.Flags().Int64Var(&f.nonce, "nonce", 0, "account nonce")

	signCmd.AddCommand(transferCmd, withdrawCmd, closeCmd)

	return signCmd
}
