// Package zksync signs rollup transactions.
//
// A Signer holds a private scalar and the public key and address derived
// from it. Each Sign method assembles the canonical message of one
// transaction type (see package message), signs it with a Primitive and
// returns a SignedTransaction carrying the human readable fields next to the
// signature:
//
//	s, err := zksync.FromSeed(seed)
//	if err != nil {
//		...
//	}
//
//	tx, err := s.SignSyncTransfer(message.Transfer{
//		From:   s.Address(),
//		To:     "sync:...",
//		Token:  0,
//		Amount: big.NewInt(1000000000),
//		Fee:    big.NewInt(10000),
//		Nonce:  1,
//	})
//
// Validation failures carry one of the codecerr classes and nothing is
// signed unless the whole message assembles.
package zksync
