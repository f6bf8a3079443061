// Package message assembles the canonical byte messages that are signed for
// rollup transactions.
//
// A message is a one byte type tag followed by the type's fields in a fixed
// order. Every field has a fixed width, so a message of a given type always
// has the same length.
//
// Layouts
//
//  | Type         | Tag | Bytes |
//  |--------------|-----|-------|
//  | Transfer     | 5   | 54    |
//  | Withdraw     | 3   | 65    |
//  | CloseAccount | 4   | 25    |
//  |--------------|-----|-------|
//
// Transfer, byte offsets:
//
//  | 0   | 1 .. 20 | 21 .. 40 | 41 .. 42 | 43 .. 47 | 48 .. 49 | 50 .. 53 |
//  |-----|---------|----------|----------|----------|----------|----------|
//  | 05  | from    | to       | token    | amount   | fee      | nonce    |
//
// Withdraw, byte offsets:
//
//  | 0   | 1 .. 20 | 21 .. 40   | 41 .. 42 | 43 .. 58 | 59 .. 60 | 61 .. 64 |
//  |-----|---------|------------|----------|----------|----------|----------|
//  | 03  | account | ethAddress | token    | amount   | fee      | nonce    |
//
// CloseAccount, byte offsets:
//
//  | 0   | 1 .. 20 | 21 .. 24 |
//  |-----|---------|----------|
//  | 04  | account | nonce    |
//
// Field encodings are described in package field. The layouts live in the
// Layouts table; the Encoder refuses fields out of table order and the
// Decoder reads them back in the same order.
package message
