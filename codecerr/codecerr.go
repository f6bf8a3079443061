// Package codecerr holds the error classes shared by the codec packages.
//
// Every validation failure in this module belongs to exactly one of these
// classes. Callers test membership with Has:
//
//	if codecerr.NotPackable.Has(err) {
//		// round the amount and try again
//	}
//
// The specific failure (negative id, missing prefix, ...) is a sentinel error
// wrapped by the class and can be matched with errors.Is.
package codecerr

import "github.com/zeebo/errs"

var (
	// Range is a negative or over-bound integer field (account id, token
	// id, nonce, amount).
	Range = errs.Class("range")

	// AddressFormat is an address with an unknown prefix or a decoded
	// length other than 20 bytes.
	AddressFormat = errs.Class("address format")

	// NotPackable is an amount or fee that does not survive a round trip
	// through its compact float encoding.
	NotPackable = errs.Class("not packable")

	// EncodingOverflow is a value larger than the largest value a compact
	// float encoding can hold.
	EncodingOverflow = errs.Class("encoding overflow")
)
