// Package floatpack provides the compact base 10 floating point encoding used
// for rollup amounts and fees.
//
// The equation for a packed number is:
//
//  number = mantissa * base ^ exponent
//
// Where mantissa and exponent are unsigned integers of fixed bit widths and
// base is 10. For example, with a 35 bit mantissa:
//
//  34_359_738_360 = 3_435_973_836 * 10^1
//
// 34_359_738_368 does not fit the mantissa and encodes to the same bits, so it
// is not packable.
//
// The exponent is the smallest value that lets the mantissa fit in its bit
// width. It is found by repeatedly dividing by the base, so any digits shifted
// out are lost. A value is packable when nothing was lost.
//
// Schemas
//
//  | Schema | Exponent | Mantissa | Bytes | Largest value         |
//  |--------|----------|----------|-------|-----------------------|
//  | Amount | 5 bits   | 35 bits  | 5     | (2^35 - 1) * 10^31    |
//  | Fee    | 5 bits   | 11 bits  | 2     | (2^11 - 1) * 10^31    |
//  |--------|----------|----------|-------|-----------------------|
//
// Encoding
//
// The number is first laid out as a bit vector: the exponent bits, least
// significant first, followed by the mantissa bits, least significant first.
// The whole vector is reversed, packed most significant bit first and the
// resulting bytes are reversed; packing reverses the byte order once more.
// The two byte reversals cancel, so the wire bytes are the big-endian word
//
//  mantissa << ExponentBits | exponent
//
// Bits within a byte are not reversed.
//
// Amount 1 (exponent 0, mantissa 1):
//
//  | byte 0 .. 3 | byte 4                        |
//  |             | 7 | 6 | 5 | 4 | 3 | 2 | 1 | 0 |
//  |-------------|-------------------------------|
//  | m34 .. m3   | m2  m1  m0  e4  e3  e2  e1  e0|
//  | 0 .. 0      | 0 . 0 . 1 . 0 . 0 . 0 . 0 . 0 | = 00 00 00 00 20
//  |-------------|-------------------------------|
//
// Fee 10000 (mantissa 1000, exponent 1): 1000<<5 | 1 = 0x7d01.
//
// The verifying circuit reads exactly this layout, so it must be reproduced
// bit for bit.
package floatpack
