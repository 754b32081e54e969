// Package recordio encodes measurement records for storage and exchange.
//
// A record is a [measurements × samples] bit matrix. Every format writes
// one entry per sample:
//
//   - 01: one line of '0'/'1' characters, one per measurement
//   - b8: ceil(measurements/8) bytes, measurement m at bit m%8 of byte m/8
//   - hits: one line listing the indices of true measurements, comma
//     separated (empty line when none)
//
// Output can be compressed as a zstd or lz4 stream.
package recordio
