// Package crypto wraps the two asymmetric key algorithms the network
// accepts: Ed25519 and ECDSA over secp256k1. Keys sign raw byte buffers and
// round-trip through raw, compressed, DER, and hex encodings.
package crypto
