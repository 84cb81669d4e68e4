// Package cipher implements a seed-derived symmetric round cipher on bit
// sequences. ExpandKey stretches a seed into a key through counter-mode
// SHA-256 hashing; Encrypt and Decrypt apply six rounds of keyed XOR and a
// linear position permutation, and its exact inverse.
//
// The cipher is pedagogical. It carries no authentication, no nonce handling
// and no resistance beyond what the round structure provides; identical
// seeds always produce identical keys.
package cipher
