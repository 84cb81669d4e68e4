package cipher

import "errors"

// ErrLengthMismatch is returned when the key and data arguments of Encrypt
// or Decrypt do not have the same length.
var ErrLengthMismatch = errors.New("key and data lengths differ")
