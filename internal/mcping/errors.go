package mcping

import "errors"

// ErrMalformedResponse indicates the remote host answered but violated the
// framing contract for the path that was attempted (bad packet id, bad
// legacy field count, declared length over ceiling, and so on).
var ErrMalformedResponse = errors.New("mcping: malformed response")

// MaxStatusJSONLen bounds the declared length of the modern status JSON
// string. Open Question 1 in the spec flags the source's inverted check;
// this package applies the straightforward contract instead: reject before
// reading when the declared length exceeds this ceiling.
const MaxStatusJSONLen = 128 * 1024
