package standings

import "hash/fnv"

// EventHash is the deterministic stand-in for randomness used by the
// final tie-break and by the pairing generator's candidate ordering:
// FNV-1a over the event seed and the given parts, separated so that
// ("ab","c") and ("a","bc") never collide. Never a system RNG, so every
// run over the same inputs reproduces the same order.
func EventHash(seed string, parts ...string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(seed))
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return h.Sum64()
}
