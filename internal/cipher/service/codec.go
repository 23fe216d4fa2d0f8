package service

// XORFunc sets dst[i] = x[i] ^ y[i] for every i < len(dst). x and y must be at
// least len(dst) long.
type XORFunc func(dst, x, y []byte)

// ScalarXOR is the byte-at-a-time XORFunc. It is the reference every bulk
// strategy must agree with.
func ScalarXOR(dst, x, y []byte) {
	for i := range dst {
		dst[i] = x[i] ^ y[i]
	}
}

// XORStream XORs data with len(data) bytes drawn from ks and returns a new slice.
// Applying it twice with identically seeded keystreams yields the original data.
func XORStream(data []byte, ks *Keystream) []byte {
	out := make([]byte, len(data))
	if len(data) == 0 {
		return out
	}

	pad := make([]byte, len(data))
	_, _ = ks.Read(pad)
	bulkXOR(out, data, pad)
	clear(pad)

	return out
}
