//go:build purego

package service

// BulkXORStrategy names the XOR implementation compiled into this build.
const BulkXORStrategy = "scalar"

func bulkXOR(dst, x, y []byte) {
	ScalarXOR(dst, x, y)
}
