package service

import (
	"bytes"
	"encoding/hex"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	zeroKey   = make([]byte, 32)
	fixedSalt = bytes.Repeat([]byte{0x11}, 16)
	fixedIV   = bytes.Repeat([]byte{0x22}, 16)
)

// fixedNonceReader yields fixedSalt then fixedIV, the order Encrypt reads them in.
func fixedNonceReader() io.Reader {
	return bytes.NewReader(append(append([]byte{}, fixedSalt...), fixedIV...))
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}
