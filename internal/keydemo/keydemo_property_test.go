//go:build property
// +build property

package keydemo

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestKeyDemoProperties pins the round-trip and the self-referential limitation.
func TestKeyDemoProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("own signatures verify", prop.ForAll(
		func(seed []byte, message string) bool {
			if message == "" {
				return true
			}
			s := NewSession(bytes.NewReader(padSeed(seed)))
			pair, err := s.Generate()
			if err != nil {
				return false
			}
			sig, err := s.Sign(message)
			if err != nil {
				return false
			}
			ok, err := s.Verify(message, sig, pair.PublicKey)
			return err == nil && ok
		},
		gen.SliceOf(gen.UInt8()),
		gen.AnyString(),
	))

	properties.Property("foreign sessions never verify", prop.ForAll(
		func(a, b byte, message string) bool {
			if message == "" || a == b {
				return true
			}
			signer := NewSession(bytes.NewReader(bytes.Repeat([]byte{a}, PrivateKeySize)))
			verifier := NewSession(bytes.NewReader(bytes.Repeat([]byte{b}, PrivateKeySize)))
			pair, _ := signer.Generate()
			_, _ = verifier.Generate()
			sig, _ := signer.Sign(message)
			ok, err := verifier.Verify(message, sig, pair.PublicKey)
			return err == nil && !ok
		},
		gen.UInt8(),
		gen.UInt8(),
		gen.AnyString(),
	))

	properties.Property("public key is a 64 char hex digest", prop.ForAll(
		func(private string) bool {
			pub := DerivePublicKey(private)
			if len(pub) != 64 {
				return false
			}
			for _, c := range pub {
				if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func padSeed(seed []byte) []byte {
	out := make([]byte, PrivateKeySize)
	copy(out, seed)
	return out
}
