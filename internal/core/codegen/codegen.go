// Package codegen generates verification codes for the registry lock workflow
package codegen

import (
	"crypto/rand"
	"math/big"
)

// Base58Alphabet is the character set for verification codes
// base58 avoids 0/O and I/l so codes survive being read out loud or retyped
const Base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Generator produces opaque random strings of a fixed length
type Generator interface {
	Generate(length int) (string, error)
}

// Base58 is a crypto/rand backed Generator over Base58Alphabet
type Base58 struct{}

// Generate returns a random base58 string of the given length
func (Base58) Generate(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	max := big.NewInt(int64(len(Base58Alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = Base58Alphabet[n.Int64()]
	}
	return string(out), nil
}

// Fixed returns the same sequence of codes in order, for deterministic tests
type Fixed struct {
	Codes []string
	next  int
}

// Generate pops the next configured code, cycling when exhausted
func (f *Fixed) Generate(int) (string, error) {
	if len(f.Codes) == 0 {
		return "", nil
	}
	c := f.Codes[f.next%len(f.Codes)]
	f.next++
	return c, nil
}
