package generator

import (
	"crypto/rand"
	"encoding/hex"
	"io"
)

// RandomTokenType is a random token issued by the generator
type RandomTokenType string

func tokenTypeFromString(token string) RandomTokenType {
	if token == "" {
		panic("zero length token issued, this is probably the only reason to ever panic")
	}
	return RandomTokenType(token)
}

type RandomTokenGenerator struct{}

// CreateInviteToken creates the bearer credential for an invite:
// 16 bytes from a crypto source, hex encoded to 32 characters.
func (*RandomTokenGenerator) CreateInviteToken() RandomTokenType {
	b := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		panic(err.Error()) // rand should never fail
	}
	return tokenTypeFromString(hex.EncodeToString(b))
}

func New() *RandomTokenGenerator {
	return &RandomTokenGenerator{}
}
