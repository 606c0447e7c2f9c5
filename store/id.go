package store

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for new records.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NewID() string { return f() }

// UUIDGenerator returns random (version 4) UUIDs. It is the default.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// PseudoGUID produces 128 bits of non-cryptographic randomness formatted as
// 8-4-4-4-12 hex groups. The shape matches a UUID but the version and
// variant bits are not set, so it is not RFC 4122 conformant. Only use it
// when identifiers must match files written by older clients.
type PseudoGUID struct{}

func (PseudoGUID) NewID() string {
	a, b := rand.Uint64(), rand.Uint64()
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		a>>32, (a>>16)&0xffff, a&0xffff, b>>48, b&0xffffffffffff)
}
