package gnum

// RandSource is satisfied by *math/rand.Rand.
type RandSource interface {
	Uint64() uint64
}
