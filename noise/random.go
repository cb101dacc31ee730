package noise

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// RandomField fills an h x w x d volume with independent samples drawn
// uniformly from [0, 1) using rng. Dimensions are checked before allocating.
func RandomField(h, w, d int, rng *rand.Rand) (*Volume, error) {
	v, err := NewVolume(h, w, d)
	if err != nil {
		return nil, err
	}
	for i := range v.Data {
		v.Data[i] = rng.Float32()
	}
	return v, nil
}

// NewSeed returns a seed read from crypto/rand, for runs where the caller
// did not pin one.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:]) & 0x7fffffffffffffff), nil
}

// NewRand builds the explicit random source the pipeline draws from.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
