package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// ComputeColumnHash produces a deterministic fingerprint over flag and score
// sequences. Two runs with identical configuration and seed must produce the
// same fingerprint for the same input, which is how idempotence is verified.
func ComputeColumnHash(name string, flags []bool, scores []float64) Hash {
	buf := make([]byte, 0, len(name)+len(flags)+8*len(scores))
	buf = append(buf, name...)
	for _, f := range flags {
		if f {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	var scratch [8]byte
	for _, s := range scores {
		binary.BigEndian.PutUint64(scratch[:], math.Float64bits(s))
		buf = append(buf, scratch[:]...)
	}
	return NewHash(buf)
}

// CombineHashes folds per-column fingerprints into a single run fingerprint.
// Order matters: the pair order is part of the run configuration.
func CombineHashes(hashes []Hash) Hash {
	var buf []byte
	for _, h := range hashes {
		buf = append(buf, h...)
	}
	return NewHash(buf)
}
