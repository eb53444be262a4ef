package deck

import (
	"crypto/sha256"
	"encoding/hex"
)

// Domain prefixes for segment keys.
// Version suffix enables future algorithm migration.
const (
	DomainBucket   = "slidedeck/bucket/v1"
	DomainSequence = "slidedeck/sequence/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte (0x00) separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data ...string) string {
	h := sha256.New()
	h.Write([]byte(domain))
	for _, d := range data {
		h.Write([]byte{0x00})
		h.Write([]byte(d))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// BucketKey derives the storage segment key of an owner's deck bucket.
// The key is stable across restarts for the same owner.
func BucketKey(owner string) string {
	return hashWithDomain(DomainBucket, owner)
}

// SequenceKey derives the storage segment key of a deck's slide sequence.
//
// The bucket key is part of the input, so equal deck names under different
// owners address different segments.
func SequenceKey(bucketKey, name string) string {
	return hashWithDomain(DomainSequence, bucketKey, name)
}
