package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a DefaultKeyer cache key by hashing prefix (already
// carrying the "report:"/"plan:"/"artifact:" namespace and content hash)
// together with the key-specific options struct, so two sessions with
// identical inputs but different override/buffer settings never collide.
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data, used by FileCache to
// turn an arbitrary cache key into a filesystem-safe path.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
