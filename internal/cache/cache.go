// Package cache provides the byte-level caches used for downloaded ontology
// snapshots: an in-memory TTL cache, a persistent disk cache, and a layered
// combination of the two.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// SnapshotKey generates a cache key for an ontology snapshot URL
func SnapshotKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "preassembly:v1:" + hex.EncodeToString(hash[:])
}
