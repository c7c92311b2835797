package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for caching extracted page text and
// per-page key indices.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// PageKey generates a cache key for the extracted text of one PDF page.
// The file's modification time is part of the key so a re-downloaded bill
// never serves stale text.
func PageKey(path string, mtime int64, page int) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", path, mtime, page)))
	return "billsift:v1:page:" + hex.EncodeToString(hash[:])
}

// IndexKey generates a cache key for the key index of one page. Scoped by
// target number and key token because both change what the index records.
func IndexKey(number, key string, page int) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", number, key, page)))
	return "billsift:v1:index:" + hex.EncodeToString(hash[:])
}
