package inspect

import (
	"context"
	"fmt"

	apperrors "github.com/SiriusScan/mcp-redis/internal/errors"
	"github.com/SiriusScan/mcp-redis/internal/store"
)

const (
	ttlNoExpiry    = "no expiry"
	ttlKeyNotFound = "key not found"

	unknownEncoding     = "unknown"
	unknownMemory int64 = -1
)

// KeyInfo is the metadata of one key.
type KeyInfo struct {
	Key         string `json:"key"`
	Type        string `json:"type"`
	TTL         string `json:"ttl"`
	Encoding    string `json:"encoding"`
	MemoryBytes int64  `json:"memory_bytes"`
}

// DescribeTTL renders a TTL reply: -1 has no expiry, -2 is a missing key,
// anything else is a number of seconds.
func DescribeTTL(ttl int64) string {
	switch ttl {
	case -1:
		return ttlNoExpiry
	case -2:
		return ttlKeyNotFound
	default:
		return fmt.Sprintf("%ds", ttl)
	}
}

// GetKeyInfo collects type, TTL, encoding and memory usage for key. TYPE and
// TTL failures abort. OBJECT ENCODING and MEMORY USAGE are disabled on some
// managed servers and fail for missing keys, so their failures fall back to
// "unknown" and -1.
func GetKeyInfo(ctx context.Context, client store.Client, key string) (KeyInfo, error) {
	typ, err := client.Type(ctx, key)
	if err != nil {
		return KeyInfo{}, apperrors.Store(err)
	}

	ttl, err := client.TTL(ctx, key)
	if err != nil {
		return KeyInfo{}, apperrors.Store(err)
	}

	info := KeyInfo{
		Key:         key,
		Type:        typ,
		TTL:         DescribeTTL(ttl),
		Encoding:    unknownEncoding,
		MemoryBytes: unknownMemory,
	}

	if enc, err := client.ObjectEncoding(ctx, key); err == nil {
		info.Encoding = enc
	}
	if mem, err := client.MemoryUsage(ctx, key); err == nil {
		info.MemoryBytes = mem
	}
	return info, nil
}
