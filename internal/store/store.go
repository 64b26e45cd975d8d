package store

import (
	"context"
)

// Type names reported by the TYPE command.
const (
	TypeNone    = "none"
	TypeString  = "string"
	TypeList    = "list"
	TypeSet     = "set"
	TypeZSet    = "zset"
	TypeHash    = "hash"
	TypeUnknown = "unknown"
)

// ScanPage is one page of a cursor-driven SCAN.
type ScanPage struct {
	Cursor uint64
	Keys   []string
}

// ScoredMember is a sorted-set member with its score.
type ScoredMember struct {
	Member string  `json:"member"`
	Score  float64 `json:"score"`
}

// FieldValue is one HMGET reply slot. Found is false for a missing field.
type FieldValue struct {
	Value string
	Found bool
}

// SlowlogEntry is one SLOWLOG GET record.
type SlowlogEntry struct {
	ID             int64
	Timestamp      int64
	DurationMicros int64
	Args           []string
	ClientAddr     string
	ClientName     string
}

// Client is the read-only command surface the inspection operations use.
// Implementations must be safe for concurrent use; a single Client is shared
// by every in-flight operation against the same instance.
type Client interface {
	// Ping checks that the instance answers.
	Ping(ctx context.Context) error

	// Scan fetches one page of keys matching pattern starting at cursor.
	Scan(ctx context.Context, cursor uint64, pattern string, count int64) (ScanPage, error)

	// Type returns the type name of key, TypeNone when it does not exist.
	Type(ctx context.Context, key string) (string, error)

	// Types resolves the type of every key in a single pipelined round trip.
	Types(ctx context.Context, keys []string) ([]string, error)

	Get(ctx context.Context, key string) (string, error)
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	SMembers(ctx context.Context, key string) ([]string, error)
	// SScan fetches one page of members of a set starting at cursor.
	SScan(ctx context.Context, key string, cursor uint64, count int64) (ScanPage, error)
	ZRangeWithScores(ctx context.Context, key string, start, stop int64) ([]ScoredMember, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HMGet(ctx context.Context, key string, fields []string) ([]FieldValue, error)

	// TTL returns the remaining time to live in seconds, -1 without expiry
	// and -2 for a missing key.
	TTL(ctx context.Context, key string) (int64, error)
	ObjectEncoding(ctx context.Context, key string) (string, error)
	MemoryUsage(ctx context.Context, key string) (int64, error)

	DBSize(ctx context.Context) (int64, error)
	// Info returns the INFO text, limited to section when it is not empty.
	Info(ctx context.Context, section string) (string, error)
	SlowlogGet(ctx context.Context, count int64) ([]SlowlogEntry, error)
	ClientList(ctx context.Context) (string, error)

	// Close closes the store connection
	Close() error
}
