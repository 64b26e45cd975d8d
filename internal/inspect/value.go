package inspect

import (
	"context"

	apperrors "github.com/SiriusScan/mcp-redis/internal/errors"
	"github.com/SiriusScan/mcp-redis/internal/jsoncodec"
	"github.com/SiriusScan/mcp-redis/internal/store"
)

// Value is a normalized key value. The concrete type is one of StringValue,
// ListValue, SetValue, SortedSetValue, HashValue, Absent or Unsupported.
type Value interface {
	// Type is the type name the store reported for the key.
	Type() string
	isValue()
}

// StringValue is a whole string value.
type StringValue string

// ListValue is a full list in index order.
type ListValue []string

// SetValue is the membership of a set in server order.
type SetValue []string

// SortedSetValue is a sorted set in rank order with its scores.
type SortedSetValue []store.ScoredMember

// HashValue maps hash fields to their values.
type HashValue map[string]string

// Absent means the key does not exist. It is a result, not an error.
type Absent struct{}

// Unsupported is returned for store types without a retrieval mapping.
type Unsupported struct {
	TypeName string
}

func (StringValue) Type() string    { return store.TypeString }
func (ListValue) Type() string      { return store.TypeList }
func (SetValue) Type() string       { return store.TypeSet }
func (SortedSetValue) Type() string { return store.TypeZSet }
func (HashValue) Type() string      { return store.TypeHash }
func (Absent) Type() string         { return store.TypeNone }
func (u Unsupported) Type() string  { return u.TypeName }

func (StringValue) isValue()    {}
func (ListValue) isValue()      {}
func (SetValue) isValue()       {}
func (SortedSetValue) isValue() {}
func (HashValue) isValue()      {}
func (Absent) isValue()         {}
func (Unsupported) isValue()    {}

func (Absent) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func (u Unsupported) MarshalJSON() ([]byte, error) {
	return jsoncodec.Marshal(struct {
		Type string `json:"type"`
		Note string `json:"note"`
	}{Type: u.TypeName, Note: "Unsupported type"})
}

// GetValue reads key with TYPE followed by exactly one retrieval command for
// that type. The two round trips are not atomic: a concurrent writer can
// change the key in between, in which case the retrieval reflects the new
// state or fails with a store error.
func GetValue(ctx context.Context, client store.Client, key string) (Value, error) {
	typ, err := client.Type(ctx, key)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return fetchValue(ctx, client, key, typ)
}

func fetchValue(ctx context.Context, client store.Client, key, typ string) (Value, error) {
	switch typ {
	case store.TypeNone:
		return Absent{}, nil

	case store.TypeString:
		v, err := client.Get(ctx, key)
		if err != nil {
			return nil, apperrors.Store(err)
		}
		return StringValue(v), nil

	case store.TypeList:
		v, err := client.LRange(ctx, key, 0, -1)
		if err != nil {
			return nil, apperrors.Store(err)
		}
		return ListValue(nonNil(v)), nil

	case store.TypeSet:
		v, err := client.SMembers(ctx, key)
		if err != nil {
			return nil, apperrors.Store(err)
		}
		return SetValue(nonNil(v)), nil

	case store.TypeZSet:
		v, err := client.ZRangeWithScores(ctx, key, 0, -1)
		if err != nil {
			return nil, apperrors.Store(err)
		}
		return SortedSetValue(nonNil(v)), nil

	case store.TypeHash:
		v, err := client.HGetAll(ctx, key)
		if err != nil {
			return nil, apperrors.Store(err)
		}
		if v == nil {
			v = map[string]string{}
		}
		return HashValue(v), nil

	default:
		return Unsupported{TypeName: typ}, nil
	}
}

// nonNil keeps empty collections encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
