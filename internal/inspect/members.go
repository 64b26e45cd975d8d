package inspect

import (
	"context"

	apperrors "github.com/SiriusScan/mcp-redis/internal/errors"
	"github.com/SiriusScan/mcp-redis/internal/store"
)

// GetMembers returns up to the effective cap of members of a set or sorted
// set. Sets come back as SetValue, sorted sets as SortedSetValue holding the
// lowest ranked members with their scores. A missing key yields Absent; any
// other type is a validation error. Set members are paged with SSCAN so no
// more than the cap plus one page is transferred.
func GetMembers(ctx context.Context, client store.Client, key string, requested *uint32, serverDefault uint32) (Value, error) {
	typ, err := client.Type(ctx, key)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	limit := EffectiveCap(requested, serverDefault)

	switch typ {
	case store.TypeNone:
		return Absent{}, nil

	case store.TypeSet:
		if limit == 0 {
			return SetValue{}, nil
		}
		w := walk{limit: limit, seen: make(map[string]struct{})}
		err := w.run(func(cursor uint64) (store.ScanPage, error) {
			return client.SScan(ctx, key, cursor, PageSize)
		})
		if err != nil {
			return nil, apperrors.Store(err)
		}
		return SetValue(w.items), nil

	case store.TypeZSet:
		if limit == 0 {
			return SortedSetValue{}, nil
		}
		members, err := client.ZRangeWithScores(ctx, key, 0, int64(limit)-1)
		if err != nil {
			return nil, apperrors.Store(err)
		}
		return SortedSetValue(nonNil(members)), nil

	default:
		return nil, apperrors.Validation("key %q is a %s, expected a set or sorted set", key, typ)
	}
}

// Len returns the number of members held by a collection value, 0 for Absent
// and scalar values.
func Len(v Value) int {
	switch v := v.(type) {
	case ListValue:
		return len(v)
	case SetValue:
		return len(v)
	case SortedSetValue:
		return len(v)
	case HashValue:
		return len(v)
	default:
		return 0
	}
}
