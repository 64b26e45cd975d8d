package inspect

import (
	"context"
	"fmt"

	apperrors "github.com/SiriusScan/mcp-redis/internal/errors"
	"github.com/SiriusScan/mcp-redis/internal/store"
)

// ResolveTypes returns the type of each key, in input order, using one
// pipelined round trip. An empty input needs no round trip.
//
// Type annotation is best effort: when the pipeline fails every key is
// reported as store.TypeUnknown and the failure is returned only so the
// caller can log it. The returned slice always has len(keys) entries.
func ResolveTypes(ctx context.Context, client store.Client, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return []string{}, nil
	}

	types, err := client.Types(ctx, keys)
	if err == nil && len(types) == len(keys) {
		return types, nil
	}
	if err == nil {
		err = fmt.Errorf("type pipeline returned %d replies for %d keys", len(types), len(keys))
	}

	unknown := make([]string, len(keys))
	for i := range unknown {
		unknown[i] = store.TypeUnknown
	}
	return unknown, apperrors.Store(err)
}

// TypedKey pairs a key with its type.
type TypedKey struct {
	Key  string `json:"key"`
	Type string `json:"type"`
}

// ZipTypes pairs keys with the types returned by ResolveTypes.
func ZipTypes(keys, types []string) []TypedKey {
	out := make([]TypedKey, len(keys))
	for i, k := range keys {
		out[i] = TypedKey{Key: k, Type: types[i]}
	}
	return out
}
