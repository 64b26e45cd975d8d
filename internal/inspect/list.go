package inspect

import (
	"context"

	apperrors "github.com/SiriusScan/mcp-redis/internal/errors"
	"github.com/SiriusScan/mcp-redis/internal/store"
)

// Default bounds of GetListRange: the whole list.
const (
	DefaultListStart int64 = 0
	DefaultListStop  int64 = -1
)

// ListRange is a slice of a list key. Start and Stop are the inclusive
// indexes as requested; negative values count from the end.
type ListRange struct {
	Start    int64
	Stop     int64
	Elements []string
}

// GetListRange reads the elements between start and stop with LRANGE.
func GetListRange(ctx context.Context, client store.Client, key string, start, stop int64) (ListRange, error) {
	elements, err := client.LRange(ctx, key, start, stop)
	if err != nil {
		return ListRange{}, apperrors.Store(err)
	}
	return ListRange{Start: start, Stop: stop, Elements: nonNil(elements)}, nil
}
