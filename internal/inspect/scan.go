package inspect

import (
	"context"
	"strings"

	apperrors "github.com/SiriusScan/mcp-redis/internal/errors"
	"github.com/SiriusScan/mcp-redis/internal/store"
)

const (
	// DefaultPattern matches every key.
	DefaultPattern = "*"

	// PageSize is the COUNT hint sent with every SCAN call. It is independent
	// of the result cap.
	PageSize int64 = 100

	// MaxIterations bounds the number of SCAN round trips per call. Sparse
	// matches over a large keyspace can otherwise take arbitrarily many
	// nearly empty pages.
	MaxIterations = 1000
)

// ScanResult is the outcome of one bounded scan.
type ScanResult struct {
	Pattern string
	Keys    []string
	// Cap is the effective cap applied to Keys.
	Cap uint32
	// Iterations is the number of SCAN round trips issued.
	Iterations int
	// Complete is true when the cursor returned to 0.
	Complete bool
}

// EffectiveCap returns min(requested or serverDefault, serverDefault). A
// caller can only shrink the result below the server ceiling.
func EffectiveCap(requested *uint32, serverDefault uint32) uint32 {
	if requested == nil || *requested > serverDefault {
		return serverDefault
	}
	return *requested
}

// ValidatePattern rejects patterns that cannot be sent safely.
func ValidatePattern(pattern string) error {
	if strings.IndexByte(pattern, 0) >= 0 {
		return apperrors.Validation("pattern must not contain null bytes")
	}
	return nil
}

// Scan enumerates keys matching pattern with SCAN. It stops when the cursor
// returns to 0, when the cap is reached or after MaxIterations round trips,
// then truncates to the cap since a page may overshoot it. Any page error
// aborts the scan without a partial result.
func Scan(ctx context.Context, client store.Client, pattern string, requested *uint32, serverDefault uint32) (ScanResult, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if err := ValidatePattern(pattern); err != nil {
		return ScanResult{}, err
	}

	limit := EffectiveCap(requested, serverDefault)
	result := ScanResult{Pattern: pattern, Keys: []string{}, Cap: limit}
	if limit == 0 {
		return result, nil
	}

	w := walk{limit: limit}
	err := w.run(func(cursor uint64) (store.ScanPage, error) {
		return client.Scan(ctx, cursor, pattern, PageSize)
	})
	if err != nil {
		return ScanResult{}, apperrors.Store(err)
	}
	result.Keys = w.items
	result.Iterations = w.iterations
	result.Complete = w.complete
	return result, nil
}

// walk drives a cursor-paged command. It stops when the cursor returns to 0,
// when limit items were gathered or after MaxIterations round trips, then
// truncates to limit. With seen set, repeated items are dropped.
type walk struct {
	limit      uint32
	seen       map[string]struct{}
	items      []string
	iterations int
	complete   bool
}

func (w *walk) run(next func(cursor uint64) (store.ScanPage, error)) error {
	w.items = []string{}
	var cursor uint64
	for w.iterations < MaxIterations {
		page, err := next(cursor)
		if err != nil {
			w.items = nil
			return err
		}
		w.iterations++
		w.add(page.Keys)
		cursor = page.Cursor

		if cursor == 0 {
			w.complete = true
			break
		}
		if len(w.items) >= int(w.limit) {
			break
		}
	}

	if len(w.items) > int(w.limit) {
		w.items = w.items[:w.limit]
	}
	return nil
}

func (w *walk) add(items []string) {
	if w.seen == nil {
		w.items = append(w.items, items...)
		return
	}
	for _, item := range items {
		if _, dup := w.seen[item]; dup {
			continue
		}
		w.seen[item] = struct{}{}
		w.items = append(w.items, item)
	}
}
