package inspect

import (
	"context"
	"strings"

	apperrors "github.com/SiriusScan/mcp-redis/internal/errors"
	"github.com/SiriusScan/mcp-redis/internal/store"
)

// DefaultSlowlogCount is the number of entries returned when none is asked for.
const DefaultSlowlogCount int64 = 10

// SlowlogEntry is one slow command record.
type SlowlogEntry struct {
	ID             int64  `json:"id"`
	Timestamp      int64  `json:"timestamp"`
	DurationMicros int64  `json:"duration_us"`
	Command        string `json:"command"`
	ClientAddr     string `json:"client_addr,omitempty"`
	ClientName     string `json:"client_name,omitempty"`
}

// GetSlowlog returns the count most recent slow log entries, newest first.
func GetSlowlog(ctx context.Context, client store.Client, count int64) ([]SlowlogEntry, error) {
	if count < 0 {
		return nil, apperrors.Validation("count must not be negative")
	}

	raw, err := client.SlowlogGet(ctx, count)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	entries := make([]SlowlogEntry, len(raw))
	for i, e := range raw {
		entries[i] = SlowlogEntry{
			ID:             e.ID,
			Timestamp:      e.Timestamp,
			DurationMicros: e.DurationMicros,
			Command:        strings.Join(e.Args, " "),
			ClientAddr:     e.ClientAddr,
			ClientName:     e.ClientName,
		}
	}
	return entries, nil
}
