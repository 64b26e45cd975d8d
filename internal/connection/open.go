package connection

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/SiriusScan/mcp-redis/internal/store"
)

// Dialer opens a store client for one URL.
type Dialer func(ctx context.Context, rawURL string) (store.Client, error)

// StoreDialer returns a Dialer backed by store.NewClient. base supplies the
// settings shared by every connection; its URL is replaced per call.
func StoreDialer(base store.Config) Dialer {
	return func(ctx context.Context, rawURL string) (store.Client, error) {
		cfg := base
		cfg.URL = rawURL
		client, err := store.NewClient(&cfg)
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx); err != nil {
			return nil, multierr.Append(err, client.Close())
		}
		return client, nil
	}
}

// Open dials every URL in order and builds the registry. Names follow Name,
// display addresses follow Redact. On failure every client opened so far is
// closed.
func Open(ctx context.Context, urls []string, dial Dialer, logger *zap.Logger) (*Registry, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("at least one Redis URL is required")
	}

	entries := make([]Entry, 0, len(urls))
	closeAll := func() error {
		var err error
		for _, e := range entries {
			err = multierr.Append(err, e.Client.Close())
		}
		return err
	}

	for i, rawURL := range urls {
		redacted := Redact(rawURL)

		client, err := dial(ctx, rawURL)
		if err != nil {
			err = fmt.Errorf("cannot connect to '%s': %w", redacted, err)
			return nil, multierr.Append(err, closeAll())
		}

		entry := Entry{
			Name:           Name(rawURL, i, len(urls)),
			DisplayAddress: redacted,
			Client:         client,
		}
		entries = append(entries, entry)

		logger.Info("Connected to Redis",
			zap.String("connection", entry.Name),
			zap.String("url", redacted))
	}

	registry, err := NewRegistry(entries)
	if err != nil {
		return nil, multierr.Append(err, closeAll())
	}
	return registry, nil
}
