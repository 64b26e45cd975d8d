package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/valkey-io/valkey-go"
)

// adapter implements Client on top of a valkey-go client. valkey-go pipelines
// concurrent commands over shared connections, so one adapter serves every
// operation without extra locking.
type adapter struct {
	client valkey.Client
}

// NewClient dials the instance described by cfg.
func NewClient(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.New("store configuration is required")
	}

	opt, err := cfg.ClientOption()
	if err != nil {
		return nil, err
	}

	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create valkey client: %w", err)
	}

	return &adapter{client: client}, nil
}

// Wrap adapts an existing valkey-go client.
func Wrap(client valkey.Client) Client {
	return &adapter{client: client}
}

func (a *adapter) Ping(ctx context.Context) error {
	return a.client.Do(ctx, a.client.B().Ping().Build()).Error()
}

func (a *adapter) Scan(ctx context.Context, cursor uint64, pattern string, count int64) (ScanPage, error) {
	cmd := a.client.B().Scan().Cursor(cursor).Match(pattern).Count(count).Build()
	entry, err := a.client.Do(ctx, cmd).AsScanEntry()
	if err != nil {
		return ScanPage{}, err
	}
	return ScanPage{Cursor: entry.Cursor, Keys: entry.Elements}, nil
}

func (a *adapter) SScan(ctx context.Context, key string, cursor uint64, count int64) (ScanPage, error) {
	cmd := a.client.B().Sscan().Key(key).Cursor(cursor).Count(count).Build()
	entry, err := a.client.Do(ctx, cmd).AsScanEntry()
	if err != nil {
		return ScanPage{}, err
	}
	return ScanPage{Cursor: entry.Cursor, Keys: entry.Elements}, nil
}

func (a *adapter) Type(ctx context.Context, key string) (string, error) {
	return a.client.Do(ctx, a.client.B().Type().Key(key).Build()).ToString()
}

func (a *adapter) Types(ctx context.Context, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return []string{}, nil
	}

	cmds := make([]valkey.Completed, 0, len(keys))
	for _, key := range keys {
		cmds = append(cmds, a.client.B().Type().Key(key).Build())
	}

	results := a.client.DoMulti(ctx, cmds...)
	types := make([]string, len(keys))
	for i, res := range results {
		t, err := res.ToString()
		if err != nil {
			return nil, fmt.Errorf("TYPE %s: %w", keys[i], err)
		}
		types[i] = t
	}
	return types, nil
}

func (a *adapter) Get(ctx context.Context, key string) (string, error) {
	return a.client.Do(ctx, a.client.B().Get().Key(key).Build()).ToString()
}

func (a *adapter) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	cmd := a.client.B().Lrange().Key(key).Start(start).Stop(stop).Build()
	return a.client.Do(ctx, cmd).AsStrSlice()
}

func (a *adapter) SMembers(ctx context.Context, key string) ([]string, error) {
	return a.client.Do(ctx, a.client.B().Smembers().Key(key).Build()).AsStrSlice()
}

func (a *adapter) ZRangeWithScores(ctx context.Context, key string, start, stop int64) ([]ScoredMember, error) {
	cmd := a.client.B().Zrange().Key(key).
		Min(strconv.FormatInt(start, 10)).
		Max(strconv.FormatInt(stop, 10)).
		Withscores().
		Build()
	scores, err := a.client.Do(ctx, cmd).AsZScores()
	if err != nil {
		return nil, err
	}

	members := make([]ScoredMember, len(scores))
	for i, s := range scores {
		members[i] = ScoredMember{Member: s.Member, Score: s.Score}
	}
	return members, nil
}

func (a *adapter) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return a.client.Do(ctx, a.client.B().Hgetall().Key(key).Build()).AsStrMap()
}

func (a *adapter) HMGet(ctx context.Context, key string, fields []string) ([]FieldValue, error) {
	cmd := a.client.B().Hmget().Key(key).Field(fields...).Build()
	msgs, err := a.client.Do(ctx, cmd).ToArray()
	if err != nil {
		return nil, err
	}

	values := make([]FieldValue, len(msgs))
	for i, msg := range msgs {
		if msg.IsNil() {
			continue
		}
		s, err := msg.ToString()
		if err != nil {
			return nil, fmt.Errorf("HMGET field %d: %w", i, err)
		}
		values[i] = FieldValue{Value: s, Found: true}
	}
	return values, nil
}

func (a *adapter) TTL(ctx context.Context, key string) (int64, error) {
	return a.client.Do(ctx, a.client.B().Ttl().Key(key).Build()).AsInt64()
}

func (a *adapter) ObjectEncoding(ctx context.Context, key string) (string, error) {
	return a.client.Do(ctx, a.client.B().ObjectEncoding().Key(key).Build()).ToString()
}

func (a *adapter) MemoryUsage(ctx context.Context, key string) (int64, error) {
	return a.client.Do(ctx, a.client.B().MemoryUsage().Key(key).Build()).AsInt64()
}

func (a *adapter) DBSize(ctx context.Context) (int64, error) {
	return a.client.Do(ctx, a.client.B().Dbsize().Build()).AsInt64()
}

func (a *adapter) Info(ctx context.Context, section string) (string, error) {
	if section == "" {
		return a.client.Do(ctx, a.client.B().Info().Build()).ToString()
	}
	return a.client.Do(ctx, a.client.B().Info().Section(section).Build()).ToString()
}

func (a *adapter) SlowlogGet(ctx context.Context, count int64) ([]SlowlogEntry, error) {
	records, err := a.client.Do(ctx, a.client.B().SlowlogGet().Count(count).Build()).ToArray()
	if err != nil {
		return nil, err
	}

	entries := make([]SlowlogEntry, 0, len(records))
	for _, record := range records {
		fields, err := record.ToArray()
		if err != nil {
			return nil, fmt.Errorf("slowlog entry: %w", err)
		}
		entry, err := parseSlowlogEntry(fields)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parseSlowlogEntry decodes [id, timestamp, duration, args, addr, name].
// Servers older than 4.0 omit the last two fields.
func parseSlowlogEntry(fields []valkey.ValkeyMessage) (SlowlogEntry, error) {
	if len(fields) < 4 {
		return SlowlogEntry{}, fmt.Errorf("slowlog entry: expected at least 4 fields, got %d", len(fields))
	}

	var (
		entry SlowlogEntry
		err   error
	)
	if entry.ID, err = fields[0].AsInt64(); err != nil {
		return SlowlogEntry{}, fmt.Errorf("slowlog id: %w", err)
	}
	if entry.Timestamp, err = fields[1].AsInt64(); err != nil {
		return SlowlogEntry{}, fmt.Errorf("slowlog timestamp: %w", err)
	}
	if entry.DurationMicros, err = fields[2].AsInt64(); err != nil {
		return SlowlogEntry{}, fmt.Errorf("slowlog duration: %w", err)
	}
	if entry.Args, err = fields[3].AsStrSlice(); err != nil {
		return SlowlogEntry{}, fmt.Errorf("slowlog args: %w", err)
	}
	if len(fields) > 4 {
		entry.ClientAddr, _ = fields[4].ToString()
	}
	if len(fields) > 5 {
		entry.ClientName, _ = fields[5].ToString()
	}
	return entry, nil
}

func (a *adapter) ClientList(ctx context.Context) (string, error) {
	return a.client.Do(ctx, a.client.B().ClientList().Build()).ToString()
}

// Close closes the Valkey client connection
func (a *adapter) Close() error {
	if a.client == nil {
		return nil
	}
	a.client.Close()
	return nil
}
