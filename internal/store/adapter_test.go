package store

import (
	"context"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"
)

// SLOWLOG, OBJECT, MEMORY, CLIENT LIST and INFO need a real server and are
// covered here. The rest also runs in-process in adapter_miniredis_test.go.

// requireRedis connects to REDIS_TEST_URL (default db 15 on localhost),
// flushes it and returns both the adapter and the raw client used for
// seeding. The test is skipped when no server answers.
func requireRedis(t *testing.T) (Client, valkey.Client) {
	t.Helper()

	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		url = "redis://127.0.0.1:6379/15"
	}

	cfg := Config{URL: url, ConnectTimeout: 2 * time.Second}
	opt, err := cfg.ClientOption()
	require.NoError(t, err)

	raw, err := valkey.NewClient(opt)
	if err != nil {
		t.Skipf("Skipping: Redis not available: %v", err)
	}
	t.Cleanup(raw.Close)

	ctx := context.Background()
	if err := raw.Do(ctx, raw.B().Flushdb().Build()).Error(); err != nil {
		t.Skipf("Skipping: cannot flush test database: %v", err)
	}

	return Wrap(raw), raw
}

func TestAdapter_Integration(t *testing.T) {
	client, raw := requireRedis(t)
	ctx := context.Background()

	seed := []valkey.Completed{
		raw.B().Set().Key("mystr").Value("hello world").Build(),
		raw.B().Rpush().Key("mylist").Element("a", "b", "c").Build(),
		raw.B().Sadd().Key("myset").Member("alpha", "beta").Build(),
		raw.B().Zadd().Key("myzset").ScoreMember().ScoreMember(1, "one").ScoreMember(2, "two").Build(),
		raw.B().Hset().Key("myhash").FieldValue().FieldValue("field1", "val1").FieldValue("field2", "val2").Build(),
	}
	for _, res := range raw.DoMulti(ctx, seed...) {
		require.NoError(t, res.Error())
	}

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, client.Ping(ctx))
	})

	t.Run("scan", func(t *testing.T) {
		var keys []string
		var cursor uint64
		for {
			page, err := client.Scan(ctx, cursor, "my*", 100)
			require.NoError(t, err)
			keys = append(keys, page.Keys...)
			cursor = page.Cursor
			if cursor == 0 {
				break
			}
		}
		sort.Strings(keys)
		assert.Equal(t, []string{"myhash", "mylist", "myset", "mystr", "myzset"}, keys)
	})

	t.Run("types pipelined", func(t *testing.T) {
		types, err := client.Types(ctx, []string{"mystr", "myhash", "missing"})
		require.NoError(t, err)
		assert.Equal(t, []string{"string", "hash", "none"}, types)
	})

	t.Run("values", func(t *testing.T) {
		s, err := client.Get(ctx, "mystr")
		require.NoError(t, err)
		assert.Equal(t, "hello world", s)

		list, err := client.LRange(ctx, "mylist", 0, -1)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, list)

		set, err := client.SMembers(ctx, "myset")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"alpha", "beta"}, set)

		page, err := client.SScan(ctx, "myset", 0, 100)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"alpha", "beta"}, page.Keys)

		zset, err := client.ZRangeWithScores(ctx, "myzset", 0, -1)
		require.NoError(t, err)
		assert.Equal(t, []ScoredMember{{Member: "one", Score: 1}, {Member: "two", Score: 2}}, zset)

		hash, err := client.HGetAll(ctx, "myhash")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"field1": "val1", "field2": "val2"}, hash)

		fields, err := client.HMGet(ctx, "myhash", []string{"field1", "nope"})
		require.NoError(t, err)
		assert.Equal(t, []FieldValue{{Value: "val1", Found: true}, {}}, fields)
	})

	t.Run("metadata", func(t *testing.T) {
		ttl, err := client.TTL(ctx, "mystr")
		require.NoError(t, err)
		assert.Equal(t, int64(-1), ttl)

		ttl, err = client.TTL(ctx, "missing")
		require.NoError(t, err)
		assert.Equal(t, int64(-2), ttl)

		size, err := client.DBSize(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(5), size)

		info, err := client.Info(ctx, "server")
		require.NoError(t, err)
		assert.Contains(t, info, "redis_version")

		clients, err := client.ClientList(ctx)
		require.NoError(t, err)
		assert.Contains(t, clients, "addr=")

		_, err = client.SlowlogGet(ctx, 5)
		assert.NoError(t, err)

		enc, err := client.ObjectEncoding(ctx, "mystr")
		require.NoError(t, err)
		assert.NotEmpty(t, enc)

		usage, err := client.MemoryUsage(ctx, "myhash")
		require.NoError(t, err)
		assert.Positive(t, usage)
	})
}
