package serverinfo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/SiriusScan/mcp-redis/internal/commands"
	"github.com/SiriusScan/mcp-redis/internal/connection"
	apperrors "github.com/SiriusScan/mcp-redis/internal/errors"
	"github.com/SiriusScan/mcp-redis/internal/store"
	"github.com/SiriusScan/mcp-redis/internal/store/storetest"
)

func newEnv(t *testing.T, entries ...connection.Entry) commands.Env {
	t.Helper()
	reg, err := connection.NewRegistry(entries)
	require.NoError(t, err)
	return commands.Env{Logger: zaptest.NewLogger(t), Connections: reg, ScanCount: 100}
}

func TestRegistered(t *testing.T) {
	for _, name := range []string{"list_connections", "info", "dbsize", "slowlog", "client_list"} {
		_, ok := commands.Get(name)
		assert.True(t, ok, name)
	}
}

func TestListConnections(t *testing.T) {
	env := newEnv(t,
		connection.Entry{Name: "cache:6379", DisplayAddress: "redis://:***@cache:6379", Client: storetest.New()},
		connection.Entry{Name: "queue:6379", DisplayAddress: "redis://queue:6379", Client: storetest.New()},
	)

	out, err := commands.Dispatch(context.Background(), env, "list_connections", nil)
	require.NoError(t, err)
	assert.Equal(t, []connection.Description{
		{Name: "cache:6379", URL: "redis://:***@cache:6379"},
		{Name: "queue:6379", URL: "redis://queue:6379"},
	}, out)
}

func TestInfoIsRawText(t *testing.T) {
	fake := storetest.New()
	fake.InfoText = "# Keyspace\r\ndb0:keys=3\r\n"
	env := newEnv(t, connection.Entry{Name: "redis", Client: fake})

	out, err := commands.Dispatch(context.Background(), env, "info", commands.Args{"section": "keyspace"})
	require.NoError(t, err)
	assert.Equal(t, "# Keyspace\r\ndb0:keys=3\r\n", out)
}

func TestDBSize(t *testing.T) {
	fake := storetest.New()
	fake.SetString("a", "1")
	env := newEnv(t, connection.Entry{Name: "redis", Client: fake})

	out, err := commands.Dispatch(context.Background(), env, "dbsize", nil)
	require.NoError(t, err)
	assert.Equal(t, DBSizeResult{DBSize: 1}, out)
}

func TestSlowlogDefaultCount(t *testing.T) {
	fake := storetest.New()
	for i := 0; i < 15; i++ {
		fake.Slowlog = append(fake.Slowlog, store.SlowlogEntry{ID: int64(i), Args: []string{"GET", "k"}})
	}
	env := newEnv(t, connection.Entry{Name: "redis", Client: fake})

	out, err := commands.Dispatch(context.Background(), env, "slowlog", nil)
	require.NoError(t, err)
	res := out.(SlowlogResult)
	assert.Equal(t, 10, res.Count)
	assert.Equal(t, "GET k", res.Entries[0].Command)

	out, err = commands.Dispatch(context.Background(), env, "slowlog", commands.Args{"count": 3.0})
	require.NoError(t, err)
	assert.Equal(t, 3, out.(SlowlogResult).Count)
}

func TestClientList(t *testing.T) {
	env := newEnv(t, connection.Entry{Name: "redis", Client: storetest.New()})

	out, err := commands.Dispatch(context.Background(), env, "client_list", nil)
	require.NoError(t, err)
	res := out.(ClientListResult)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "3", res.Clients[0]["id"])
}

func TestConnectionResolutionErrors(t *testing.T) {
	env := newEnv(t,
		connection.Entry{Name: "a", Client: storetest.New()},
		connection.Entry{Name: "b", Client: storetest.New()},
	)

	_, err := commands.Dispatch(context.Background(), env, "dbsize", nil)
	assert.ErrorIs(t, err, apperrors.ErrAmbiguousConnection)

	_, err = commands.Dispatch(context.Background(), env, "dbsize", commands.Args{"connection": "c"})
	var nf apperrors.ConnectionNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "c", nf.Name)
}
