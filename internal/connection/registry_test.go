package connection

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/SiriusScan/mcp-redis/internal/errors"
	"github.com/SiriusScan/mcp-redis/internal/store/storetest"
)

func entries(names ...string) []Entry {
	out := make([]Entry, 0, len(names))
	for _, n := range names {
		out = append(out, Entry{Name: n, DisplayAddress: "redis://" + n, Client: storetest.New()})
	}
	return out
}

func TestRegistry_ResolveSingle(t *testing.T) {
	reg, err := NewRegistry(entries("redis"))
	require.NoError(t, err)

	byDefault, err := reg.Resolve("")
	require.NoError(t, err)

	byName, err := reg.Resolve("redis")
	require.NoError(t, err)
	assert.Same(t, byDefault, byName)

	_, err = reg.Resolve("other")
	var notFound apperrors.ConnectionNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "other", notFound.Name)
}

func TestRegistry_ResolveMany(t *testing.T) {
	for size := 2; size <= 5; size++ {
		t.Run(fmt.Sprintf("size %d", size), func(t *testing.T) {
			names := make([]string, size)
			for i := range names {
				names[i] = fmt.Sprintf("host-%d:6379", i)
			}
			reg, err := NewRegistry(entries(names...))
			require.NoError(t, err)

			_, err = reg.Resolve("")
			assert.ErrorIs(t, err, apperrors.ErrAmbiguousConnection)

			for _, n := range names {
				e, err := reg.Resolve(n)
				require.NoError(t, err)
				assert.Equal(t, n, e.Name)
			}
		})
	}
}

func TestRegistry_ResolveEmpty(t *testing.T) {
	reg, err := NewRegistry(nil)
	require.NoError(t, err)

	_, err = reg.Resolve("")
	assert.ErrorIs(t, err, apperrors.ErrAmbiguousConnection)

	_, err = reg.Resolve("redis")
	var notFound apperrors.ConnectionNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestNewRegistry_Validation(t *testing.T) {
	_, err := NewRegistry(entries("a", "b", "a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate connection name")

	_, err = NewRegistry([]Entry{{Name: "", Client: storetest.New()}})
	assert.Error(t, err)

	_, err = NewRegistry([]Entry{{Name: "x"}})
	assert.Error(t, err)
}

func TestRegistry_Describe(t *testing.T) {
	reg, err := NewRegistry(entries("a", "b"))
	require.NoError(t, err)

	assert.Equal(t, []Description{
		{Name: "a", URL: "redis://a"},
		{Name: "b", URL: "redis://b"},
	}, reg.Describe())
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_EntriesIsCopy(t *testing.T) {
	reg, err := NewRegistry(entries("a"))
	require.NoError(t, err)

	got := reg.Entries()
	got[0].Name = "mutated"

	e, err := reg.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, "a", e.Name)
}
