package errors

import (
	sterrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"ambiguous", ErrAmbiguousConnection, "ambiguous connection: multiple Redis instances connected, specify 'connection' parameter"},
		{"not found", ConnectionNotFoundError{Name: "cache"}, "connection not found: cache"},
		{"read only", ReadOnlyError{Operation: "SET"}, "write operation rejected: SET"},
		{"store", StoreError{Err: sterrors.New("connection refused")}, "redis error: connection refused"},
		{"validation", ValidationError{Message: "pattern must not contain null bytes"}, "pattern must not contain null bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestStore(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Store(nil))
	})

	t.Run("wraps and unwraps", func(t *testing.T) {
		inner := sterrors.New("i/o timeout")
		err := Store(inner)

		var se StoreError
		require.True(t, sterrors.As(err, &se))
		assert.Same(t, inner, se.Err)
		assert.True(t, sterrors.Is(err, inner))
	})

	t.Run("does not double wrap", func(t *testing.T) {
		err := Store(sterrors.New("boom"))
		assert.Equal(t, err, Store(err))
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Class
	}{
		{"not found", ConnectionNotFoundError{Name: "x"}, ClassInvalidInput},
		{"ambiguous", ErrAmbiguousConnection, ClassInvalidInput},
		{"wrapped ambiguous", fmt.Errorf("resolve: %w", ErrAmbiguousConnection), ClassInvalidInput},
		{"read only", ReadOnlyError{Operation: "DEL"}, ClassInvalidInput},
		{"validation", Validation("bad %s", "input"), ClassInvalidInput},
		{"store", Store(sterrors.New("down")), ClassInternal},
		{"unknown", sterrors.New("something else"), ClassInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "invalid_input", ClassInvalidInput.String())
	assert.Equal(t, "internal", ClassInternal.String())
	assert.Equal(t, "unknown", Class(42).String())
}
