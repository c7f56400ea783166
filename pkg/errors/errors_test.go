package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	e1 := New("cause1")
	e2 := New("cause2").Wrap(e1)
	e := New("dummy").Wrap(e2)
	e3 := e.Unwrap()
	assert.True(t, Is(e, e1))
	assert.True(t, Is(e, e2))
	assert.True(t, e3 == e2)
}

func TestWrapKeepsSentinel(t *testing.T) {
	sentinel := New("not found")
	other := New("not found")

	wrapped := sentinel.Wrap(fmt.Errorf("lookup %q", "x"))
	assert.True(t, Is(wrapped, sentinel))
	assert.False(t, Is(wrapped, other))
	assert.Nil(t, sentinel.Unwrap(), "wrapping must not alter the sentinel")
	assert.Equal(t, `not found: lookup "x"`, wrapped.Error())

	again := wrapped.Wrapf("retry %d", 2)
	assert.True(t, Is(again, sentinel))
	assert.Equal(t, "not found: retry 2", again.Error())
}

func TestAs(t *testing.T) {
	sentinel := New("boom")
	err := fmt.Errorf("context: %w", sentinel.Wrap(New("inner")))

	var target *Error
	require.True(t, As(err, &target))
	assert.True(t, Is(target, sentinel))
}
