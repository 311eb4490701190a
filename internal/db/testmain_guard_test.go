package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuarded_PanicBecomesError(t *testing.T) {
	v, err := guarded(func() (int, error) {
		panic("rootless Docker not found")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rootless Docker not found")
	assert.Zero(t, v)
}

func TestGuarded_PassesThroughResult(t *testing.T) {
	v, err := guarded(func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	boom := errors.New("boom")
	_, err = guarded(func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
}
