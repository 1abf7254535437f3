package inetcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMachineOptions_Defaults(t *testing.T) {
	cfg, err := resolveMachineOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultThreads, cfg.threads)
	assert.Equal(t, defaultNodeArenaLen, cfg.nodeArenaLen)
	assert.Equal(t, defaultVarsArenaLen, cfg.varsArenaLen)
	assert.Equal(t, defaultBagCapacity, cfg.bagCapacity)
	assert.NotNil(t, cfg.logger)
	assert.NotNil(t, cfg.retryLimiter)
}

func TestResolveMachineOptions_Overrides(t *testing.T) {
	cfg, err := resolveMachineOptions([]MachineOption{
		WithThreads(4),
		WithArenaSize(100, 200),
		WithBagCapacity(64),
		WithLogger(nil),
		WithRetryLimiter(nil),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.threads)
	assert.Equal(t, 100, cfg.nodeArenaLen)
	assert.Equal(t, 200, cfg.varsArenaLen)
	assert.Equal(t, 64, cfg.bagCapacity)
	assert.Nil(t, cfg.logger)
	assert.Nil(t, cfg.retryLimiter)
}

func TestResolveMachineOptions_RejectsNonPowerOfTwoThreads(t *testing.T) {
	_, err := resolveMachineOptions([]MachineOption{WithThreads(3)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrThreadCountInvalid)
}

func TestResolveMachineOptions_RejectsZeroThreads(t *testing.T) {
	_, err := resolveMachineOptions([]MachineOption{WithThreads(0)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrThreadCountInvalid)
}

func TestNew_AppliesOptions(t *testing.T) {
	m, err := New(WithThreads(2), WithArenaSize(32, 32), WithBagCapacity(8))
	require.NoError(t, err)
	assert.Equal(t, 2, m.threads)
	assert.Equal(t, uint32(1), m.tpcLog2)
	assert.Equal(t, 32, m.nodes.len())
	assert.Equal(t, 32, m.vars.len())
}
