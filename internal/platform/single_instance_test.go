package platform

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortFor_StableAndInRange(t *testing.T) {
	port := PortFor("pomodoro")
	assert.Equal(t, port, PortFor("pomodoro"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestAcquireSingleInstance_SecondFails(t *testing.T) {
	name := fmt.Sprintf("pomodoro-test-%d", time.Now().UnixNano())

	first, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Release() })
	assert.Contains(t, first.Address(), "127.0.0.1:")

	_, err = AcquireSingleInstance(name)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, first.Release())
	require.NoError(t, first.Release())

	again, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
}
