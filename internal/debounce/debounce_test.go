package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnlyLatestTriggerFires(t *testing.T) {
	tm := New("sync", time.Millisecond)
	first := tm.Trigger()
	second := tm.Trigger()

	m1, ok := first().(Msg)
	require.True(t, ok)
	m2, ok := second().(Msg)
	require.True(t, ok)

	assert.False(t, tm.Fire(m1), "stale tick must not fire")
	assert.True(t, tm.Fire(m2))
	assert.False(t, tm.Fire(m2), "a tick fires at most once")
}

func TestCancel(t *testing.T) {
	tm := New("hl", 0)
	msg := tm.Trigger()().(Msg)
	require.True(t, tm.Pending())
	tm.Cancel()
	assert.False(t, tm.Pending())
	assert.False(t, tm.Fire(msg))
}

func TestForeignTimerIgnored(t *testing.T) {
	a := New("a", 0)
	b := New("b", 0)
	msgA := a.Trigger()().(Msg)
	b.Trigger()
	assert.False(t, b.Fire(msgA))
	assert.True(t, a.Fire(msgA))
}

func TestZeroDelayFiresImmediately(t *testing.T) {
	tm := New("init", Highlight)
	start := time.Now()
	msg := tm.TriggerAfter(0)().(Msg)
	assert.Less(t, time.Since(start), Highlight)
	assert.True(t, tm.Fire(msg))
	assert.Equal(t, "init", msg.ID)
}
