package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeAfterFuncFiresAtDeadline(t *testing.T) {
	c := Fake(epoch)
	var firedAt time.Time
	c.AfterFunc(2*time.Second, func() { firedAt = c.Now() })

	c.Advance(1999 * time.Millisecond)
	assert.True(t, firedAt.IsZero(), "fired early")
	assert.Equal(t, 1, c.PendingCount())

	c.Advance(time.Millisecond)
	assert.Equal(t, epoch.Add(2*time.Second), firedAt)
	assert.Equal(t, 0, c.PendingCount())
}

func TestFakeFiresInDeadlineOrder(t *testing.T) {
	c := Fake(epoch)
	var order []string
	c.AfterFunc(3*time.Second, func() { order = append(order, "c") })
	c.AfterFunc(1*time.Second, func() { order = append(order, "a") })
	c.AfterFunc(2*time.Second, func() { order = append(order, "b1") })
	c.AfterFunc(2*time.Second, func() { order = append(order, "b2") })

	c.Advance(10 * time.Second)
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, order)
	assert.Equal(t, epoch.Add(10*time.Second), c.Now())
}

func TestFakeCallbackCanReschedule(t *testing.T) {
	c := Fake(epoch)
	var fired []time.Time
	c.AfterFunc(time.Second, func() {
		fired = append(fired, c.Now())
		c.AfterFunc(time.Second, func() { fired = append(fired, c.Now()) })
	})

	c.Advance(5 * time.Second)
	require.Len(t, fired, 2)
	assert.Equal(t, epoch.Add(time.Second), fired[0])
	assert.Equal(t, epoch.Add(2*time.Second), fired[1])
}

func TestFakeStop(t *testing.T) {
	c := Fake(epoch)
	fired := false
	tm := c.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())
	c.Advance(time.Minute)
	assert.False(t, fired)
	assert.Equal(t, 0, c.PendingCount())
}

func TestFakeNonPositiveRunsImmediately(t *testing.T) {
	c := Fake(epoch)
	fired := false
	c.AfterFunc(0, func() { fired = true })
	assert.True(t, fired)
	assert.Equal(t, 0, c.PendingCount())
}

func TestFakeWaitForTimers(t *testing.T) {
	c := Fake(epoch)
	done := make(chan struct{})
	go func() {
		c.AfterFunc(time.Second, func() { close(done) })
	}()

	c.WaitForTimers(1)
	c.Advance(time.Second)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timer did not fire")
	}
}
