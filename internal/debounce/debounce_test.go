package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebounceCollapsesBurst(t *testing.T) {
	d := New(DefaultInterval)
	defer d.Stop()

	var calls int32
	var last atomic.Value
	for _, q := range []string{"j", "ja", "jak", "jaka", "jakar"} {
		q := q
		d.Trigger(func() {
			atomic.AddInt32(&calls, 1)
			last.Store(q)
		})
		time.Sleep(20 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(DefaultInterval + 50*time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "jakar", last.Load())
	assert.False(t, d.Pending())
}

func TestDebounceWaitsFullInterval(t *testing.T) {
	d := New(100 * time.Millisecond)
	defer d.Stop()

	var calls int32
	start := time.Now()
	fired := make(chan time.Duration, 1)
	d.Trigger(func() {
		atomic.AddInt32(&calls, 1)
		fired <- time.Since(start)
	})

	elapsed := <-fired
	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
}

func TestDebounceStopCancelsPending(t *testing.T) {
	d := New(50 * time.Millisecond)

	var calls int32
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	assert.True(t, d.Pending())
	d.Stop()

	time.Sleep(120 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&calls))

	// 停用後的觸發不會執行
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	time.Sleep(120 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestDebounceCancel(t *testing.T) {
	d := New(50 * time.Millisecond)
	defer d.Stop()

	var calls int32
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	d.Cancel()
	time.Sleep(120 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&calls))

	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 10*time.Millisecond)
}

func TestNewDefaultInterval(t *testing.T) {
	assert.Equal(t, 300*time.Millisecond, New(0).Interval())
}
