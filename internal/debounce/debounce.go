// Package debounce 延遲執行輸入觸發的操作，只保留最後一次。
package debounce

import (
	"sync"
	"time"
)

// DefaultInterval 是所有搜尋輸入共用的延遲時間
const DefaultInterval = 300 * time.Millisecond

// Debouncer 在最後一次 Trigger 之後經過 interval 才執行函數
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
	seq      uint64
	stopped  bool
}

// New 創建 Debouncer，interval <= 0 時使用 DefaultInterval
func New(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Debouncer{interval: interval}
}

// Trigger 取消尚未執行的函數並重新計時
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		// 計時器已被取代或停止
		if d.stopped || d.seq != seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel 取消尚未執行的函數，之後仍可再次 Trigger
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}

// Stop 取消尚未執行的函數並停用 Debouncer（相當於元件卸載）
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.stopped = true
}

// Pending 回傳是否有等待執行的函數
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Interval 回傳延遲時間
func (d *Debouncer) Interval() time.Duration {
	return d.interval
}
