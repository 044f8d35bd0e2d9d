package otpinput

import (
	"sync"
	"time"
)

// countdown is a single-purpose expiry timer. It is started once, decrements
// every second and fires onExpire exactly once when it reaches zero. Stop is
// idempotent and safe to call from any goroutine, so every exit path of the
// owning Input can release the timer without coordination.
type countdown struct {
	mu        sync.Mutex
	remaining int
	stopped   bool
	stop      chan struct{}
	onExpire  func()
}

func newCountdown(seconds int, onExpire func()) *countdown {
	c := &countdown{
		remaining: seconds,
		stop:      make(chan struct{}),
		onExpire:  onExpire,
	}
	go c.run()
	return c
}

func (c *countdown) run() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if !c.tick() {
				return
			}
		}
	}
}

// tick decrements the counter and reports whether the countdown is still
// running. The expiry callback is invoked outside the lock so it may call
// back into the countdown.
func (c *countdown) tick() bool {
	c.mu.Lock()
	if c.stopped || c.remaining <= 0 {
		c.mu.Unlock()
		return false
	}
	c.remaining--
	expired := c.remaining == 0
	if expired {
		c.stopped = true
	}
	c.mu.Unlock()

	if expired && c.onExpire != nil {
		c.onExpire()
	}
	return !expired
}

func (c *countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	close(c.stop)
}

// rearm resets the counter and restarts the timer goroutine.
func (c *countdown) rearm(seconds int) {
	c.Stop()
	c.mu.Lock()
	c.remaining = seconds
	c.stopped = false
	c.stop = make(chan struct{})
	c.mu.Unlock()
	go c.run()
}
