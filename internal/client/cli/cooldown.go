package cli

import "time"

// timeNow is a test seam for the clock.
var timeNow = time.Now

// cooldown is a deadline-based countdown owned by a single view. Because it
// is a plain value dropped together with its form, no timer callback can
// outlive the view that started it.
type cooldown struct {
	until time.Time
}

func (c *cooldown) start(d time.Duration) {
	c.until = timeNow().Add(d)
}

func (c *cooldown) active() bool {
	return timeNow().Before(c.until)
}

// remaining returns the whole seconds left, rounded up; 0 when expired.
func (c *cooldown) remaining() int {
	d := c.until.Sub(timeNow())
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
