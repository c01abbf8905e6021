package session

import "time"

// contact is NotTouching or Touching(since). Sensor callbacks drive it from
// inside World.Step, CheckWin reads it.
type contact struct {
	touching bool
	since    time.Time
}

func (c *contact) begin(now time.Time) {
	if c.touching {
		return
	}
	c.touching = true
	c.since = now
}

func (c *contact) end() {
	c.touching = false
	c.since = time.Time{}
}

func (c *contact) reset() {
	c.end()
}
