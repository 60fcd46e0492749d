package game

// Clock is the animation clock. Only Game writes it.
type Clock struct {
	Frame     int64   // updates run so far
	Time      float64 // simulated seconds
	TreeGrown bool
}

// Advance moves the clock forward one frame of dt seconds.
func (c *Clock) Advance(dt float64) {
	c.Frame++
	c.Time += dt
}
