package game

import "container/heap"

type timer struct {
	at  float64
	seq uint64
	fn  func()
}

type timerQueue []timer

func (q timerQueue) Len() int { return len(q) }
func (q timerQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}
func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *timerQueue) Push(x any)   { *q = append(*q, x.(timer)) }
func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = timer{}
	*q = old[:n-1]
	return t
}

// Timers runs callbacks at simulated times. Callbacks due at the same time
// run in the order they were scheduled.
type Timers struct {
	queue timerQueue
	seq   uint64
}

// After schedules fn to run once the clock reaches now+delay.
func (t *Timers) After(now, delay float64, fn func()) {
	t.seq++
	heap.Push(&t.queue, timer{at: now + delay, seq: t.seq, fn: fn})
}

// Run fires every timer due at or before now and returns how many ran.
// Timers scheduled by a callback that are already due run in the same call.
func (t *Timers) Run(now float64) int {
	n := 0
	for len(t.queue) > 0 && t.queue[0].at <= now {
		next := heap.Pop(&t.queue).(timer)
		next.fn()
		n++
	}
	return n
}

// Pending returns the number of timers waiting to fire.
func (t *Timers) Pending() int {
	return len(t.queue)
}
