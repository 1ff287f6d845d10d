package js

import (
	"sort"
	"time"

	"github.com/dop251/goja"
)

type timer struct {
	id       int64
	due      time.Time
	fn       goja.Callable
	args     []goja.Value
	canceled bool
}

// timerQueue holds the timers scheduled by one example.
type timerQueue struct {
	next   int64
	timers []*timer
}

func (q *timerQueue) add(due time.Time, fn goja.Callable, args []goja.Value) int64 {
	q.next++
	q.timers = append(q.timers, &timer{id: q.next, due: due, fn: fn, args: args})
	return q.next
}

func (q *timerQueue) cancel(id int64) {
	for _, t := range q.timers {
		if t.id == id {
			t.canceled = true
		}
	}
}

// takeDue removes and returns the timers due at now, earliest first.
func (q *timerQueue) takeDue(now time.Time) []*timer {
	var due, rest []*timer
	for _, t := range q.timers {
		switch {
		case t.canceled:
		case !t.due.After(now):
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	q.timers = rest
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].due.Before(due[j].due)
	})
	return due
}

func (q *timerQueue) len() int {
	n := 0
	for _, t := range q.timers {
		if !t.canceled {
			n++
		}
	}
	return n
}

func (q *timerQueue) clear() {
	q.timers = nil
}
