package render

import (
	opt "github.com/repeale/fp-go/option"
)

// Key is a logical key name as reported by a host, e.g. "w", "=" or "up".
type Key string

// Surface is a fixed-size character grid. Size is read once and must not
// change for the lifetime of a Loop.
type Surface interface {
	Size() (width, height int)
	Set(row, col int, ch rune) error
	Present() error
	Clear() error
}

// Input delivers at most one key per call and never blocks.
type Input interface {
	Poll() opt.Option[Key]
}

// KeyQueue is an Input fed by a host event source. Keys are handed out one
// per Poll in arrival order.
type KeyQueue struct {
	pending []Key
}

func (q *KeyQueue) Push(k Key) {
	q.pending = append(q.pending, k)
}

func (q *KeyQueue) Poll() opt.Option[Key] {
	if len(q.pending) == 0 {
		return opt.None[Key]()
	}
	k := q.pending[0]
	q.pending = q.pending[1:]
	return opt.Some(k)
}

func (q *KeyQueue) Len() int {
	return len(q.pending)
}
