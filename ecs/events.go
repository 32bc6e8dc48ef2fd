package ecs

import "github.com/milk9111/orbitdash/ecs/component"

type mailbox interface {
	clear()
	len() int
}

type queue[T any] struct {
	items []T
}

func (q *queue[T]) clear() {
	q.items = q.items[:0]
}

func (q *queue[T]) len() int {
	return len(q.items)
}

func mailboxFor[T any](w *World, kind component.EventKind[T]) *queue[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if w.mailboxes == nil {
		w.mailboxes = make(map[component.ComponentID]mailbox)
	}
	mb, ok := w.mailboxes[kind.ID()]
	if !ok {
		q := &queue[T]{}
		w.mailboxes[kind.ID()] = q
		return q
	}
	q, _ := mb.(*queue[T])
	return q
}

// Send appends evt to this frame's mailbox for kind.
func Send[T any](w *World, kind component.EventKind[T], evt T) {
	q := mailboxFor(w, kind)
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Read returns a copy of every event sent for kind this frame. Reading does
// not consume: all readers in the frame see the same events.
func Read[T any](w *World, kind component.EventKind[T]) []T {
	q := mailboxFor(w, kind)
	if q == nil || len(q.items) == 0 {
		return nil
	}
	return append([]T(nil), q.items...)
}

// Pending reports how many events of kind are queued this frame.
func Pending[T any](w *World, kind component.EventKind[T]) int {
	q := mailboxFor(w, kind)
	if q == nil {
		return 0
	}
	return q.len()
}

// flushEvents drops every undelivered event. The scheduler calls it once the
// last system of the frame has run.
func (w *World) flushEvents() {
	if w == nil {
		return
	}
	for _, mb := range w.mailboxes {
		mb.clear()
	}
}
