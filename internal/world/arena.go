package world

// Handle is a stable reference to an entity slot in a Level arena. Handles
// stay valid across removals of other entities; a freed handle's slot may be
// reused by a later Add.
type Handle int

// arena is a slot store with stable indices and a free list. Gameplay and
// editor code both add and remove entities mid-session; dangling indices
// from ad hoc slice removal are exactly the bug class this avoids.
type arena[T any] struct {
	items []T
	live  []bool
	freed []Handle
}

func (a *arena[T]) add(v T) Handle {
	if n := len(a.freed); n > 0 {
		h := a.freed[n-1]
		a.freed = a.freed[:n-1]
		a.items[h] = v
		a.live[h] = true
		return h
	}
	a.items = append(a.items, v)
	a.live = append(a.live, true)
	return Handle(len(a.items) - 1)
}

func (a *arena[T]) remove(h Handle) bool {
	if h < 0 || int(h) >= len(a.items) || !a.live[h] {
		return false
	}
	var zero T
	a.items[h] = zero
	a.live[h] = false
	a.freed = append(a.freed, h)
	return true
}

func (a *arena[T]) get(h Handle) (T, bool) {
	if h < 0 || int(h) >= len(a.items) || !a.live[h] {
		var zero T
		return zero, false
	}
	return a.items[h], true
}

func (a *arena[T]) each(fn func(Handle, T)) {
	for i, v := range a.items {
		if a.live[i] {
			fn(Handle(i), v)
		}
	}
}

func (a *arena[T]) count() int {
	n := 0
	for _, l := range a.live {
		if l {
			n++
		}
	}
	return n
}
