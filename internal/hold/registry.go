package hold

import "container/list"

// Registry is an ordered mapping from hold identifier to Hold, keyed by
// identifier and iterable in insertion order. Because expiration instants
// are derived as creation + a fixed duration from a non-decreasing clock,
// insertion order coincides with non-decreasing expiration order — this is
// what lets the expiration sweep stop at the first non-expired entry
// instead of scanning the whole map.
//
// Registry is not safe for concurrent use; callers (ticketservice.Service)
// serialize access with their own mutex.
type Registry struct {
	elems map[int32]*list.Element
	order *list.List // list.Element.Value is *Hold
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		elems: make(map[int32]*list.Element),
		order: list.New(),
	}
}

// Insert adds h to the registry. h.ID must not already be present.
func (r *Registry) Insert(h *Hold) {
	el := r.order.PushBack(h)
	r.elems[h.ID] = el
}

// Get looks up a hold by identifier.
func (r *Registry) Get(id int32) (*Hold, bool) {
	el, ok := r.elems[id]
	if !ok {
		return nil, false
	}
	return el.Value.(*Hold), true
}

// Has reports whether id names a currently-registered (live) hold.
func (r *Registry) Has(id int32) bool {
	_, ok := r.elems[id]
	return ok
}

// Remove deletes the hold named by id, if present.
func (r *Registry) Remove(id int32) {
	el, ok := r.elems[id]
	if !ok {
		return
	}
	r.order.Remove(el)
	delete(r.elems, id)
}

// Oldest returns the hold registered longest ago (the front of insertion
// order), or nil if the registry is empty.
func (r *Registry) Oldest() *Hold {
	front := r.order.Front()
	if front == nil {
		return nil
	}
	return front.Value.(*Hold)
}

// Len returns the number of live holds.
func (r *Registry) Len() int {
	return len(r.elems)
}
